package invoice

import (
	"fmt"
	"strconv"
	"time"
)

// Period selects which sales an invoice covers. The zero value is all time.
type Period struct {
	Year  int
	Month time.Month
	// Date, when set, narrows to one calendar day (YYYY-MM-DD) and wins over
	// Year and Month.
	Date string
}

func AllTime() Period { return Period{} }

func YearOf(year int) Period { return Period{Year: year} }

func MonthOf(year int, month time.Month) Period {
	return Period{Year: year, Month: month}
}

func DayOf(date string) Period { return Period{Date: date} }

func (p Period) Validate() error {
	if p.Date != "" {
		if _, err := time.Parse(time.DateOnly, p.Date); err != nil {
			return fmt.Errorf("%w: date %q", ErrInvalidPeriod, p.Date)
		}
		return nil
	}
	if p.Year < 0 || p.Year > 9999 {
		return fmt.Errorf("%w: year %d", ErrInvalidPeriod, p.Year)
	}
	if p.Month != 0 && (p.Month < time.January || p.Month > time.December) {
		return fmt.Errorf("%w: month %d", ErrInvalidPeriod, p.Month)
	}
	if p.Month != 0 && p.Year == 0 {
		return fmt.Errorf("%w: month without year", ErrInvalidPeriod)
	}
	return nil
}

// Label is the period key the backend echoes back: "all", "2025",
// "2025-03" or the day itself.
func (p Period) Label() string {
	switch {
	case p.Date != "":
		return p.Date
	case p.Year != 0 && p.Month != 0:
		return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
	case p.Year != 0:
		return strconv.Itoa(p.Year)
	default:
		return "all"
	}
}
