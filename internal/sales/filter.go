package sales

import "strings"

const DefaultPerPage = 10

func (f Filter) Match(s Sale) bool {
	if f.Status != "" && s.Status != f.Status {
		return false
	}
	if f.Client != "" && !strings.Contains(strings.ToLower(s.ClientName), strings.ToLower(f.Client)) {
		return false
	}
	return true
}

// Apply keeps the rows matching f, in their original order.
func (f Filter) Apply(rows []Sale) []Sale {
	out := make([]Sale, 0, len(rows))
	for _, s := range rows {
		if f.Match(s) {
			out = append(out, s)
		}
	}
	return out
}

// Paginate cuts rows into pages of perPage (DefaultPerPage when not
// positive) and returns the requested one. The page number is clamped to the
// available range; an empty list yields page 1 of 0.
func Paginate(rows []Sale, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	total := len(rows)
	totalPages := (total + perPage - 1) / perPage

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Rows:       rows[start:end:end],
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
	}
}
