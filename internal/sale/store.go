package sale

import (
	"strconv"
	"strings"
	"time"

	"comptoir/internal/catalog"

	"github.com/shopspring/decimal"
)

// Catalog is the read side of the product snapshot the reducers price lines against.
type Catalog interface {
	Lookup(name string) (catalog.Product, bool)
	LookupID(id int64) (catalog.Product, bool)
}

// clone copies s deeply enough that the result can be changed freely.
func (s FormState) clone() FormState {
	out := s
	out.Order.Items = make([]LineItem, len(s.Order.Items))
	copy(out.Order.Items, s.Order.Items)
	return out
}

// edited is the common tail of every user edit: the previous error message
// goes away and a failed form becomes idle again.
func (s FormState) edited() FormState {
	s.Error = ""
	if s.Phase == PhaseFailed {
		s.Phase = PhaseIdle
	}
	return s.Recompute()
}

// AddLine appends a blank line with quantity 1.
func (s FormState) AddLine() FormState {
	out := s.clone()
	out.Order.Items = append(out.Order.Items, newLineItem())
	return out.edited()
}

// RemoveLine drops the line at i. An out of range index changes nothing.
func (s FormState) RemoveLine(i int) FormState {
	if i < 0 || i >= len(s.Order.Items) {
		return s.clone()
	}
	out := s.clone()
	out.Order.Items = append(out.Order.Items[:i], out.Order.Items[i+1:]...)
	return out.edited()
}

// UpdateLine edits one field of the line at i.
//
// Quantity accepts a blank value as a transient 0 while the user retypes it;
// anything that is not a non-negative base 10 integer also becomes 0.
// Product sets the name and, when the catalog knows it, takes the catalog's
// price and identifier; an unknown name keeps the previous price.
func (s FormState) UpdateLine(i int, field Field, value string, cat Catalog) FormState {
	if i < 0 || i >= len(s.Order.Items) {
		return s.clone()
	}
	out := s.clone()
	line := &out.Order.Items[i]

	switch field {
	case FieldQuantity:
		line.Quantity = parseQuantity(value)
	case FieldProduct:
		line.ProductName = value
		line.ProductID = 0
		if p, ok := lookupName(cat, value); ok {
			line.ProductID = p.ID
			line.UnitPrice = p.Price
		}
	default:
		return s.clone()
	}

	return out.edited()
}

// SelectProduct binds the line at i to a product by identifier, which stays
// unambiguous when several products share a display name.
func (s FormState) SelectProduct(i int, id int64, cat Catalog) FormState {
	if i < 0 || i >= len(s.Order.Items) || cat == nil {
		return s.clone()
	}
	p, ok := cat.LookupID(id)
	if !ok {
		return s.clone()
	}

	out := s.clone()
	line := &out.Order.Items[i]
	line.ProductID = p.ID
	line.ProductName = p.Name
	line.UnitPrice = p.Price
	return out.edited()
}

func (s FormState) SetClientName(name string) FormState {
	out := s.clone()
	out.Order.ClientName = name
	return out.edited()
}

func (s FormState) SetStatus(status Status) FormState {
	out := s.clone()
	out.Order.Status = status
	return out.edited()
}

func (s FormState) SetDate(t time.Time) FormState {
	out := s.clone()
	out.Order.Date = t.Truncate(time.Minute)
	return out.edited()
}

// Recompute derives every line total and the order total from scratch.
// It is idempotent.
func (s FormState) Recompute() FormState {
	out := s.clone()
	total := decimal.Zero
	for i := range out.Order.Items {
		line := &out.Order.Items[i]
		line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(line.LineTotal)
	}
	out.Order.TotalAmount = total
	return out
}

// Reset returns the blank state, keeping only whether the form was closed.
func (s FormState) Reset(now time.Time) FormState {
	out := NewFormState(now)
	out.Closed = s.Closed
	return out
}

func parseQuantity(v string) int {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func lookupName(cat Catalog, name string) (catalog.Product, bool) {
	if cat == nil || name == "" {
		return catalog.Product{}, false
	}
	return cat.Lookup(name)
}

// lookupLine resolves the product a line refers to, identifier first.
func lookupLine(cat Catalog, line LineItem) (catalog.Product, bool) {
	if cat == nil {
		return catalog.Product{}, false
	}
	if line.ProductID != 0 {
		if p, ok := cat.LookupID(line.ProductID); ok {
			return p, true
		}
	}
	return lookupName(cat, line.ProductName)
}
