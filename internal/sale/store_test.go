package sale

import (
	"math/rand"
	"strconv"
	"testing"
	"time"

	"comptoir/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func TestNewFormState(t *testing.T) {
	s := NewFormState(testNow)

	assert.Equal(t, StatusPaid, s.Order.Status)
	assert.Equal(t, time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC), s.Order.Date)
	assert.Empty(t, s.Order.Items)
	assert.True(t, s.Order.TotalAmount.IsZero())
	assert.Equal(t, PhaseIdle, s.Phase)
}

func TestFormState_AddLine(t *testing.T) {
	s := NewFormState(testNow).AddLine().AddLine()

	require.Len(t, s.Order.Items, 2)
	line := s.Order.Items[0]
	assert.Equal(t, "", line.ProductName)
	assert.Equal(t, 1, line.Quantity)
	assert.True(t, line.UnitPrice.IsZero())
	assert.True(t, line.LineTotal.IsZero())
}

func TestFormState_ReducersDoNotMutate(t *testing.T) {
	cat := testCatalog()
	base := NewFormState(testNow).AddLine()
	_ = base.UpdateLine(0, FieldProduct, "Widget", cat)
	_ = base.AddLine()
	_ = base.RemoveLine(0)

	require.Len(t, base.Order.Items, 1)
	assert.Equal(t, "", base.Order.Items[0].ProductName)
}

func TestFormState_UpdateLine(t *testing.T) {
	cat := testCatalog()

	t.Run("ProductFromCatalog", func(t *testing.T) {
		s := NewFormState(testNow).AddLine().UpdateLine(0, FieldProduct, "Widget", cat)

		line := s.Order.Items[0]
		assert.Equal(t, "Widget", line.ProductName)
		assert.Equal(t, int64(1), line.ProductID)
		assert.True(t, dec("10").Equal(line.UnitPrice))
		assert.True(t, dec("10").Equal(line.LineTotal))
		assert.True(t, dec("10").Equal(s.Order.TotalAmount))
	})

	t.Run("UnknownProductKeepsPrice", func(t *testing.T) {
		s := NewFormState(testNow).AddLine().
			UpdateLine(0, FieldProduct, "Widget", cat).
			UpdateLine(0, FieldProduct, "Ghost", cat)

		line := s.Order.Items[0]
		assert.Equal(t, "Ghost", line.ProductName)
		assert.Equal(t, int64(0), line.ProductID)
		assert.True(t, dec("10").Equal(line.UnitPrice))
	})

	t.Run("Quantity", func(t *testing.T) {
		cases := []struct {
			in   string
			want int
		}{
			{"3", 3},
			{" 7 ", 7},
			{"", 0},
			{"   ", 0},
			{"abc", 0},
			{"-4", 0},
			{"2.5", 0},
			{"08", 8},
		}

		for _, tc := range cases {
			t.Run(strconv.Quote(tc.in), func(t *testing.T) {
				s := NewFormState(testNow).AddLine().
					UpdateLine(0, FieldProduct, "Gadget", cat).
					UpdateLine(0, FieldQuantity, tc.in, cat)

				line := s.Order.Items[0]
				assert.Equal(t, tc.want, line.Quantity)
				assert.True(t, decimal.NewFromInt(int64(20*tc.want)).Equal(line.LineTotal))
				assert.True(t, line.LineTotal.Equal(s.Order.TotalAmount))
			})
		}
	})

	t.Run("OutOfRangeIsNoop", func(t *testing.T) {
		s := NewFormState(testNow).AddLine()
		out := s.UpdateLine(3, FieldQuantity, "9", cat)
		assert.Equal(t, s, out)
	})

	t.Run("NilCatalog", func(t *testing.T) {
		s := NewFormState(testNow).AddLine().UpdateLine(0, FieldProduct, "Widget", nil)
		assert.Equal(t, "Widget", s.Order.Items[0].ProductName)
		assert.True(t, s.Order.Items[0].UnitPrice.IsZero())
	})
}

func TestFormState_SelectProduct(t *testing.T) {
	cat := catalog.NewSnapshot([]catalog.Product{
		{ID: 1, Name: "Widget", Price: decimal.NewFromInt(10), Quantity: 5},
		{ID: 7, Name: "Widget", Price: decimal.NewFromInt(12), Quantity: 2},
	})

	s := NewFormState(testNow).AddLine().SelectProduct(0, 7, cat)
	line := s.Order.Items[0]
	assert.Equal(t, int64(7), line.ProductID)
	assert.Equal(t, "Widget", line.ProductName)
	assert.True(t, dec("12").Equal(line.UnitPrice))

	unchanged := s.SelectProduct(0, 99, cat)
	assert.Equal(t, int64(7), unchanged.Order.Items[0].ProductID)
}

func TestFormState_RemoveLine(t *testing.T) {
	cat := testCatalog()
	s := NewFormState(testNow).AddLine().AddLine().
		UpdateLine(0, FieldProduct, "Widget", cat).
		UpdateLine(0, FieldQuantity, "2", cat).
		UpdateLine(1, FieldProduct, "Gadget", cat)

	require.True(t, dec("40").Equal(s.Order.TotalAmount))

	s = s.RemoveLine(0)
	require.Len(t, s.Order.Items, 1)
	assert.Equal(t, "Gadget", s.Order.Items[0].ProductName)
	assert.True(t, dec("20").Equal(s.Order.TotalAmount))

	assert.Equal(t, s, s.RemoveLine(5))
	assert.Equal(t, s, s.RemoveLine(-1))
}

func TestFormState_EditsClearError(t *testing.T) {
	s := NewFormState(testNow)
	s.Error = "Le nom du client est requis"
	s.Phase = PhaseFailed

	s = s.SetClientName("A")
	assert.Empty(t, s.Error)
	assert.Equal(t, PhaseIdle, s.Phase)
}

// The order total must equal the sum of quantity*price after any sequence of edits.
func TestFormState_TotalInvariant(t *testing.T) {
	cat := testCatalog()
	names := []string{"Widget", "Gadget", "Ghost", ""}
	rng := rand.New(rand.NewSource(42))

	s := NewFormState(testNow)
	for step := 0; step < 500; step++ {
		n := len(s.Order.Items)
		switch op := rng.Intn(4); {
		case op == 0 || n == 0:
			s = s.AddLine()
		case op == 1:
			s = s.RemoveLine(rng.Intn(n + 1))
		case op == 2:
			s = s.UpdateLine(rng.Intn(n), FieldProduct, names[rng.Intn(len(names))], cat)
		default:
			s = s.UpdateLine(rng.Intn(n), FieldQuantity, strconv.Itoa(rng.Intn(12)-2), cat)
		}

		want := decimal.Zero
		for _, line := range s.Order.Items {
			assert.True(t, line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Equal(line.LineTotal))
			want = want.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		require.True(t, want.Equal(s.Order.TotalAmount), "step %d", step)
	}

	once := s.Recompute()
	twice := once.Recompute()
	assert.Equal(t, once, twice)
}

// Scenario C: two lines price 10 x2 and 20 x1.
func TestFormState_ScenarioC(t *testing.T) {
	cat := testCatalog()
	s := NewFormState(testNow).AddLine().AddLine().
		UpdateLine(0, FieldProduct, "Widget", cat).
		UpdateLine(0, FieldQuantity, "2", cat).
		UpdateLine(1, FieldProduct, "Gadget", cat).
		UpdateLine(1, FieldQuantity, "1", cat)

	assert.True(t, dec("40").Equal(s.Order.TotalAmount))
}

func TestFormState_Reset(t *testing.T) {
	s := NewFormState(testNow).AddLine().SetClientName("Ali")
	s.Closed = true

	r := s.Reset(testNow)
	assert.Empty(t, r.Order.Items)
	assert.Empty(t, r.Order.ClientName)
	assert.True(t, r.Closed)
}

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{
		"Khaless": StatusPaid,
		"paid":    StatusPaid,
		"PAYÉ":    StatusPaid,
		"Crédit":  StatusCredit,
		"credit":  StatusCredit,
	} {
		got, err := ParseStatus(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStatus("Tous")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	assert.Equal(t, "Payé", StatusPaid.Label())
	assert.Equal(t, "Crédit", StatusCredit.Label())
}
