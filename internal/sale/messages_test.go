package sale

import (
	"errors"
	"fmt"
	"testing"

	"comptoir/internal/bridge"
	"comptoir/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapBackendError(t *testing.T) {
	line := LineItem{ProductName: "Widget", Quantity: 2}

	t.Run("InsufficientStockWithCounts", func(t *testing.T) {
		err := mapBackendError(1, line, &bridge.CommandError{
			Command: CommandSaveOrder,
			Status:  400,
			Message: "Insufficient product quantity. Available: 1, Requested: 2",
		})

		var serr *InsufficientStockError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, 1, serr.Line)
		assert.Equal(t, 1, serr.Available)
		assert.Equal(t, 2, serr.Requested)
	})

	t.Run("InsufficientStockWithoutCounts", func(t *testing.T) {
		err := mapBackendError(0, line, errors.New("Insufficient product quantity"))

		var serr *InsufficientStockError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, -1, serr.Available)
		assert.Equal(t, "Stock insuffisant pour Widget", Message(err))
	})

	t.Run("MatchingIsCaseSensitive", func(t *testing.T) {
		raw := errors.New("insufficient product quantity")
		assert.Same(t, raw, mapBackendError(0, line, raw))
	})

	t.Run("ProductNotFound", func(t *testing.T) {
		err := mapBackendError(0, line, errors.New("Product Widget not found"))
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.Equal(t, "Produit introuvable: Widget", Message(err))
	})

	t.Run("Unrecognised", func(t *testing.T) {
		raw := errors.New("database is locked")
		assert.Same(t, raw, mapBackendError(0, line, raw))
	})
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrMissingClient, "Le nom du client est requis"},
		{ErrMissingDate, "La date est requise"},
		{ErrNoItems, "Ajoutez au moins un produit à la vente"},
		{fmt.Errorf("%w: boom", catalog.ErrLoadFailed), "Erreur lors du chargement des produits"},
		{&ValidationError{Kind: KindMissingProduct, Line: 0}, "Ligne 1 : veuillez sélectionner un produit"},
		{&ValidationError{Kind: KindInvalidQuantity, Line: 2}, "Ligne 3 : la quantité doit être supérieure à 0"},
		{
			&InsufficientStockError{Product: "Widget", Available: 5, Requested: 7},
			"Stock insuffisant pour Widget. Disponible: 5, Demandé: 7",
		},
		{
			&WriteError{Line: 1, Cause: &InsufficientStockError{Product: "Gadget", Available: 1, Requested: 2}},
			"Stock insuffisant pour Gadget. Disponible: 1, Demandé: 2",
		},
		{
			&WriteError{Cause: &bridge.CommandError{Command: CommandSaveOrder, Message: "database is locked"}},
			"Erreur lors de l'enregistrement de la vente: database is locked",
		},
		{ErrFrozen, "Enregistrement en cours, veuillez patienter"},
		{ErrClosed, "Ce formulaire est fermé"},
		{errors.New("boom"), "Erreur inconnue: boom"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Message(tt.err))
	}
}
