package sale

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"comptoir/internal/bridge"
	"comptoir/internal/catalog"
)

// Backend phrases recognised by mapBackendError. Matching is case-sensitive.
const (
	backendInsufficientStock = "Insufficient product quantity"
	backendProduct           = "Product"
	backendNotFound          = "not found"
)

var stockCountsRe = regexp.MustCompile(`Available:\s*(-?\d+),\s*Requested:\s*(-?\d+)`)

// mapBackendError turns a save_order rejection for line i into a typed error
// when the text is recognised, and returns err unchanged otherwise.
func mapBackendError(i int, line LineItem, err error) error {
	raw := bridge.Reason(err)

	switch {
	case strings.Contains(raw, backendInsufficientStock):
		stock := &InsufficientStockError{
			Product:   line.ProductName,
			Line:      i,
			Available: -1,
			Requested: -1,
		}
		if m := stockCountsRe.FindStringSubmatch(raw); m != nil {
			stock.Available, _ = strconv.Atoi(m[1])
			stock.Requested, _ = strconv.Atoi(m[2])
		}
		return stock
	case strings.Contains(raw, backendProduct) && strings.Contains(raw, backendNotFound):
		return &ProductNotFoundError{Product: line.ProductName, Line: i}
	default:
		return err
	}
}

// Message renders err as the single French sentence shown on the form.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var (
		validation *ValidationError
		stock      *InsufficientStockError
		notFound   *ProductNotFoundError
		write      *WriteError
	)

	switch {
	case errors.Is(err, ErrMissingClient):
		return "Le nom du client est requis"
	case errors.Is(err, ErrMissingDate):
		return "La date est requise"
	case errors.Is(err, ErrNoItems):
		return "Ajoutez au moins un produit à la vente"
	case errors.Is(err, catalog.ErrLoadFailed):
		return catalog.LoadFailedMessage
	case errors.As(err, &validation):
		if validation.Kind == KindMissingProduct {
			return fmt.Sprintf("Ligne %d : veuillez sélectionner un produit", validation.Line+1)
		}
		return fmt.Sprintf("Ligne %d : la quantité doit être supérieure à 0", validation.Line+1)
	case errors.As(err, &stock):
		if stock.Available < 0 || stock.Requested < 0 {
			return fmt.Sprintf("Stock insuffisant pour %s", stock.Product)
		}
		return fmt.Sprintf("Stock insuffisant pour %s. Disponible: %d, Demandé: %d", stock.Product, stock.Available, stock.Requested)
	case errors.As(err, &notFound):
		return fmt.Sprintf("Produit introuvable: %s", notFound.Product)
	case errors.As(err, &write):
		return "Erreur lors de l'enregistrement de la vente: " + bridge.Reason(write.Cause)
	case errors.Is(err, ErrFrozen), errors.Is(err, ErrSubmitInProgress):
		return "Enregistrement en cours, veuillez patienter"
	case errors.Is(err, ErrClosed):
		return "Ce formulaire est fermé"
	default:
		return "Erreur inconnue: " + bridge.Reason(err)
	}
}
