package invoice

import "errors"

var (
	ErrMissingClient  = errors.New("client name is required")
	ErrInvalidPeriod  = errors.New("invalid invoice period")
	ErrLoadFailed     = errors.New("failed to load invoice")
	ErrTotalsMismatch = errors.New("invoice totals do not match its items")
)

// LoadFailedMessage is the banner shown when an invoice cannot be fetched.
const LoadFailedMessage = "Erreur lors du chargement de la facture"
