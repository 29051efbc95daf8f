package sales

import "errors"

var (
	ErrLoadFailed   = errors.New("failed to load sales")
	ErrDeleteFailed = errors.New("failed to delete sale")
	ErrInvalidID    = errors.New("invalid sale id")
	ErrBadTimestamp = errors.New("unrecognised timestamp")
)

// LoadFailedMessage is the banner shown when the sales list cannot be fetched.
const LoadFailedMessage = "Erreur lors du chargement des factures"
