package catalog

import "errors"

var (
	ErrLoadFailed = errors.New("failed to load product catalog")
)

// LoadFailedMessage is the banner shown when the catalog cannot be fetched.
const LoadFailedMessage = "Erreur lors du chargement des produits"
