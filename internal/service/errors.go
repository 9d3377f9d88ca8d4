package service

import (
	"database/sql"
	"errors"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/repository"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
)

// storeFailure classifies an unexpected repository error: an unreachable
// database becomes STORE_UNAVAILABLE, anything else an internal error.
func storeFailure(err error, message string) error {
	if repository.IsStoreUnavailable(err) {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, appErrors.ErrStoreUnavailable.Message)
	}
	return appErrors.Internal(err, message)
}

// lookupFailure maps sql.ErrNoRows to a not found error named after what.
func lookupFailure(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, what+" not found")
	}
	return storeFailure(err, "failed to load "+what)
}

func validationFailure(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}
