package services

import (
	"errors"
	"fmt"

	"github.com/harborview/booking-backend/internal/models"
)

// domainErrors are passed through untouched; anything else coming back
// from a repository is a persistence failure and surfaces as
// StoreUnavailable so callers know it is the retryable kind.
var domainErrors = []error{
	models.ErrInvalidRange,
	models.ErrCapacityExceeded,
	models.ErrRoomUnavailable,
	models.ErrNotFound,
	models.ErrForbidden,
	models.ErrInvalidTransition,
	models.ErrRoomTypeInUse,
}

func storeErr(err error) error {
	if err == nil {
		return nil
	}
	for _, domain := range domainErrors {
		if errors.Is(err, domain) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
}
