package services

import (
	"fmt"

	"bugtracker/backend/app/apperr"
	"bugtracker/backend/global"
)

func storeErr(op string, err error) error {
	global.Logger.Error().Err(err).Str("op", op).Msg("store failure")
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrStoreUnavailable, err)
}
