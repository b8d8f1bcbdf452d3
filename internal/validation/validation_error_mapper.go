package validation

import (
	"errors"
	"strings"

	validationerrors "go-mission/internal/validation/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueMissionStep = "uq_mission_validations_step"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == uniqueMissionStep {
			return validationerrors.ErrChainAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueMissionStep) {
		return validationerrors.ErrChainAlreadyExists
	}

	return err
}
