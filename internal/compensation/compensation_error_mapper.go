package compensation

import (
	"errors"
	"strings"

	compensationerrors "go-mission/internal/compensation/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueAssignationDate = "uq_compensations_assignation_date"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == uniqueAssignationDate {
			return compensationerrors.ErrRecomputeConflict
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueAssignationDate) {
		return compensationerrors.ErrRecomputeConflict
	}

	return err
}
