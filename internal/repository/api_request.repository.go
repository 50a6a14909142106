package repository

import (
	"fmt"

	"trackfolio/internal/db/models/postgres/public/model"
	"trackfolio/internal/db/models/postgres/public/table"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

// ApiRequestRepository is the request audit trail. Writes are best effort -
// the api layer logs failures and moves on rather than failing the request.
type ApiRequestRepository interface {
	Add(db qrm.Queryable, ar model.APIRequest) (*model.APIRequest, error)
	Update(db qrm.Executable, ar model.APIRequest) error
}

type apiRequestRepositoryHandler struct{}

func NewApiRequestRepository() ApiRequestRepository {
	return apiRequestRepositoryHandler{}
}

func (h apiRequestRepositoryHandler) Add(db qrm.Queryable, ar model.APIRequest) (*model.APIRequest, error) {
	ar.RequestID = uuid.New()

	query := table.APIRequest.
		INSERT(table.APIRequest.MutableColumns).
		MODEL(ar).
		RETURNING(table.APIRequest.AllColumns)

	out := &model.APIRequest{}
	err := query.Query(db, out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert api request: %w", err)
	}

	return out, nil
}

func (h apiRequestRepositoryHandler) Update(db qrm.Executable, ar model.APIRequest) error {
	query := table.APIRequest.
		UPDATE(table.APIRequest.DurationMs, table.APIRequest.StatusCode, table.APIRequest.ResponseBody).
		MODEL(ar).
		WHERE(table.APIRequest.RequestID.EQ(postgres.UUID(ar.RequestID)))

	_, err := query.Exec(db)
	if err != nil {
		return fmt.Errorf("failed to update api request: %w", err)
	}

	return nil
}
