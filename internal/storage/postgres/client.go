package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/carehub/carehub/internal/domain/client"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/logger"
	"github.com/carehub/carehub/internal/postgres"
	"github.com/carehub/carehub/internal/types"
	"github.com/lib/pq"
)

type ClientRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewClientRepository(db *postgres.DB, logger *logger.Logger) client.Repository {
	return &ClientRepository{db: db, logger: logger}
}

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	query := `INSERT INTO clients (
		id, first_name, last_name, date_of_birth, house_id,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :first_name, :last_name, :date_of_birth, :house_id,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ierr.WithError(err).
				WithHintf("A client with id %s already exists", c.ID).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *ClientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	query := `SELECT * FROM clients WHERE id = $1` + tenantClause(ctx, 2)

	var c client.Client
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &c, query, tenantArgs(ctx, id)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("client not found").
				WithHintf("Client with id %s was not found", id).
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch client").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *ClientRepository) List(ctx context.Context, filter *types.EntityFilter) ([]*client.Client, error) {
	if filter == nil {
		filter = types.NewEntityFilter()
	}

	where, args := clientWhere(ctx, filter)
	query := `SELECT * FROM clients` + where +
		` ORDER BY created_at DESC, id DESC` + limitClause(filter, len(args))
	args = append(args, limitArgs(filter)...)

	clients := []*client.Client{}
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &clients, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list clients").
			Mark(ierr.ErrDatabase)
	}
	return clients, nil
}

func (r *ClientRepository) Count(ctx context.Context, filter *types.EntityFilter) (int, error) {
	if filter == nil {
		filter = types.NewEntityFilter()
	}

	where, args := clientWhere(ctx, filter)
	query := `SELECT COUNT(*) FROM clients` + where

	var count int
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count clients").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	query := `UPDATE clients SET
		first_name = :first_name,
		last_name = :last_name,
		date_of_birth = :date_of_birth,
		house_id = :house_id,
		status = :status,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND tenant_id = :tenant_id`

	res, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update client").
			Mark(ierr.ErrDatabase)
	}
	return requireAffected(res, c.ID, "client")
}

// Delete archives the client rather than removing the row.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE clients SET status = $1 WHERE id = $2` + tenantClause(ctx, 3)

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, tenantArgs(ctx, string(types.StatusInactive), id)...)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to archive client").
			Mark(ierr.ErrDatabase)
	}
	return requireAffected(res, id, "client")
}

func clientWhere(ctx context.Context, filter *types.EntityFilter) (string, []interface{}) {
	b := newWhereBuilder(ctx)
	b.statusIs(filter.GetStatus())
	if filter.Search != "" {
		b.searchAcross(filter.Search, "first_name", "last_name")
	}
	if len(filter.HouseIDs) > 0 {
		b.anyOf("house_id", filter.HouseIDs)
	}
	return b.clause()
}
