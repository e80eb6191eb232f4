package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/carehub/carehub/internal/domain/house"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/logger"
	"github.com/carehub/carehub/internal/postgres"
	"github.com/carehub/carehub/internal/types"
	"github.com/lib/pq"
)

type HouseRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewHouseRepository(db *postgres.DB, logger *logger.Logger) house.Repository {
	return &HouseRepository{db: db, logger: logger}
}

func (r *HouseRepository) Create(ctx context.Context, h *house.House) error {
	query := `INSERT INTO houses (
		id, code, name, address,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :code, :name, :address,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := r.db.NamedExecContext(ctx, query, h); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ierr.WithError(err).
				WithHintf("A house with id %s or code %s already exists", h.ID, h.Code).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create house").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *HouseRepository) Get(ctx context.Context, id string) (*house.House, error) {
	query := `SELECT * FROM houses WHERE id = $1` + tenantClause(ctx, 2)
	return r.getOne(ctx, query, id)
}

func (r *HouseRepository) GetByCode(ctx context.Context, code string) (*house.House, error) {
	query := `SELECT * FROM houses WHERE code = $1` + tenantClause(ctx, 2)
	return r.getOne(ctx, query, code)
}

func (r *HouseRepository) getOne(ctx context.Context, query, key string) (*house.House, error) {
	var h house.House
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &h, query, tenantArgs(ctx, key)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("house not found").
				WithHintf("House %s was not found", key).
				WithReportableDetails(map[string]any{"key": key}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch house").
			Mark(ierr.ErrDatabase)
	}
	return &h, nil
}

func (r *HouseRepository) List(ctx context.Context, filter *types.EntityFilter) ([]*house.House, error) {
	if filter == nil {
		filter = types.NewEntityFilter()
	}

	where, args := houseWhere(ctx, filter)
	query := `SELECT * FROM houses` + where +
		` ORDER BY created_at DESC, id DESC` + limitClause(filter, len(args))
	args = append(args, limitArgs(filter)...)

	houses := []*house.House{}
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &houses, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list houses").
			Mark(ierr.ErrDatabase)
	}
	return houses, nil
}

func (r *HouseRepository) Count(ctx context.Context, filter *types.EntityFilter) (int, error) {
	if filter == nil {
		filter = types.NewEntityFilter()
	}

	where, args := houseWhere(ctx, filter)
	query := `SELECT COUNT(*) FROM houses` + where

	var count int
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count houses").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *HouseRepository) Update(ctx context.Context, h *house.House) error {
	query := `UPDATE houses SET
		name = :name,
		address = :address,
		status = :status,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND tenant_id = :tenant_id`

	res, err := r.db.NamedExecContext(ctx, query, h)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update house").
			Mark(ierr.ErrDatabase)
	}
	return requireAffected(res, h.ID, "house")
}

// Delete archives the house rather than removing the row.
func (r *HouseRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE houses SET status = $1 WHERE id = $2` + tenantClause(ctx, 3)

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, tenantArgs(ctx, string(types.StatusInactive), id)...)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to archive house").
			Mark(ierr.ErrDatabase)
	}
	return requireAffected(res, id, "house")
}

func houseWhere(ctx context.Context, filter *types.EntityFilter) (string, []interface{}) {
	b := newWhereBuilder(ctx)
	b.statusIs(filter.GetStatus())
	if filter.Search != "" {
		b.searchAcross(filter.Search, "name", "code")
	}
	return b.clause()
}
