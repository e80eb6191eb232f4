package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/carehub/carehub/internal/domain/staff"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/logger"
	"github.com/carehub/carehub/internal/postgres"
	"github.com/carehub/carehub/internal/types"
	"github.com/lib/pq"
)

type StaffRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewStaffRepository(db *postgres.DB, logger *logger.Logger) staff.Repository {
	return &StaffRepository{db: db, logger: logger}
}

func (r *StaffRepository) Create(ctx context.Context, m *staff.Member) error {
	query := `INSERT INTO staff (
		id, name, email, role, house_id,
		tenant_id, status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :name, :email, :role, :house_id,
		:tenant_id, :status, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ierr.WithError(err).
				WithHintf("A staff member with id %s already exists", m.ID).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create staff member").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *StaffRepository) Get(ctx context.Context, id string) (*staff.Member, error) {
	query := `SELECT * FROM staff WHERE id = $1` + tenantClause(ctx, 2)

	var m staff.Member
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &m, query, tenantArgs(ctx, id)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("staff member not found").
				WithHintf("Staff member with id %s was not found", id).
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch staff member").
			Mark(ierr.ErrDatabase)
	}
	return &m, nil
}

func (r *StaffRepository) List(ctx context.Context, filter *types.EntityFilter) ([]*staff.Member, error) {
	if filter == nil {
		filter = types.NewEntityFilter()
	}

	where, args := staffWhere(ctx, filter)
	query := `SELECT * FROM staff` + where +
		` ORDER BY created_at DESC, id DESC` + limitClause(filter, len(args))
	args = append(args, limitArgs(filter)...)

	members := []*staff.Member{}
	q := r.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &members, query, args...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list staff").
			Mark(ierr.ErrDatabase)
	}
	return members, nil
}

func (r *StaffRepository) Count(ctx context.Context, filter *types.EntityFilter) (int, error) {
	if filter == nil {
		filter = types.NewEntityFilter()
	}

	where, args := staffWhere(ctx, filter)
	query := `SELECT COUNT(*) FROM staff` + where

	var count int
	q := r.db.GetQuerier(ctx)
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count staff").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *StaffRepository) Update(ctx context.Context, m *staff.Member) error {
	query := `UPDATE staff SET
		name = :name,
		email = :email,
		role = :role,
		house_id = :house_id,
		status = :status,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND tenant_id = :tenant_id`

	res, err := r.db.NamedExecContext(ctx, query, m)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update staff member").
			Mark(ierr.ErrDatabase)
	}
	return requireAffected(res, m.ID, "staff member")
}

// Delete archives the staff member rather than removing the row.
func (r *StaffRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE staff SET status = $1 WHERE id = $2` + tenantClause(ctx, 3)

	q := r.db.GetQuerier(ctx)
	res, err := q.ExecContext(ctx, query, tenantArgs(ctx, string(types.StatusInactive), id)...)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to archive staff member").
			Mark(ierr.ErrDatabase)
	}
	return requireAffected(res, id, "staff member")
}

func staffWhere(ctx context.Context, filter *types.EntityFilter) (string, []interface{}) {
	b := newWhereBuilder(ctx)
	b.statusIs(filter.GetStatus())
	if filter.Search != "" {
		b.searchAcross(filter.Search, "name", "email")
	}
	if len(filter.HouseIDs) > 0 {
		b.anyOf("house_id", filter.HouseIDs)
	}
	return b.clause()
}
