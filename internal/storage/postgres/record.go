// Package postgres provides sqlx-backed storage adapters over a single
// records table keyed by kind, with kind payloads stored as jsonb.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/carehub/carehub/internal/domain/record"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/logger"
	"github.com/carehub/carehub/internal/postgres"
	"github.com/carehub/carehub/internal/types"
	"github.com/lib/pq"
)

// RecordRepository is a postgres implementation of record.Repository for one
// record kind. Predicates assembled by the query package are evaluated in
// process, so the adapter narrows the scan with the cheap SQL criteria
// (tenant, kind, status) and streams the rest through the predicate.
type RecordRepository[P any] struct {
	db     *postgres.DB
	kind   types.RecordKind
	logger *logger.Logger
}

func NewRecordRepository[P any](db *postgres.DB, kind types.RecordKind, logger *logger.Logger) *RecordRepository[P] {
	return &RecordRepository[P]{
		db:     db,
		kind:   kind,
		logger: logger,
	}
}

type recordRow struct {
	ID         string     `db:"id"`
	Kind       string     `db:"kind"`
	TenantID   string     `db:"tenant_id"`
	Status     string     `db:"status"`
	Payload    []byte     `db:"payload"`
	OwnerRefs  []byte     `db:"owner_refs"`
	ValidFrom  *time.Time `db:"valid_from"`
	ValidUntil *time.Time `db:"valid_until"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	CreatedBy  string     `db:"created_by"`
	UpdatedBy  string     `db:"updated_by"`
}

func (s *RecordRepository[P]) toRow(r *record.Record[P]) (*recordRow, error) {
	payload, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to serialize record payload").
			Mark(ierr.ErrDatabase)
	}
	refs, err := json.Marshal(r.OwnerRefs)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to serialize owner references").
			Mark(ierr.ErrDatabase)
	}
	return &recordRow{
		ID:         r.ID,
		Kind:       string(r.Kind),
		TenantID:   r.TenantID,
		Status:     string(r.Status),
		Payload:    payload,
		OwnerRefs:  refs,
		ValidFrom:  r.ValidFrom,
		ValidUntil: r.ValidUntil,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		CreatedBy:  r.CreatedBy,
		UpdatedBy:  r.UpdatedBy,
	}, nil
}

func (s *RecordRepository[P]) fromRow(row *recordRow) (*record.Record[P], error) {
	r := &record.Record[P]{
		ID:   row.ID,
		Kind: types.RecordKind(row.Kind),
		ValidityWindow: types.ValidityWindow{
			ValidFrom:  row.ValidFrom,
			ValidUntil: row.ValidUntil,
		},
		BaseModel: types.BaseModel{
			TenantID:  row.TenantID,
			Status:    types.Status(row.Status),
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			CreatedBy: row.CreatedBy,
			UpdatedBy: row.UpdatedBy,
		},
	}
	if err := json.Unmarshal(row.Payload, &r.Payload); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to deserialize record payload").
			WithReportableDetails(map[string]any{"id": row.ID}).
			Mark(ierr.ErrDatabase)
	}
	if len(row.OwnerRefs) > 0 {
		if err := json.Unmarshal(row.OwnerRefs, &r.OwnerRefs); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to deserialize owner references").
				WithReportableDetails(map[string]any{"id": row.ID}).
				Mark(ierr.ErrDatabase)
		}
	}
	return r, nil
}

func (s *RecordRepository[P]) Create(ctx context.Context, r *record.Record[P]) error {
	row, err := s.toRow(r)
	if err != nil {
		return err
	}

	query := `INSERT INTO records (
		id, kind, tenant_id, status, payload, owner_refs,
		valid_from, valid_until, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :kind, :tenant_id, :status, :payload, :owner_refs,
		:valid_from, :valid_until, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ierr.WithError(err).
				WithHintf("A record with id %s already exists", r.ID).
				WithReportableDetails(map[string]any{"id": r.ID}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create record").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *RecordRepository[P]) Get(ctx context.Context, id string) (*record.Record[P], error) {
	query := `SELECT id, kind, tenant_id, status, payload, owner_refs,
		valid_from, valid_until, created_at, updated_at, created_by, updated_by
		FROM records WHERE id = $1 AND kind = $2` + tenantClause(ctx, 3)

	var row recordRow
	q := s.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &row, query, tenantArgs(ctx, id, string(s.kind))...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.NewError("record not found").
				WithHintf("Record with id %s was not found", id).
				WithReportableDetails(map[string]any{"id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to fetch record").
			Mark(ierr.ErrDatabase)
	}
	return s.fromRow(&row)
}

// Update is a compare-and-swap on the stored updated_at: the prior version
// the caller read is part of the WHERE clause, so an interleaved writer
// surfaces as a conflict instead of a silently lost commit.
func (s *RecordRepository[P]) Update(ctx context.Context, r *record.Record[P], prior time.Time) error {
	row, err := s.toRow(r)
	if err != nil {
		return err
	}

	arg := struct {
		recordRow
		PriorUpdatedAt time.Time `db:"prior_updated_at"`
	}{recordRow: *row, PriorUpdatedAt: prior}

	query := `UPDATE records SET
		status = :status,
		payload = :payload,
		owner_refs = :owner_refs,
		valid_from = :valid_from,
		valid_until = :valid_until,
		updated_at = :updated_at,
		updated_by = :updated_by
	WHERE id = :id AND kind = :kind AND tenant_id = :tenant_id
		AND updated_at = :prior_updated_at`

	res, err := s.db.NamedExecContext(ctx, query, arg)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update record").
			Mark(ierr.ErrDatabase)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update record").
			Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return s.explainMissedUpdate(ctx, r.ID, prior)
	}
	return nil
}

// explainMissedUpdate distinguishes a vanished record from a version
// mismatch after a zero-row conditional UPDATE.
func (s *RecordRepository[P]) explainMissedUpdate(ctx context.Context, id string, prior time.Time) error {
	query := `SELECT updated_at FROM records WHERE id = $1 AND kind = $2` + tenantClause(ctx, 3)

	var stored time.Time
	q := s.db.GetQuerier(ctx)
	err := q.GetContext(ctx, &stored, query, tenantArgs(ctx, id, string(s.kind))...)
	if errors.Is(err, sql.ErrNoRows) {
		return ierr.NewError("record not found").
			WithHintf("Record with id %s was not found", id).
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update record").
			Mark(ierr.ErrDatabase)
	}
	return ierr.NewError("record was modified by another caller").
		WithHint("The record changed since it was last read. Re-fetch and retry.").
		WithReportableDetails(map[string]any{
			"id":             id,
			"prior_version":  prior,
			"stored_version": stored,
		}).
		Mark(ierr.ErrVersionConflict)
}

// Delete is idempotent: deleting an absent id is a no-op.
func (s *RecordRepository[P]) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM records WHERE id = $1 AND kind = $2` + tenantClause(ctx, 3)

	q := s.db.GetQuerier(ctx)
	if _, err := q.ExecContext(ctx, query, tenantArgs(ctx, id, string(s.kind))...); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete record").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *RecordRepository[P]) List(ctx context.Context, filter *types.RecordFilter, pred record.Predicate[P]) ([]*record.Record[P], error) {
	matched, err := s.scan(ctx, filter, pred)
	if err != nil {
		return nil, err
	}

	if filter != nil && !filter.IsUnlimited() {
		start := filter.GetOffset()
		if start >= len(matched) {
			return []*record.Record[P]{}, nil
		}
		end := start + filter.GetLimit()
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, nil
}

func (s *RecordRepository[P]) Count(ctx context.Context, filter *types.RecordFilter, pred record.Predicate[P]) (int, error) {
	matched, err := s.scan(ctx, filter, pred)
	if err != nil {
		return 0, err
	}
	return len(matched), nil
}

// scan fetches the kind's rows in sort order and evaluates the predicate in
// process. Pagination is applied by the caller after predicate filtering.
func (s *RecordRepository[P]) scan(ctx context.Context, filter *types.RecordFilter, pred record.Predicate[P]) ([]*record.Record[P], error) {
	query := `SELECT id, kind, tenant_id, status, payload, owner_refs,
		valid_from, valid_until, created_at, updated_at, created_by, updated_by
		FROM records WHERE kind = $1` + tenantClause(ctx, 2) + orderClause(filter)

	var rows []recordRow
	q := s.db.GetQuerier(ctx)
	if err := q.SelectContext(ctx, &rows, query, tenantArgs(ctx, string(s.kind))...); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list records").
			Mark(ierr.ErrDatabase)
	}

	result := make([]*record.Record[P], 0, len(rows))
	for i := range rows {
		r, err := s.fromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		if pred == nil || pred(r) {
			result = append(result, r)
		}
	}
	return result, nil
}

// tenantClause appends a tenant guard when the context carries a tenant,
// numbering the placeholder from pos.
func tenantClause(ctx context.Context, pos int) string {
	if types.GetTenantID(ctx) == "" {
		return ""
	}
	return fmt.Sprintf(" AND tenant_id = $%d", pos)
}

func tenantArgs(ctx context.Context, args ...interface{}) []interface{} {
	out := make([]interface{}, 0, len(args)+1)
	out = append(out, args...)
	if tenantID := types.GetTenantID(ctx); tenantID != "" {
		out = append(out, tenantID)
	}
	return out
}

func orderClause(filter *types.RecordFilter) string {
	sortKey := types.FILTER_DEFAULT_SORT
	order := types.FILTER_DEFAULT_ORDER
	if filter != nil {
		sortKey = filter.GetSort()
		order = filter.GetOrder()
	}
	if sortKey != "created_at" && sortKey != "updated_at" {
		sortKey = types.FILTER_DEFAULT_SORT
	}
	if order != types.OrderAsc && order != types.OrderDesc {
		order = types.FILTER_DEFAULT_ORDER
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", sortKey, order, order)
}
