// Package store implements the mutable-record lifecycle controller: audit
// stamping on create, optimistic-concurrency conflict detection on update,
// soft and hard deletion, and filtered listing. One Engine instance serves
// one record kind; all kinds share the same semantics.
package store

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/clock"
	"github.com/carehub/carehub/internal/domain/owner"
	"github.com/carehub/carehub/internal/domain/record"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/logger"
	"github.com/carehub/carehub/internal/query"
	"github.com/carehub/carehub/internal/types"
)

// Mutator transforms the mutable fields of a record (payload, status,
// validity window) into their new values. It must not touch the id, kind or
// audit fields; the engine re-asserts those after the mutator runs. A
// returned error aborts the update before any write.
type Mutator[P any] func(*record.Record[P]) error

// CreateInput carries everything a create operation needs beyond the actor,
// which is read from the context.
type CreateInput[P any] struct {
	Payload   P
	OwnerRefs types.OwnerRefs
	Window    types.ValidityWindow

	// InitialStatus overrides the default active status for kinds that
	// require it. Nil means active.
	InitialStatus *types.Status
}

// Engine is the generic record store for one kind.
type Engine[P any] struct {
	kind        types.RecordKind
	schema      query.FieldSchema[P]
	repo        record.Repository[P]
	resolver    owner.Resolver
	clock       clock.Clock
	granularity time.Duration
	logger      *logger.Logger
}

// Params collects the engine's dependencies.
type Params[P any] struct {
	Kind     types.RecordKind
	Schema   query.FieldSchema[P]
	Repo     record.Repository[P]
	Resolver owner.Resolver
	Clock    clock.Clock

	// VersionGranularity is the truncation applied to version tokens
	// before comparison. Zero means exact comparison.
	VersionGranularity time.Duration

	Logger *logger.Logger
}

// NewEngine creates a record engine for one kind.
func NewEngine[P any](p Params[P]) *Engine[P] {
	if p.Clock == nil {
		p.Clock = clock.NewWallClock()
	}
	if p.Logger == nil {
		p.Logger = logger.L
	}
	return &Engine[P]{
		kind:        p.Kind,
		schema:      p.Schema,
		repo:        p.Repo,
		resolver:    p.Resolver,
		clock:       p.Clock,
		granularity: p.VersionGranularity,
		logger:      p.Logger,
	}
}

// Create resolves the owner references, assigns an id, stamps the audit
// fields from a single clock observation and persists the record.
func (e *Engine[P]) Create(ctx context.Context, in CreateInput[P]) (*record.Record[P], error) {
	if err := in.OwnerRefs.Validate(); err != nil {
		return nil, err
	}
	if in.InitialStatus != nil {
		if err := in.InitialStatus.Validate(); err != nil {
			return nil, err
		}
	}
	if e.resolver != nil {
		if err := e.resolver.Resolve(ctx, in.OwnerRefs); err != nil {
			return nil, err
		}
	}

	now := e.clock.Now()
	r := &record.Record[P]{
		ID:             types.GenerateUUIDWithPrefix(e.kind.IDPrefix()),
		Kind:           e.kind,
		Payload:        in.Payload,
		OwnerRefs:      in.OwnerRefs,
		ValidityWindow: in.Window,
		BaseModel:      types.GetDefaultBaseModel(ctx, now),
	}
	if in.InitialStatus != nil {
		r.Status = *in.InitialStatus
	}

	if err := e.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	e.logger.Debugw("created record",
		"record_id", r.ID,
		"kind", e.kind,
		"actor", r.CreatedBy,
	)
	return r, nil
}

// Get retrieves a record by id.
func (e *Engine[P]) Get(ctx context.Context, id string) (*record.Record[P], error) {
	return e.repo.Get(ctx, id)
}

// Update applies a conditional, partial update. expectedVersion is the
// UpdatedAt value the caller last observed; nil skips the conflict check.
// Both sides of the comparison are truncated to the configured granularity
// to tolerate serialization precision loss. The mutator only sees the
// mutable fields take effect: id, kind, tenant and creation stamps are
// re-asserted afterward, so an omitted field keeps its prior value.
func (e *Engine[P]) Update(ctx context.Context, id string, expectedVersion *time.Time, mutate Mutator[P]) (*record.Record[P], error) {
	current, err := e.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if expectedVersion != nil && !e.versionMatches(current.UpdatedAt, *expectedVersion) {
		return nil, ierr.NewError("record was modified by another caller").
			WithHint("The record changed since it was last read. Re-fetch and retry.").
			WithReportableDetails(map[string]any{
				"record_id":        id,
				"expected_version": expectedVersion.UTC(),
				"actual_version":   current.UpdatedAt,
			}).
			Mark(ierr.ErrVersionConflict)
	}

	next := current.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}

	// Immutable fields win over whatever the mutator did to them.
	next.ID = current.ID
	next.Kind = current.Kind
	next.TenantID = current.TenantID
	next.CreatedAt = current.CreatedAt
	next.CreatedBy = current.CreatedBy

	now := e.clock.Now()
	next.UpdatedAt = now
	next.UpdatedBy = types.GetUserID(ctx)

	// The adapter re-checks the pre-image version under its own write
	// guard, so a writer that slipped in after the read above surfaces as
	// a conflict instead of being silently overwritten.
	if err := e.repo.Update(ctx, next, current.UpdatedAt); err != nil {
		return nil, err
	}

	e.logger.Debugw("updated record",
		"record_id", next.ID,
		"kind", e.kind,
		"actor", next.UpdatedBy,
	)
	return next, nil
}

// UpdateStatus is a conflict-checked status transition: soft delete,
// reactivation, incident close. The engine imposes no state machine beyond
// the enumeration itself.
func (e *Engine[P]) UpdateStatus(ctx context.Context, id string, expectedVersion *time.Time, status types.Status) (*record.Record[P], error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return e.Update(ctx, id, expectedVersion, func(r *record.Record[P]) error {
		r.Status = status
		return nil
	})
}

// Archive soft-deletes a record through the conflict-checked update path.
func (e *Engine[P]) Archive(ctx context.Context, id string, expectedVersion *time.Time) (*record.Record[P], error) {
	return e.UpdateStatus(ctx, id, expectedVersion, types.StatusInactive)
}

// Delete removes a record unconditionally. Idempotent: deleting an absent id
// is a no-op, so multi-client retries stay safe. No read-modify-write race
// applies to an unconditional delete, hence no version token.
func (e *Engine[P]) Delete(ctx context.Context, id string) error {
	return e.repo.Delete(ctx, id)
}

// List applies the assembled filter predicate and pagination. Listing never
// fails on "nothing matches"; it degrades to an empty result.
func (e *Engine[P]) List(ctx context.Context, filter *types.RecordFilter) ([]*record.Record[P], error) {
	if filter == nil {
		filter = types.NewRecordFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return e.repo.List(ctx, filter, query.Build(filter, e.schema))
}

// Count returns the number of records matching the filter.
func (e *Engine[P]) Count(ctx context.Context, filter *types.RecordFilter) (int, error) {
	if filter == nil {
		filter = types.NewRecordFilter()
	}
	if err := filter.Validate(); err != nil {
		return 0, err
	}
	return e.repo.Count(ctx, filter, query.Build(filter, e.schema))
}

// ListActive lists the records that are currently active at asOf for the
// given group context, on top of whatever other criteria the filter
// supplies. The visibility predicate subsumes the status criterion, so the
// filter's own status field is ignored here.
func (e *Engine[P]) ListActive(ctx context.Context, filter *types.RecordFilter, asOf time.Time, group types.OwnerRefs) ([]*record.Record[P], error) {
	if filter == nil {
		filter = types.NewNoLimitRecordFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	scrubbed := *filter
	if scrubbed.QueryFilter != nil {
		qf := *scrubbed.QueryFilter
		qf.Status = nil
		scrubbed.QueryFilter = &qf
	}

	pred := query.And(
		query.Build(&scrubbed, e.schema),
		func(r *record.Record[P]) bool {
			return r.IsVisibleAt(asOf, group)
		},
	)
	return e.repo.List(ctx, &scrubbed, pred)
}

func (e *Engine[P]) versionMatches(stored, expected time.Time) bool {
	if e.granularity <= 0 {
		return stored.Equal(expected)
	}
	return stored.Truncate(e.granularity).Equal(expected.Truncate(e.granularity))
}
