package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/carehub/carehub/internal/clock"
	"github.com/carehub/carehub/internal/domain/record"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/query"
	"github.com/carehub/carehub/internal/storage/memory"
	"github.com/carehub/carehub/internal/testutil"
	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type noticePayload struct {
	Title    string
	Body     string
	Category string
}

func noticeSchema() query.FieldSchema[noticePayload] {
	return query.FieldSchema[noticePayload]{
		SearchFields: func(r *record.Record[noticePayload]) []string {
			return []string{r.Payload.Title, r.Payload.Body}
		},
		Category: func(r *record.Record[noticePayload]) string {
			return r.Payload.Category
		},
	}
}

// stubResolver resolves every reference except the ids listed in missing.
type stubResolver struct {
	missing map[string]bool
	calls   int
}

func (s *stubResolver) Resolve(ctx context.Context, refs types.OwnerRefs) error {
	s.calls++
	for _, ref := range refs {
		if s.missing[ref.ID] {
			return ierr.NewError("referenced owner does not exist").
				WithHintf("%s %s does not exist", ref.Type, ref.ID).
				Mark(ierr.ErrReferenceNotFound)
		}
	}
	return nil
}

type EngineTestSuite struct {
	suite.Suite
	ctx      context.Context
	clock    *clock.FixedClock
	repo     *memory.RecordRepository[noticePayload]
	resolver *stubResolver
	engine   *Engine[noticePayload]
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.clock = clock.NewFixedClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	s.repo = memory.NewRecordRepository[noticePayload]()
	s.resolver = &stubResolver{missing: map[string]bool{}}
	s.engine = NewEngine(Params[noticePayload]{
		Kind:               types.RecordKindNotice,
		Schema:             noticeSchema(),
		Repo:               s.repo,
		Resolver:           s.resolver,
		Clock:              s.clock,
		VersionGranularity: time.Second,
	})
}

func (s *EngineTestSuite) create(title string, refs ...types.OwnerRef) *record.Record[noticePayload] {
	r, err := s.engine.Create(s.ctx, CreateInput[noticePayload]{
		Payload:   noticePayload{Title: title, Body: "body of " + title},
		OwnerRefs: refs,
	})
	s.NoError(err)
	return r
}

func (s *EngineTestSuite) TestCreateStampsAuditFields() {
	now := s.clock.Now()
	h1 := types.NewOwnerRef(types.OwnerTypeHouse, "house-1")

	r := s.create("fire drill", h1)

	s.True(strings.HasPrefix(r.ID, "notice_"))
	s.Equal(types.RecordKindNotice, r.Kind)
	s.Equal(types.StatusActive, r.Status)
	s.Equal(types.DefaultTenantID, r.TenantID)
	s.Equal(types.DefaultUserID, r.CreatedBy)
	s.Equal(types.DefaultUserID, r.UpdatedBy)
	s.Equal(now, r.CreatedAt)
	s.Equal(now, r.UpdatedAt, "creation stamps share one clock observation")
	s.Equal(1, s.resolver.calls)

	stored, err := s.engine.Get(s.ctx, r.ID)
	s.NoError(err)
	s.Equal(r.Payload, stored.Payload)
}

func (s *EngineTestSuite) TestCreateWithInitialStatus() {
	r, err := s.engine.Create(s.ctx, CreateInput[noticePayload]{
		Payload:       noticePayload{Title: "draft"},
		InitialStatus: lo.ToPtr(types.StatusInactive),
	})
	s.NoError(err)
	s.Equal(types.StatusInactive, r.Status)
}

func (s *EngineTestSuite) TestCreateRejectsInvalidOwnerRef() {
	_, err := s.engine.Create(s.ctx, CreateInput[noticePayload]{
		Payload:   noticePayload{Title: "bad ref"},
		OwnerRefs: types.OwnerRefs{types.NewOwnerRef(types.OwnerTypeHouse, "")},
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *EngineTestSuite) TestCreateRejectsUnknownReference() {
	s.resolver.missing["house-9"] = true

	_, err := s.engine.Create(s.ctx, CreateInput[noticePayload]{
		Payload:   noticePayload{Title: "orphan"},
		OwnerRefs: types.OwnerRefs{types.NewOwnerRef(types.OwnerTypeHouse, "house-9")},
	})
	s.Error(err)
	s.True(ierr.IsReferenceNotFound(err))

	count, err := s.engine.Count(s.ctx, nil)
	s.NoError(err)
	s.Zero(count, "nothing is persisted when a reference fails to resolve")
}

func (s *EngineTestSuite) TestGetNotFound() {
	_, err := s.engine.Get(s.ctx, "notice_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *EngineTestSuite) TestUpdateMergesAndStampsAudit() {
	r := s.create("original title")
	created := r.CreatedAt

	s.clock.Advance(2 * time.Hour)
	updated, err := s.engine.Update(s.ctx, r.ID, nil, func(n *record.Record[noticePayload]) error {
		n.Payload.Title = "revised title"
		return nil
	})
	s.NoError(err)

	s.Equal("revised title", updated.Payload.Title)
	s.Equal("body of original title", updated.Payload.Body, "untouched fields keep their values")
	s.Equal(created, updated.CreatedAt)
	s.Equal(created.Add(2*time.Hour), updated.UpdatedAt)
	s.True(updated.UpdatedAt.After(updated.CreatedAt))
}

func (s *EngineTestSuite) TestUpdateWithMatchingVersion() {
	r := s.create("versioned")

	s.clock.Advance(time.Minute)
	expected := r.UpdatedAt
	updated, err := s.engine.Update(s.ctx, r.ID, &expected, func(n *record.Record[noticePayload]) error {
		n.Payload.Body = "edited"
		return nil
	})
	s.NoError(err)
	s.Equal("edited", updated.Payload.Body)
}

func (s *EngineTestSuite) TestUpdateVersionConflict() {
	r := s.create("contended")
	stale := r.UpdatedAt

	s.clock.Advance(time.Minute)
	_, err := s.engine.Update(s.ctx, r.ID, nil, func(n *record.Record[noticePayload]) error {
		n.Payload.Body = "first writer"
		return nil
	})
	s.NoError(err)

	s.clock.Advance(time.Minute)
	_, err = s.engine.Update(s.ctx, r.ID, &stale, func(n *record.Record[noticePayload]) error {
		n.Payload.Body = "second writer"
		return nil
	})
	s.Error(err)
	s.True(ierr.IsVersionConflict(err))

	current, err := s.engine.Get(s.ctx, r.ID)
	s.NoError(err)
	s.Equal("first writer", current.Payload.Body, "the conflicting write left no trace")
}

func (s *EngineTestSuite) TestUpdateConflictsOnWriteBetweenReadAndCommit() {
	r := s.create("contended")
	token := r.UpdatedAt

	// Both writers carry the same token. The second writer commits while
	// the first is still merging, after the first's version check already
	// passed; the first's commit must then fail rather than erase it.
	_, err := s.engine.Update(s.ctx, r.ID, &token, func(n *record.Record[noticePayload]) error {
		s.clock.Advance(time.Minute)
		_, innerErr := s.engine.Update(s.ctx, r.ID, &token, func(inner *record.Record[noticePayload]) error {
			inner.Payload.Body = "interleaved writer"
			return nil
		})
		s.NoError(innerErr)

		n.Payload.Body = "slow writer"
		return nil
	})
	s.Error(err)
	s.True(ierr.IsVersionConflict(err))

	current, err := s.engine.Get(s.ctx, r.ID)
	s.NoError(err)
	s.Equal("interleaved writer", current.Payload.Body, "the first commit survived")
}

func (s *EngineTestSuite) TestUpdateVersionToleratesSubGranularityDrift() {
	r := s.create("precise")

	// token lost sub-second precision in serialization
	blurred := r.UpdatedAt.Truncate(time.Second).Add(300 * time.Millisecond)

	s.clock.Advance(time.Minute)
	_, err := s.engine.Update(s.ctx, r.ID, &blurred, func(n *record.Record[noticePayload]) error {
		n.Payload.Body = "still fine"
		return nil
	})
	s.NoError(err)
}

func (s *EngineTestSuite) TestUpdateExactComparisonWhenGranularityZero() {
	exact := NewEngine(Params[noticePayload]{
		Kind:     types.RecordKindNotice,
		Schema:   noticeSchema(),
		Repo:     s.repo,
		Resolver: s.resolver,
		Clock:    s.clock,
	})

	r := s.create("exact")
	drifted := r.UpdatedAt.Add(time.Millisecond)

	_, err := exact.Update(s.ctx, r.ID, &drifted, func(n *record.Record[noticePayload]) error {
		return nil
	})
	s.Error(err)
	s.True(ierr.IsVersionConflict(err))
}

func (s *EngineTestSuite) TestUpdateMutatorErrorAborts() {
	r := s.create("guarded")

	s.clock.Advance(time.Minute)
	_, err := s.engine.Update(s.ctx, r.ID, nil, func(n *record.Record[noticePayload]) error {
		n.Payload.Title = ""
		return ierr.NewError("title is required").Mark(ierr.ErrValidation)
	})
	s.Error(err)

	current, err := s.engine.Get(s.ctx, r.ID)
	s.NoError(err)
	s.Equal("guarded", current.Payload.Title)
	s.Equal(r.UpdatedAt, current.UpdatedAt, "a failed update stamps nothing")
}

func (s *EngineTestSuite) TestUpdateReassertsImmutableFields() {
	r := s.create("immutable")

	s.clock.Advance(time.Minute)
	updated, err := s.engine.Update(s.ctx, r.ID, nil, func(n *record.Record[noticePayload]) error {
		n.ID = "notice_forged"
		n.Kind = types.RecordKindIncident
		n.TenantID = "other-tenant"
		n.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
		n.CreatedBy = "intruder"
		return nil
	})
	s.NoError(err)

	s.Equal(r.ID, updated.ID)
	s.Equal(r.Kind, updated.Kind)
	s.Equal(r.TenantID, updated.TenantID)
	s.Equal(r.CreatedAt, updated.CreatedAt)
	s.Equal(r.CreatedBy, updated.CreatedBy)
}

func (s *EngineTestSuite) TestArchiveExcludesFromDefaultListing() {
	r := s.create("to archive")
	s.create("stays active")

	s.clock.Advance(time.Minute)
	archived, err := s.engine.Archive(s.ctx, r.ID, nil)
	s.NoError(err)
	s.Equal(types.StatusInactive, archived.Status)

	listed, err := s.engine.List(s.ctx, nil)
	s.NoError(err)
	s.Len(listed, 1)
	s.Equal("stays active", listed[0].Payload.Title)

	// the record itself is still readable
	got, err := s.engine.Get(s.ctx, r.ID)
	s.NoError(err)
	s.Equal(types.StatusInactive, got.Status)
}

func (s *EngineTestSuite) TestArchiveWithStaleVersionConflicts() {
	r := s.create("contended archive")
	stale := r.UpdatedAt

	s.clock.Advance(time.Minute)
	_, err := s.engine.Update(s.ctx, r.ID, nil, func(n *record.Record[noticePayload]) error {
		n.Payload.Body = "changed"
		return nil
	})
	s.NoError(err)

	_, err = s.engine.Archive(s.ctx, r.ID, &stale)
	s.Error(err)
	s.True(ierr.IsVersionConflict(err))
}

func (s *EngineTestSuite) TestDeleteIsIdempotent() {
	r := s.create("short lived")

	s.NoError(s.engine.Delete(s.ctx, r.ID))
	s.NoError(s.engine.Delete(s.ctx, r.ID), "deleting an absent id is a no-op")
	s.NoError(s.engine.Delete(s.ctx, "notice_never_existed"))

	_, err := s.engine.Get(s.ctx, r.ID)
	s.True(ierr.IsNotFound(err))
}

func (s *EngineTestSuite) TestListPaginatesAndCounts() {
	for i := 0; i < 5; i++ {
		s.clock.Advance(time.Second)
		s.create("notice " + string(rune('a'+i)))
	}

	filter := types.NewRecordFilter()
	filter.Limit = lo.ToPtr(2)
	filter.Offset = lo.ToPtr(2)

	page, err := s.engine.List(s.ctx, filter)
	s.NoError(err)
	s.Len(page, 2)
	// default order is created_at desc
	s.Equal("notice c", page[0].Payload.Title)
	s.Equal("notice b", page[1].Payload.Title)

	total, err := s.engine.Count(s.ctx, filter)
	s.NoError(err)
	s.Equal(5, total, "count ignores pagination")
}

func (s *EngineTestSuite) TestListRejectsInvalidFilter() {
	filter := types.NewRecordFilter()
	filter.Limit = lo.ToPtr(-1)

	_, err := s.engine.List(s.ctx, filter)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *EngineTestSuite) TestListActiveAppliesVisibility() {
	h1 := types.NewOwnerRef(types.OwnerTypeHouse, "house-1")
	h2 := types.NewOwnerRef(types.OwnerTypeHouse, "house-2")
	now := s.clock.Now()

	visible := s.create("visible", h1)

	expired, err := s.engine.Create(s.ctx, CreateInput[noticePayload]{
		Payload:   noticePayload{Title: "expired"},
		OwnerRefs: types.OwnerRefs{h1},
		Window:    types.ValidityWindow{ValidUntil: lo.ToPtr(now.Add(-time.Hour))},
	})
	s.NoError(err)

	otherHouse := s.create("other house", h2)

	archived := s.create("archived", h1)
	s.clock.Advance(time.Minute)
	_, err = s.engine.Archive(s.ctx, archived.ID, nil)
	s.NoError(err)

	active, err := s.engine.ListActive(s.ctx, nil, s.clock.Now(), types.OwnerRefs{h1})
	s.NoError(err)
	s.Len(active, 1)
	s.Equal(visible.ID, active[0].ID)

	// empty group lifts the owner constraint but keeps the rest
	all, err := s.engine.ListActive(s.ctx, nil, s.clock.Now(), nil)
	s.NoError(err)
	s.Len(all, 2)
	_ = expired
	_ = otherHouse
}

func (s *EngineTestSuite) TestListActiveIgnoresFilterStatus() {
	r := s.create("archived but filtered")
	s.clock.Advance(time.Minute)
	_, err := s.engine.Archive(s.ctx, r.ID, nil)
	s.NoError(err)

	filter := types.NewNoLimitRecordFilter()
	filter.Status = lo.ToPtr(types.StatusInactive)

	active, err := s.engine.ListActive(s.ctx, filter, s.clock.Now(), nil)
	s.NoError(err)
	s.Empty(active, "visibility subsumes the status criterion")
}
