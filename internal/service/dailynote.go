package service

import (
	"context"

	"github.com/carehub/carehub/internal/api/dto"
	"github.com/carehub/carehub/internal/domain/dailynote"
	"github.com/carehub/carehub/internal/domain/owner"
	"github.com/carehub/carehub/internal/store"
	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
)

type DailyNoteService interface {
	CreateDailyNote(ctx context.Context, req dto.CreateDailyNoteRequest) (*dto.DailyNoteResponse, error)
	GetDailyNote(ctx context.Context, id string) (*dto.DailyNoteResponse, error)
	ListDailyNotes(ctx context.Context, filter *types.RecordFilter) (*dto.ListDailyNotesResponse, error)
	UpdateDailyNote(ctx context.Context, id string, req dto.UpdateDailyNoteRequest) (*dto.DailyNoteResponse, error)
	DeleteDailyNote(ctx context.Context, id string) error
}

type dailyNoteService struct {
	ServiceParams
	engine *store.Engine[dailynote.Payload]
}

func NewDailyNoteService(params ServiceParams, resolver owner.Resolver) DailyNoteService {
	return &dailyNoteService{
		ServiceParams: params,
		engine: store.NewEngine(store.Params[dailynote.Payload]{
			Kind:               dailynote.Kind,
			Schema:             dailynote.Schema(),
			Repo:               params.DailyNoteRepo,
			Resolver:           resolver,
			Clock:              params.Clock,
			VersionGranularity: params.versionGranularity(),
			Logger:             params.Logger,
		}),
	}
}

func (s *dailyNoteService) CreateDailyNote(ctx context.Context, req dto.CreateDailyNoteRequest) (*dto.DailyNoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n, err := s.engine.Create(ctx, req.ToCreateInput(ctx))
	if err != nil {
		return nil, err
	}

	return dto.NewDailyNoteResponse(n), nil
}

func (s *dailyNoteService) GetDailyNote(ctx context.Context, id string) (*dto.DailyNoteResponse, error) {
	n, err := s.engine.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewDailyNoteResponse(n), nil
}

func (s *dailyNoteService) ListDailyNotes(ctx context.Context, filter *types.RecordFilter) (*dto.ListDailyNotesResponse, error) {
	if filter == nil {
		filter = types.NewRecordFilter()
	}

	notes, err := s.engine.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.engine.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(notes, func(n *dailynote.DailyNote, _ int) *dto.DailyNoteResponse {
		return dto.NewDailyNoteResponse(n)
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *dailyNoteService) UpdateDailyNote(ctx context.Context, id string, req dto.UpdateDailyNoteRequest) (*dto.DailyNoteResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n, err := s.engine.Update(ctx, id, req.ExpectedVersion, func(n *dailynote.DailyNote) error {
		req.Apply(n)
		return n.Payload.Validate()
	})
	if err != nil {
		return nil, err
	}

	return dto.NewDailyNoteResponse(n), nil
}

// DeleteDailyNote hard-removes the note. Daily notes are one of the few
// kinds with a real delete, and repeating it is safe.
func (s *dailyNoteService) DeleteDailyNote(ctx context.Context, id string) error {
	return s.engine.Delete(ctx, id)
}
