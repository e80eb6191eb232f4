package service

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/api/dto"
	"github.com/carehub/carehub/internal/domain/handover"
	"github.com/carehub/carehub/internal/domain/owner"
	"github.com/carehub/carehub/internal/store"
	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
)

type HandoverService interface {
	CreateHandover(ctx context.Context, req dto.CreateHandoverRequest) (*dto.HandoverResponse, error)
	GetHandover(ctx context.Context, id string) (*dto.HandoverResponse, error)
	ListHandovers(ctx context.Context, filter *types.RecordFilter) (*dto.ListHandoversResponse, error)
	ListHouseHandovers(ctx context.Context, houseID string, from, to *time.Time) (*dto.ListHandoversResponse, error)
	UpdateHandover(ctx context.Context, id string, req dto.UpdateHandoverRequest) (*dto.HandoverResponse, error)
	ArchiveHandover(ctx context.Context, id string, req dto.ArchiveRecordRequest) (*dto.HandoverResponse, error)
}

type handoverService struct {
	ServiceParams
	engine *store.Engine[handover.Payload]
}

func NewHandoverService(params ServiceParams, resolver owner.Resolver) HandoverService {
	return &handoverService{
		ServiceParams: params,
		engine: store.NewEngine(store.Params[handover.Payload]{
			Kind:               handover.Kind,
			Schema:             handover.Schema(),
			Repo:               params.HandoverRepo,
			Resolver:           resolver,
			Clock:              params.Clock,
			VersionGranularity: params.versionGranularity(),
			Logger:             params.Logger,
		}),
	}
}

func (s *handoverService) CreateHandover(ctx context.Context, req dto.CreateHandoverRequest) (*dto.HandoverResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	h, err := s.engine.Create(ctx, req.ToCreateInput(ctx))
	if err != nil {
		return nil, err
	}

	return dto.NewHandoverResponse(h), nil
}

func (s *handoverService) GetHandover(ctx context.Context, id string) (*dto.HandoverResponse, error) {
	h, err := s.engine.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewHandoverResponse(h), nil
}

func (s *handoverService) ListHandovers(ctx context.Context, filter *types.RecordFilter) (*dto.ListHandoversResponse, error) {
	if filter == nil {
		filter = types.NewRecordFilter()
	}

	handovers, err := s.engine.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.engine.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(handovers, func(h *handover.Handover, _ int) *dto.HandoverResponse {
		return dto.NewHandoverResponse(h)
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// ListHouseHandovers returns the handovers logged for a house whose shift
// start falls inside the optional [from, to) range, newest first.
func (s *handoverService) ListHouseHandovers(ctx context.Context, houseID string, from, to *time.Time) (*dto.ListHandoversResponse, error) {
	filter := types.NewRecordFilter()
	filter.OwnerRefs = types.OwnerRefs{
		types.NewOwnerRef(types.OwnerTypeHouse, houseID),
	}
	if from != nil || to != nil {
		filter.TimeRangeFilter = &types.TimeRangeFilter{
			StartTime: from,
			EndTime:   to,
		}
	}
	return s.ListHandovers(ctx, filter)
}

func (s *handoverService) UpdateHandover(ctx context.Context, id string, req dto.UpdateHandoverRequest) (*dto.HandoverResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	h, err := s.engine.Update(ctx, id, req.ExpectedVersion, func(h *handover.Handover) error {
		req.Apply(h)
		return h.Payload.Validate()
	})
	if err != nil {
		return nil, err
	}

	return dto.NewHandoverResponse(h), nil
}

func (s *handoverService) ArchiveHandover(ctx context.Context, id string, req dto.ArchiveRecordRequest) (*dto.HandoverResponse, error) {
	h, err := s.engine.Archive(ctx, id, req.ExpectedVersion)
	if err != nil {
		return nil, err
	}
	return dto.NewHandoverResponse(h), nil
}
