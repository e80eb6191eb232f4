package service

import (
	"context"

	"github.com/carehub/carehub/internal/api/dto"
	"github.com/carehub/carehub/internal/domain/notice"
	"github.com/carehub/carehub/internal/domain/owner"
	"github.com/carehub/carehub/internal/store"
	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
)

type NoticeService interface {
	CreateNotice(ctx context.Context, req dto.CreateNoticeRequest) (*dto.NoticeResponse, error)
	GetNotice(ctx context.Context, id string) (*dto.NoticeResponse, error)
	ListNotices(ctx context.Context, filter *types.RecordFilter) (*dto.ListNoticesResponse, error)
	ListActiveNotices(ctx context.Context, req dto.ListActiveNoticesRequest) (*dto.ListNoticesResponse, error)
	UpdateNotice(ctx context.Context, id string, req dto.UpdateNoticeRequest) (*dto.NoticeResponse, error)
	ArchiveNotice(ctx context.Context, id string, req dto.ArchiveRecordRequest) (*dto.NoticeResponse, error)
}

type noticeService struct {
	ServiceParams
	engine *store.Engine[notice.Payload]
}

func NewNoticeService(params ServiceParams, resolver owner.Resolver) NoticeService {
	return &noticeService{
		ServiceParams: params,
		engine: store.NewEngine(store.Params[notice.Payload]{
			Kind:               notice.Kind,
			Schema:             notice.Schema(),
			Repo:               params.NoticeRepo,
			Resolver:           resolver,
			Clock:              params.Clock,
			VersionGranularity: params.versionGranularity(),
			Logger:             params.Logger,
		}),
	}
}

func (s *noticeService) CreateNotice(ctx context.Context, req dto.CreateNoticeRequest) (*dto.NoticeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n, err := s.engine.Create(ctx, req.ToCreateInput(ctx))
	if err != nil {
		return nil, err
	}

	return dto.NewNoticeResponse(n), nil
}

func (s *noticeService) GetNotice(ctx context.Context, id string) (*dto.NoticeResponse, error) {
	n, err := s.engine.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewNoticeResponse(n), nil
}

func (s *noticeService) ListNotices(ctx context.Context, filter *types.RecordFilter) (*dto.ListNoticesResponse, error) {
	if filter == nil {
		filter = types.NewRecordFilter()
	}

	notices, err := s.engine.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.engine.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(notices, func(n *notice.Notice, _ int) *dto.NoticeResponse {
		return dto.NewNoticeResponse(n)
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// ListActiveNotices returns the notices currently visible on the dashboards
// of the given houses. Unknown house ids simply yield no matches; listing
// degrades to empty rather than failing.
func (s *noticeService) ListActiveNotices(ctx context.Context, req dto.ListActiveNoticesRequest) (*dto.ListNoticesResponse, error) {
	asOf := s.Clock.Now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	group := lo.Map(req.HouseIDs, func(id string, _ int) types.OwnerRef {
		return types.NewOwnerRef(types.OwnerTypeHouse, id)
	})

	notices, err := s.engine.ListActive(ctx, nil, asOf, group)
	if err != nil {
		return nil, err
	}

	items := lo.Map(notices, func(n *notice.Notice, _ int) *dto.NoticeResponse {
		return dto.NewNoticeResponse(n)
	})
	resp := types.NewListResponse(items, len(items), len(items), 0)
	return &resp, nil
}

func (s *noticeService) UpdateNotice(ctx context.Context, id string, req dto.UpdateNoticeRequest) (*dto.NoticeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n, err := s.engine.Update(ctx, id, req.ExpectedVersion, func(n *notice.Notice) error {
		req.Apply(n)
		return n.Payload.Validate()
	})
	if err != nil {
		return nil, err
	}

	return dto.NewNoticeResponse(n), nil
}

func (s *noticeService) ArchiveNotice(ctx context.Context, id string, req dto.ArchiveRecordRequest) (*dto.NoticeResponse, error) {
	n, err := s.engine.Archive(ctx, id, req.ExpectedVersion)
	if err != nil {
		return nil, err
	}
	return dto.NewNoticeResponse(n), nil
}
