package service

import (
	"context"

	"github.com/carehub/carehub/internal/api/dto"
	"github.com/carehub/carehub/internal/types"
)

type StaffService interface {
	CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error)
	GetStaff(ctx context.Context, id string) (*dto.StaffResponse, error)
	ListStaff(ctx context.Context, filter *types.EntityFilter) (*dto.ListStaffResponse, error)
	DeleteStaff(ctx context.Context, id string) error
}

type staffService struct {
	ServiceParams
}

func NewStaffService(params ServiceParams) StaffService {
	return &staffService{ServiceParams: params}
}

func (s *staffService) CreateStaff(ctx context.Context, req dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.HouseID != "" {
		if _, err := s.HouseRepo.Get(ctx, req.HouseID); err != nil {
			return nil, err
		}
	}

	m := req.ToMember(ctx, s.Clock.Now())
	if err := s.StaffRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	return dto.NewStaffResponse(m), nil
}

func (s *staffService) GetStaff(ctx context.Context, id string) (*dto.StaffResponse, error) {
	m, err := s.StaffRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewStaffResponse(m), nil
}

func (s *staffService) ListStaff(ctx context.Context, filter *types.EntityFilter) (*dto.ListStaffResponse, error) {
	if filter == nil {
		filter = types.NewEntityFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	members, err := s.StaffRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.StaffRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.StaffResponse, len(members))
	for i, m := range members {
		items[i] = dto.NewStaffResponse(m)
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *staffService) DeleteStaff(ctx context.Context, id string) error {
	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.StaffRepo.Delete(txCtx, id); err != nil {
			return err
		}
		invalidateOwner(txCtx, s.Cache, types.OwnerTypeUser, id)
		return nil
	})
}
