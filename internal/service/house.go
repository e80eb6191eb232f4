package service

import (
	"context"

	"github.com/carehub/carehub/internal/api/dto"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/types"
)

type HouseService interface {
	CreateHouse(ctx context.Context, req dto.CreateHouseRequest) (*dto.HouseResponse, error)
	GetHouse(ctx context.Context, id string) (*dto.HouseResponse, error)
	GetHouseByCode(ctx context.Context, code string) (*dto.HouseResponse, error)
	ListHouses(ctx context.Context, filter *types.EntityFilter) (*dto.ListHousesResponse, error)
	UpdateHouse(ctx context.Context, id string, req dto.UpdateHouseRequest) (*dto.HouseResponse, error)
	DeleteHouse(ctx context.Context, id string) error
}

type houseService struct {
	ServiceParams
}

func NewHouseService(params ServiceParams) HouseService {
	return &houseService{ServiceParams: params}
}

func (s *houseService) CreateHouse(ctx context.Context, req dto.CreateHouseRequest) (*dto.HouseResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	h := req.ToHouse(ctx, s.Clock.Now())

	// Code uniqueness is checked and the row inserted in one transaction
	// so two concurrent creates cannot both claim the same code.
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		existing, err := s.HouseRepo.GetByCode(txCtx, h.Code)
		if err == nil {
			return ierr.NewError("house code already in use").
				WithHintf("A house with code %s already exists", h.Code).
				WithReportableDetails(map[string]any{
					"code":     h.Code,
					"house_id": existing.ID,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		if !ierr.IsNotFound(err) {
			return err
		}
		return s.HouseRepo.Create(txCtx, h)
	})
	if err != nil {
		return nil, err
	}

	return dto.NewHouseResponse(h), nil
}

func (s *houseService) GetHouse(ctx context.Context, id string) (*dto.HouseResponse, error) {
	h, err := s.HouseRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewHouseResponse(h), nil
}

func (s *houseService) GetHouseByCode(ctx context.Context, code string) (*dto.HouseResponse, error) {
	h, err := s.HouseRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return dto.NewHouseResponse(h), nil
}

func (s *houseService) ListHouses(ctx context.Context, filter *types.EntityFilter) (*dto.ListHousesResponse, error) {
	if filter == nil {
		filter = types.NewEntityFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	houses, err := s.HouseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.HouseRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.HouseResponse, len(houses))
	for i, h := range houses {
		items[i] = dto.NewHouseResponse(h)
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *houseService) UpdateHouse(ctx context.Context, id string, req dto.UpdateHouseRequest) (*dto.HouseResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	h, err := s.HouseRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		h.Name = *req.Name
	}
	if req.Address != nil {
		h.Address = *req.Address
	}
	h.UpdatedAt = s.Clock.Now()
	h.UpdatedBy = types.GetUserID(ctx)

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.HouseRepo.Update(txCtx, h); err != nil {
			return err
		}
		invalidateOwner(txCtx, s.Cache, types.OwnerTypeHouse, id)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dto.NewHouseResponse(h), nil
}

func (s *houseService) DeleteHouse(ctx context.Context, id string) error {
	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.HouseRepo.Delete(txCtx, id); err != nil {
			return err
		}
		invalidateOwner(txCtx, s.Cache, types.OwnerTypeHouse, id)
		return nil
	})
}
