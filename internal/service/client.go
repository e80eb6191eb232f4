package service

import (
	"context"

	"github.com/carehub/carehub/internal/api/dto"
	"github.com/carehub/carehub/internal/types"
)

type ClientService interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, id string) (*dto.ClientResponse, error)
	ListClients(ctx context.Context, filter *types.EntityFilter) (*dto.ListClientsResponse, error)
	UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error)
	DeleteClient(ctx context.Context, id string) error
}

type clientService struct {
	ServiceParams
}

func NewClientService(params ServiceParams) ClientService {
	return &clientService{ServiceParams: params}
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// A client assigned to a house must point at a real house.
	if req.HouseID != "" {
		if _, err := s.HouseRepo.Get(ctx, req.HouseID); err != nil {
			return nil, err
		}
	}

	c := req.ToClient(ctx, s.Clock.Now())
	if err := s.ClientRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return dto.NewClientResponse(c), nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewClientResponse(c), nil
}

func (s *clientService) ListClients(ctx context.Context, filter *types.EntityFilter) (*dto.ListClientsResponse, error) {
	if filter == nil {
		filter = types.NewEntityFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	clients, err := s.ClientRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.ClientRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ClientResponse, len(clients))
	for i, c := range clients {
		items[i] = dto.NewClientResponse(c)
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		c.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		c.LastName = *req.LastName
	}
	if req.HouseID != nil {
		if *req.HouseID != "" {
			if _, err := s.HouseRepo.Get(ctx, *req.HouseID); err != nil {
				return nil, err
			}
		}
		c.HouseID = *req.HouseID
	}
	c.UpdatedAt = s.Clock.Now()
	c.UpdatedBy = types.GetUserID(ctx)

	// The write and the resolver-cache invalidation travel together so a
	// failed update never evicts a still-valid cache entry.
	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.ClientRepo.Update(txCtx, c); err != nil {
			return err
		}
		invalidateOwner(txCtx, s.Cache, types.OwnerTypeClient, id)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return dto.NewClientResponse(c), nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	return s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.ClientRepo.Delete(txCtx, id); err != nil {
			return err
		}
		invalidateOwner(txCtx, s.Cache, types.OwnerTypeClient, id)
		return nil
	})
}
