package service

import (
	"context"

	"github.com/carehub/carehub/internal/api/dto"
	"github.com/carehub/carehub/internal/domain/incident"
	"github.com/carehub/carehub/internal/domain/owner"
	"github.com/carehub/carehub/internal/store"
	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
)

type IncidentService interface {
	CreateIncident(ctx context.Context, req dto.CreateIncidentRequest) (*dto.IncidentResponse, error)
	GetIncident(ctx context.Context, id string) (*dto.IncidentResponse, error)
	ListIncidents(ctx context.Context, filter *types.RecordFilter) (*dto.ListIncidentsResponse, error)
	UpdateIncident(ctx context.Context, id string, req dto.UpdateIncidentRequest) (*dto.IncidentResponse, error)
	CloseIncident(ctx context.Context, id string, req dto.ArchiveRecordRequest) (*dto.IncidentResponse, error)
}

type incidentService struct {
	ServiceParams
	engine *store.Engine[incident.Payload]
}

func NewIncidentService(params ServiceParams, resolver owner.Resolver) IncidentService {
	return &incidentService{
		ServiceParams: params,
		engine: store.NewEngine(store.Params[incident.Payload]{
			Kind:               incident.Kind,
			Schema:             incident.Schema(),
			Repo:               params.IncidentRepo,
			Resolver:           resolver,
			Clock:              params.Clock,
			VersionGranularity: params.versionGranularity(),
			Logger:             params.Logger,
		}),
	}
}

func (s *incidentService) CreateIncident(ctx context.Context, req dto.CreateIncidentRequest) (*dto.IncidentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	i, err := s.engine.Create(ctx, req.ToCreateInput(ctx))
	if err != nil {
		return nil, err
	}

	return dto.NewIncidentResponse(i), nil
}

func (s *incidentService) GetIncident(ctx context.Context, id string) (*dto.IncidentResponse, error) {
	i, err := s.engine.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewIncidentResponse(i), nil
}

func (s *incidentService) ListIncidents(ctx context.Context, filter *types.RecordFilter) (*dto.ListIncidentsResponse, error) {
	if filter == nil {
		filter = types.NewRecordFilter()
	}

	incidents, err := s.engine.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.engine.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(incidents, func(i *incident.Incident, _ int) *dto.IncidentResponse {
		return dto.NewIncidentResponse(i)
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

func (s *incidentService) UpdateIncident(ctx context.Context, id string, req dto.UpdateIncidentRequest) (*dto.IncidentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	i, err := s.engine.Update(ctx, id, req.ExpectedVersion, func(i *incident.Incident) error {
		req.Apply(i)
		return i.Payload.Validate()
	})
	if err != nil {
		return nil, err
	}

	return dto.NewIncidentResponse(i), nil
}

// CloseIncident moves a reviewed incident to closed. The record stays
// readable; it just drops out of the default active listings.
func (s *incidentService) CloseIncident(ctx context.Context, id string, req dto.ArchiveRecordRequest) (*dto.IncidentResponse, error) {
	i, err := s.engine.UpdateStatus(ctx, id, req.ExpectedVersion, types.StatusClosed)
	if err != nil {
		return nil, err
	}
	return dto.NewIncidentResponse(i), nil
}
