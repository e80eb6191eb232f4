package service

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/api/dto"
	"github.com/carehub/carehub/internal/domain/contact"
	"github.com/carehub/carehub/internal/domain/owner"
	"github.com/carehub/carehub/internal/store"
	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
)

type ContactService interface {
	CreateContact(ctx context.Context, req dto.CreateContactRequest) (*dto.ContactResponse, error)
	GetContact(ctx context.Context, id string) (*dto.ContactResponse, error)
	ListContacts(ctx context.Context, filter *types.RecordFilter) (*dto.ListContactsResponse, error)
	ListCurrentContacts(ctx context.Context, clientID string, asOf *time.Time) (*dto.ListContactsResponse, error)
	UpdateContact(ctx context.Context, id string, req dto.UpdateContactRequest) (*dto.ContactResponse, error)
	ArchiveContact(ctx context.Context, id string, req dto.ArchiveRecordRequest) (*dto.ContactResponse, error)
}

type contactService struct {
	ServiceParams
	engine *store.Engine[contact.Payload]
}

func NewContactService(params ServiceParams, resolver owner.Resolver) ContactService {
	return &contactService{
		ServiceParams: params,
		engine: store.NewEngine(store.Params[contact.Payload]{
			Kind:               contact.Kind,
			Schema:             contact.Schema(),
			Repo:               params.ContactRepo,
			Resolver:           resolver,
			Clock:              params.Clock,
			VersionGranularity: params.versionGranularity(),
			Logger:             params.Logger,
		}),
	}
}

func (s *contactService) CreateContact(ctx context.Context, req dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.engine.Create(ctx, req.ToCreateInput(ctx))
	if err != nil {
		return nil, err
	}

	return dto.NewContactResponse(c), nil
}

func (s *contactService) GetContact(ctx context.Context, id string) (*dto.ContactResponse, error) {
	c, err := s.engine.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewContactResponse(c), nil
}

func (s *contactService) ListContacts(ctx context.Context, filter *types.RecordFilter) (*dto.ListContactsResponse, error) {
	if filter == nil {
		filter = types.NewRecordFilter()
	}

	contacts, err := s.engine.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.engine.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(contacts, func(c *contact.Contact, _ int) *dto.ContactResponse {
		return dto.NewContactResponse(c)
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// ListCurrentContacts returns the contacts whose arrangement currently
// holds for the client: active status and a validity window containing the
// instant.
func (s *contactService) ListCurrentContacts(ctx context.Context, clientID string, asOf *time.Time) (*dto.ListContactsResponse, error) {
	at := s.Clock.Now()
	if asOf != nil {
		at = *asOf
	}

	group := types.OwnerRefs{types.NewOwnerRef(types.OwnerTypeClient, clientID)}
	contacts, err := s.engine.ListActive(ctx, nil, at, group)
	if err != nil {
		return nil, err
	}

	items := lo.Map(contacts, func(c *contact.Contact, _ int) *dto.ContactResponse {
		return dto.NewContactResponse(c)
	})
	resp := types.NewListResponse(items, len(items), len(items), 0)
	return &resp, nil
}

func (s *contactService) UpdateContact(ctx context.Context, id string, req dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.engine.Update(ctx, id, req.ExpectedVersion, func(c *contact.Contact) error {
		req.Apply(c)
		return c.Payload.Validate()
	})
	if err != nil {
		return nil, err
	}

	return dto.NewContactResponse(c), nil
}

func (s *contactService) ArchiveContact(ctx context.Context, id string, req dto.ArchiveRecordRequest) (*dto.ContactResponse, error) {
	c, err := s.engine.Archive(ctx, id, req.ExpectedVersion)
	if err != nil {
		return nil, err
	}
	return dto.NewContactResponse(c), nil
}
