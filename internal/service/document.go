package service

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/api/dto"
	"github.com/carehub/carehub/internal/domain/document"
	"github.com/carehub/carehub/internal/domain/owner"
	"github.com/carehub/carehub/internal/store"
	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
)

type DocumentService interface {
	CreateDocument(ctx context.Context, req dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error)
	ListDocuments(ctx context.Context, filter *types.RecordFilter) (*dto.ListDocumentsResponse, error)
	ListCurrentDocuments(ctx context.Context, ref types.OwnerRef, asOf *time.Time) (*dto.ListDocumentsResponse, error)
	UpdateDocument(ctx context.Context, id string, req dto.UpdateDocumentRequest) (*dto.DocumentResponse, error)
	ArchiveDocument(ctx context.Context, id string, req dto.ArchiveRecordRequest) (*dto.DocumentResponse, error)
}

type documentService struct {
	ServiceParams
	engine *store.Engine[document.Payload]
}

func NewDocumentService(params ServiceParams, resolver owner.Resolver) DocumentService {
	return &documentService{
		ServiceParams: params,
		engine: store.NewEngine(store.Params[document.Payload]{
			Kind:               document.Kind,
			Schema:             document.Schema(),
			Repo:               params.DocumentRepo,
			Resolver:           resolver,
			Clock:              params.Clock,
			VersionGranularity: params.versionGranularity(),
			Logger:             params.Logger,
		}),
	}
}

func (s *documentService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	d, err := s.engine.Create(ctx, req.ToCreateInput(ctx))
	if err != nil {
		return nil, err
	}

	return dto.NewDocumentResponse(d), nil
}

func (s *documentService) GetDocument(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	d, err := s.engine.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewDocumentResponse(d), nil
}

func (s *documentService) ListDocuments(ctx context.Context, filter *types.RecordFilter) (*dto.ListDocumentsResponse, error) {
	if filter == nil {
		filter = types.NewRecordFilter()
	}

	documents, err := s.engine.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.engine.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := lo.Map(documents, func(d *document.Document, _ int) *dto.DocumentResponse {
		return dto.NewDocumentResponse(d)
	})
	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// ListCurrentDocuments returns the unexpired documents attached to the
// given client or house as of the instant.
func (s *documentService) ListCurrentDocuments(ctx context.Context, ref types.OwnerRef, asOf *time.Time) (*dto.ListDocumentsResponse, error) {
	at := s.Clock.Now()
	if asOf != nil {
		at = *asOf
	}

	documents, err := s.engine.ListActive(ctx, nil, at, types.OwnerRefs{ref})
	if err != nil {
		return nil, err
	}

	items := lo.Map(documents, func(d *document.Document, _ int) *dto.DocumentResponse {
		return dto.NewDocumentResponse(d)
	})
	resp := types.NewListResponse(items, len(items), len(items), 0)
	return &resp, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, id string, req dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	d, err := s.engine.Update(ctx, id, req.ExpectedVersion, func(d *document.Document) error {
		req.Apply(d)
		return d.Payload.Validate()
	})
	if err != nil {
		return nil, err
	}

	return dto.NewDocumentResponse(d), nil
}

func (s *documentService) ArchiveDocument(ctx context.Context, id string, req dto.ArchiveRecordRequest) (*dto.DocumentResponse, error) {
	d, err := s.engine.Archive(ctx, id, req.ExpectedVersion)
	if err != nil {
		return nil, err
	}
	return dto.NewDocumentResponse(d), nil
}
