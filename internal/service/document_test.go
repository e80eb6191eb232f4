package service

import (
	"testing"
	"time"

	"github.com/carehub/carehub/internal/api/dto"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type DocumentServiceSuite struct {
	ServiceTestSuite
	service DocumentService
	house   *dto.HouseResponse
	client  *dto.ClientResponse
}

func TestDocumentServiceSuite(t *testing.T) {
	suite.Run(t, new(DocumentServiceSuite))
}

func (s *DocumentServiceSuite) SetupTest() {
	s.ServiceTestSuite.SetupTest()
	s.service = NewDocumentService(s.params, s.resolver)
	s.house = s.createHouse("Acacia House")
	s.client = s.createClient("Alex", "Nguyen", s.house.ID)
}

func (s *DocumentServiceSuite) TestCreateNeedsAnOwner() {
	_, err := s.service.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Title:   "Unattached plan",
		BlobRef: "blob://plans/1",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	created, err := s.service.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Title:     "Care plan",
		Category:  "plan",
		BlobRef:   "blob://plans/2",
		ClientIDs: []string{s.client.ID},
	})
	s.NoError(err)
	s.Equal([]string{s.client.ID}, created.ClientIDs)
}

func (s *DocumentServiceSuite) TestCreateRejectsUnknownClient() {
	_, err := s.service.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Title:     "Orphan plan",
		BlobRef:   "blob://plans/3",
		ClientIDs: []string{"client_missing"},
	})
	s.Error(err)
	s.True(ierr.IsReferenceNotFound(err))
}

func (s *DocumentServiceSuite) TestListCurrentDocumentsHonorsExpiry() {
	now := s.clock.Now()
	ref := types.NewOwnerRef(types.OwnerTypeClient, s.client.ID)

	_, err := s.service.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Title:     "Current consent",
		BlobRef:   "blob://docs/1",
		ClientIDs: []string{s.client.ID},
	})
	s.NoError(err)

	_, err = s.service.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Title:     "Lapsed consent",
		BlobRef:   "blob://docs/2",
		ClientIDs: []string{s.client.ID},
		ExpiresAt: lo.ToPtr(now.Add(-time.Hour)),
	})
	s.NoError(err)

	current, err := s.service.ListCurrentDocuments(s.ctx, ref, nil)
	s.NoError(err)
	s.Len(current.Items, 1)
	s.Equal("Current consent", current.Items[0].Title)

	// before the expiry the lapsed consent was still in force
	earlier := now.Add(-24 * time.Hour)
	atEarlier, err := s.service.ListCurrentDocuments(s.ctx, ref, &earlier)
	s.NoError(err)
	s.Len(atEarlier.Items, 2)
}

func (s *DocumentServiceSuite) TestListCurrentDocumentsScopedToOwner() {
	_, err := s.service.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Title:    "Fire evacuation map",
		BlobRef:  "blob://docs/3",
		HouseIDs: []string{s.house.ID},
	})
	s.NoError(err)

	forHouse, err := s.service.ListCurrentDocuments(s.ctx,
		types.NewOwnerRef(types.OwnerTypeHouse, s.house.ID), nil)
	s.NoError(err)
	s.Len(forHouse.Items, 1)

	forClient, err := s.service.ListCurrentDocuments(s.ctx,
		types.NewOwnerRef(types.OwnerTypeClient, s.client.ID), nil)
	s.NoError(err)
	s.Empty(forClient.Items)
}

func (s *DocumentServiceSuite) TestUpdateMovesExpiry() {
	now := s.clock.Now()
	ref := types.NewOwnerRef(types.OwnerTypeClient, s.client.ID)

	created, err := s.service.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Title:     "Medication authority",
		BlobRef:   "blob://docs/4",
		ClientIDs: []string{s.client.ID},
		ExpiresAt: lo.ToPtr(now.Add(time.Hour)),
	})
	s.NoError(err)

	s.clock.Advance(time.Minute)
	updated, err := s.service.UpdateDocument(s.ctx, created.ID, dto.UpdateDocumentRequest{
		ExpiresAt:       lo.ToPtr(now.Add(-time.Minute)),
		ExpectedVersion: lo.ToPtr(created.UpdatedAt),
	})
	s.NoError(err)
	s.Equal("Medication authority", updated.Title, "omitted fields kept")

	current, err := s.service.ListCurrentDocuments(s.ctx, ref, nil)
	s.NoError(err)
	s.Empty(current.Items, "the pulled-forward expiry has passed")
}

func (s *DocumentServiceSuite) TestArchiveRemovesFromCurrent() {
	ref := types.NewOwnerRef(types.OwnerTypeClient, s.client.ID)

	created, err := s.service.CreateDocument(s.ctx, dto.CreateDocumentRequest{
		Title:     "Superseded plan",
		BlobRef:   "blob://docs/5",
		ClientIDs: []string{s.client.ID},
	})
	s.NoError(err)

	s.clock.Advance(time.Minute)
	_, err = s.service.ArchiveDocument(s.ctx, created.ID, dto.ArchiveRecordRequest{})
	s.NoError(err)

	current, err := s.service.ListCurrentDocuments(s.ctx, ref, nil)
	s.NoError(err)
	s.Empty(current.Items)

	got, err := s.service.GetDocument(s.ctx, created.ID)
	s.NoError(err)
	s.Equal(types.StatusInactive, got.Status, "archived but still readable")
}
