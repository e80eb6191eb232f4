package service

import (
	"testing"
	"time"

	"github.com/carehub/carehub/internal/api/dto"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type ContactServiceSuite struct {
	ServiceTestSuite
	service ContactService
	client  *dto.ClientResponse
}

func TestContactServiceSuite(t *testing.T) {
	suite.Run(t, new(ContactServiceSuite))
}

func (s *ContactServiceSuite) SetupTest() {
	s.ServiceTestSuite.SetupTest()
	s.service = NewContactService(s.params, s.resolver)
	house := s.createHouse("Acacia House")
	s.client = s.createClient("Alex", "Nguyen", house.ID)
}

func (s *ContactServiceSuite) TestCreateNeedsPhoneOrEmail() {
	_, err := s.service.CreateContact(s.ctx, dto.CreateContactRequest{
		ClientID:     s.client.ID,
		Name:         "Unreachable",
		Relationship: "sibling",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	created, err := s.service.CreateContact(s.ctx, dto.CreateContactRequest{
		ClientID: s.client.ID,
		Name:     "Kim Nguyen",
		Phone:    "0400 000 000",
	})
	s.NoError(err)
	s.Equal("Kim Nguyen", created.Name)
}

func (s *ContactServiceSuite) TestListCurrentContactsHonorsWindow() {
	now := s.clock.Now()

	_, err := s.service.CreateContact(s.ctx, dto.CreateContactRequest{
		ClientID: s.client.ID,
		Name:     "Always current",
		Phone:    "0400 000 001",
	})
	s.NoError(err)

	_, err = s.service.CreateContact(s.ctx, dto.CreateContactRequest{
		ClientID:   s.client.ID,
		Name:       "Former guardian",
		Phone:      "0400 000 002",
		ValidUntil: lo.ToPtr(now.Add(-time.Hour)),
	})
	s.NoError(err)

	_, err = s.service.CreateContact(s.ctx, dto.CreateContactRequest{
		ClientID:  s.client.ID,
		Name:      "Future advocate",
		Phone:     "0400 000 003",
		ValidFrom: lo.ToPtr(now.Add(24 * time.Hour)),
	})
	s.NoError(err)

	current, err := s.service.ListCurrentContacts(s.ctx, s.client.ID, nil)
	s.NoError(err)
	s.Len(current.Items, 1)
	s.Equal("Always current", current.Items[0].Name)

	// asking at a later instant brings the future arrangement in
	later := now.Add(48 * time.Hour)
	atLater, err := s.service.ListCurrentContacts(s.ctx, s.client.ID, &later)
	s.NoError(err)
	s.Len(atLater.Items, 2)
}

func (s *ContactServiceSuite) TestListCurrentContactsScopedToClient() {
	other := s.createClient("Sam", "Lee", "")

	_, err := s.service.CreateContact(s.ctx, dto.CreateContactRequest{
		ClientID: s.client.ID,
		Name:     "Alex's contact",
		Phone:    "0400 000 004",
	})
	s.NoError(err)

	current, err := s.service.ListCurrentContacts(s.ctx, other.ID, nil)
	s.NoError(err)
	s.Empty(current.Items)
}

func (s *ContactServiceSuite) TestArchiveEndsArrangement() {
	created, err := s.service.CreateContact(s.ctx, dto.CreateContactRequest{
		ClientID: s.client.ID,
		Name:     "Departing contact",
		Phone:    "0400 000 005",
	})
	s.NoError(err)

	s.clock.Advance(time.Minute)
	_, err = s.service.ArchiveContact(s.ctx, created.ID, dto.ArchiveRecordRequest{})
	s.NoError(err)

	current, err := s.service.ListCurrentContacts(s.ctx, s.client.ID, nil)
	s.NoError(err)
	s.Empty(current.Items)
}
