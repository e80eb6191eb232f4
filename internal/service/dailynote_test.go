package service

import (
	"testing"
	"time"

	"github.com/carehub/carehub/internal/api/dto"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type DailyNoteServiceSuite struct {
	ServiceTestSuite
	service DailyNoteService
	client  *dto.ClientResponse
}

func TestDailyNoteServiceSuite(t *testing.T) {
	suite.Run(t, new(DailyNoteServiceSuite))
}

func (s *DailyNoteServiceSuite) SetupTest() {
	s.ServiceTestSuite.SetupTest()
	s.service = NewDailyNoteService(s.params, s.resolver)
	house := s.createHouse("Acacia House")
	s.client = s.createClient("Alex", "Nguyen", house.ID)
}

func (s *DailyNoteServiceSuite) TestCreateAndGet() {
	noteDate := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)
	created, err := s.service.CreateDailyNote(s.ctx, dto.CreateDailyNoteRequest{
		ClientID:        s.client.ID,
		Note:            "Slept well, good appetite at breakfast",
		NoteDate:        noteDate,
		MealsTaken:      true,
		MedicationGiven: true,
	})
	s.NoError(err)
	s.Equal(s.client.ID, created.ClientID)
	s.True(created.MealsTaken)
	s.False(created.ActivitiesDone)

	got, err := s.service.GetDailyNote(s.ctx, created.ID)
	s.NoError(err)
	s.Equal(noteDate, got.NoteDate)
}

func (s *DailyNoteServiceSuite) TestCreateRejectsUnknownClient() {
	_, err := s.service.CreateDailyNote(s.ctx, dto.CreateDailyNoteRequest{
		ClientID: "client_unknown",
		Note:     "Orphan note",
		NoteDate: s.clock.Now(),
	})
	s.Error(err)
	s.True(ierr.IsReferenceNotFound(err))
}

func (s *DailyNoteServiceSuite) TestPartialUpdateChecklist() {
	created, err := s.service.CreateDailyNote(s.ctx, dto.CreateDailyNoteRequest{
		ClientID: s.client.ID,
		Note:     "Morning note",
		NoteDate: s.clock.Now(),
	})
	s.NoError(err)

	s.clock.Advance(8 * time.Hour)
	updated, err := s.service.UpdateDailyNote(s.ctx, created.ID, dto.UpdateDailyNoteRequest{
		ActivitiesDone: lo.ToPtr(true),
	})
	s.NoError(err)
	s.Equal("Morning note", updated.Note, "omitted fields keep their values")
	s.True(updated.ActivitiesDone)
	s.True(updated.UpdatedAt.After(created.UpdatedAt))
}

func (s *DailyNoteServiceSuite) TestHardDeleteIsIdempotent() {
	created, err := s.service.CreateDailyNote(s.ctx, dto.CreateDailyNoteRequest{
		ClientID: s.client.ID,
		Note:     "Mistaken entry",
		NoteDate: s.clock.Now(),
	})
	s.NoError(err)

	s.NoError(s.service.DeleteDailyNote(s.ctx, created.ID))

	_, err = s.service.GetDailyNote(s.ctx, created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	// a retried delete must not error
	s.NoError(s.service.DeleteDailyNote(s.ctx, created.ID))
}
