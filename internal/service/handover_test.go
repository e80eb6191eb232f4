package service

import (
	"testing"
	"time"

	"github.com/carehub/carehub/internal/api/dto"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type HandoverServiceSuite struct {
	ServiceTestSuite
	service HandoverService
	house   *dto.HouseResponse
}

func TestHandoverServiceSuite(t *testing.T) {
	suite.Run(t, new(HandoverServiceSuite))
}

func (s *HandoverServiceSuite) SetupTest() {
	s.ServiceTestSuite.SetupTest()
	s.service = NewHandoverService(s.params, s.resolver)
	s.house = s.createHouse("Acacia House")
}

// logShift records a handover for the suite's house with the given shift.
func (s *HandoverServiceSuite) logShift(summary string, start, end time.Time) *dto.HandoverResponse {
	h, err := s.service.CreateHandover(s.ctx, dto.CreateHandoverRequest{
		HouseID:    s.house.ID,
		Summary:    summary,
		ShiftStart: start,
		ShiftEnd:   end,
	})
	s.Require().NoError(err)
	return h
}

func (s *HandoverServiceSuite) TestCreateAndGet() {
	now := s.clock.Now()
	created := s.logShift("Quiet night, all residents settled", now.Add(-8*time.Hour), now)

	got, err := s.service.GetHandover(s.ctx, created.ID)
	s.NoError(err)
	s.Equal(s.house.ID, got.HouseID)
	s.Equal("Quiet night, all residents settled", got.Summary)
}

func (s *HandoverServiceSuite) TestCreateRejectsUnknownHouse() {
	now := s.clock.Now()
	_, err := s.service.CreateHandover(s.ctx, dto.CreateHandoverRequest{
		HouseID:    "house_missing",
		Summary:    "Nobody home",
		ShiftStart: now.Add(-8 * time.Hour),
		ShiftEnd:   now,
	})
	s.Error(err)
	s.True(ierr.IsReferenceNotFound(err))
}

func (s *HandoverServiceSuite) TestCreateRejectsInvertedShift() {
	now := s.clock.Now()
	_, err := s.service.CreateHandover(s.ctx, dto.CreateHandoverRequest{
		HouseID:    s.house.ID,
		Summary:    "Backwards shift",
		ShiftStart: now,
		ShiftEnd:   now.Add(-8 * time.Hour),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *HandoverServiceSuite) TestListHouseHandoversFiltersByShiftStart() {
	now := s.clock.Now()
	s.logShift("two nights ago", now.Add(-56*time.Hour), now.Add(-48*time.Hour))
	s.logShift("last night", now.Add(-8*time.Hour), now)

	from := now.Add(-24 * time.Hour)
	recent, err := s.service.ListHouseHandovers(s.ctx, s.house.ID, &from, nil)
	s.NoError(err)
	s.Len(recent.Items, 1)
	s.Equal("last night", recent.Items[0].Summary)

	// the range tests the shift start, not when the summary was written
	to := now.Add(-24 * time.Hour)
	older, err := s.service.ListHouseHandovers(s.ctx, s.house.ID, nil, &to)
	s.NoError(err)
	s.Len(older.Items, 1)
	s.Equal("two nights ago", older.Items[0].Summary)

	all, err := s.service.ListHouseHandovers(s.ctx, s.house.ID, nil, nil)
	s.NoError(err)
	s.Len(all.Items, 2)
}

func (s *HandoverServiceSuite) TestListHouseHandoversScopedToHouse() {
	now := s.clock.Now()
	other := s.createHouse("Banksia House")
	s.logShift("acacia shift", now.Add(-8*time.Hour), now)

	forOther, err := s.service.ListHouseHandovers(s.ctx, other.ID, nil, nil)
	s.NoError(err)
	s.Empty(forOther.Items)
}

func (s *HandoverServiceSuite) TestUpdateConcurrentEditConflicts() {
	now := s.clock.Now()
	created := s.logShift("first draft", now.Add(-8*time.Hour), now)
	firstRead := created.UpdatedAt

	s.clock.Advance(time.Minute)
	_, err := s.service.UpdateHandover(s.ctx, created.ID, dto.UpdateHandoverRequest{
		Summary:         lo.ToPtr("amended by the outgoing lead"),
		ExpectedVersion: &firstRead,
	})
	s.NoError(err)

	s.clock.Advance(time.Minute)
	_, err = s.service.UpdateHandover(s.ctx, created.ID, dto.UpdateHandoverRequest{
		Summary:         lo.ToPtr("amended by the incoming lead"),
		ExpectedVersion: &firstRead,
	})
	s.Error(err)
	s.True(ierr.IsVersionConflict(err))

	got, err := s.service.GetHandover(s.ctx, created.ID)
	s.NoError(err)
	s.Equal("amended by the outgoing lead", got.Summary)
}

func (s *HandoverServiceSuite) TestArchiveRemovesFromListing() {
	now := s.clock.Now()
	created := s.logShift("entered against the wrong house", now.Add(-8*time.Hour), now)

	s.clock.Advance(time.Minute)
	_, err := s.service.ArchiveHandover(s.ctx, created.ID, dto.ArchiveRecordRequest{})
	s.NoError(err)

	listed, err := s.service.ListHouseHandovers(s.ctx, s.house.ID, nil, nil)
	s.NoError(err)
	s.Empty(listed.Items)
}
