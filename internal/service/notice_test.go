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

type NoticeServiceSuite struct {
	ServiceTestSuite
	service NoticeService
	house1  *dto.HouseResponse
	house2  *dto.HouseResponse
}

func TestNoticeServiceSuite(t *testing.T) {
	suite.Run(t, new(NoticeServiceSuite))
}

func (s *NoticeServiceSuite) SetupTest() {
	s.ServiceTestSuite.SetupTest()
	s.service = NewNoticeService(s.params, s.resolver)
	s.house1 = s.createHouse("Acacia House")
	s.house2 = s.createHouse("Banksia House")
}

func (s *NoticeServiceSuite) TestCreateAndGet() {
	created, err := s.service.CreateNotice(s.ctx, dto.CreateNoticeRequest{
		Title:    "Water outage",
		Body:     "Mains off between 9 and 11",
		Category: "maintenance",
		HouseIDs: []string{s.house1.ID},
	})
	s.NoError(err)
	s.Equal([]string{s.house1.ID}, created.HouseIDs)
	s.Equal(s.clock.Now(), created.CreatedAt)
	s.Equal(created.CreatedAt, created.UpdatedAt)

	got, err := s.service.GetNotice(s.ctx, created.ID)
	s.NoError(err)
	s.Equal("Water outage", got.Title)
}

func (s *NoticeServiceSuite) TestCreateRequiresHouse() {
	_, err := s.service.CreateNotice(s.ctx, dto.CreateNoticeRequest{
		Title: "No houses",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *NoticeServiceSuite) TestCreateRejectsUnknownHouse() {
	_, err := s.service.CreateNotice(s.ctx, dto.CreateNoticeRequest{
		Title:    "Ghost house",
		HouseIDs: []string{"house_nonexistent"},
	})
	s.Error(err)
	s.True(ierr.IsReferenceNotFound(err))

	listed, err := s.service.ListNotices(s.ctx, nil)
	s.NoError(err)
	s.Empty(listed.Items)
}

func (s *NoticeServiceSuite) TestDashboardVisibilityWindow() {
	from := time.Date(2021, 11, 18, 0, 0, 0, 0, time.UTC)
	until := time.Date(2021, 11, 19, 0, 0, 0, 0, time.UTC)

	_, err := s.service.CreateNotice(s.ctx, dto.CreateNoticeRequest{
		Title:      "Inspection day",
		HouseIDs:   []string{s.house1.ID, s.house2.ID},
		ValidFrom:  &from,
		ValidUntil: &until,
	})
	s.NoError(err)

	_, err = s.service.CreateNotice(s.ctx, dto.CreateNoticeRequest{
		Title:    "Open ended",
		HouseIDs: []string{s.house2.ID},
	})
	s.NoError(err)

	// during the window, both houses see the inspection notice
	during := from.Add(12 * time.Hour)
	forHouse1, err := s.service.ListActiveNotices(s.ctx, dto.ListActiveNoticesRequest{
		HouseIDs: []string{s.house1.ID},
		AsOf:     &during,
	})
	s.NoError(err)
	s.Len(forHouse1.Items, 1)
	s.Equal("Inspection day", forHouse1.Items[0].Title)

	forHouse2, err := s.service.ListActiveNotices(s.ctx, dto.ListActiveNoticesRequest{
		HouseIDs: []string{s.house2.ID},
		AsOf:     &during,
	})
	s.NoError(err)
	s.Len(forHouse2.Items, 2)

	// the instant the window closes, the notice disappears
	forHouse1After, err := s.service.ListActiveNotices(s.ctx, dto.ListActiveNoticesRequest{
		HouseIDs: []string{s.house1.ID},
		AsOf:     &until,
	})
	s.NoError(err)
	s.Empty(forHouse1After.Items)

	// before the window opens it is not visible either
	before := from.Add(-time.Minute)
	forHouse1Before, err := s.service.ListActiveNotices(s.ctx, dto.ListActiveNoticesRequest{
		HouseIDs: []string{s.house1.ID},
		AsOf:     &before,
	})
	s.NoError(err)
	s.Empty(forHouse1Before.Items)
}

func (s *NoticeServiceSuite) TestListActiveUnknownHouseDegradesToEmpty() {
	_, err := s.service.CreateNotice(s.ctx, dto.CreateNoticeRequest{
		Title:    "Somewhere else",
		HouseIDs: []string{s.house1.ID},
	})
	s.NoError(err)

	resp, err := s.service.ListActiveNotices(s.ctx, dto.ListActiveNoticesRequest{
		HouseIDs: []string{"house_unknown"},
	})
	s.NoError(err)
	s.Empty(resp.Items)
}

func (s *NoticeServiceSuite) TestPartialUpdateKeepsOmittedFields() {
	created, err := s.service.CreateNotice(s.ctx, dto.CreateNoticeRequest{
		Title:    "Original title",
		Body:     "Original body",
		Category: "policy",
		HouseIDs: []string{s.house1.ID},
	})
	s.NoError(err)

	s.clock.Advance(time.Hour)
	updated, err := s.service.UpdateNotice(s.ctx, created.ID, dto.UpdateNoticeRequest{
		Body: lo.ToPtr("Revised body"),
	})
	s.NoError(err)
	s.Equal("Original title", updated.Title)
	s.Equal("Revised body", updated.Body)
	s.Equal("policy", updated.Category)
	s.Equal(created.CreatedAt, updated.CreatedAt)
	s.True(updated.UpdatedAt.After(created.UpdatedAt))
}

func (s *NoticeServiceSuite) TestConcurrentEditConflict() {
	created, err := s.service.CreateNotice(s.ctx, dto.CreateNoticeRequest{
		Title:    "Contended",
		HouseIDs: []string{s.house1.ID},
	})
	s.NoError(err)
	firstRead := created.UpdatedAt

	s.clock.Advance(time.Hour)
	_, err = s.service.UpdateNotice(s.ctx, created.ID, dto.UpdateNoticeRequest{
		Body:            lo.ToPtr("first editor"),
		ExpectedVersion: &firstRead,
	})
	s.NoError(err)

	s.clock.Advance(time.Hour)
	_, err = s.service.UpdateNotice(s.ctx, created.ID, dto.UpdateNoticeRequest{
		Body:            lo.ToPtr("second editor"),
		ExpectedVersion: &firstRead,
	})
	s.Error(err)
	s.True(ierr.IsVersionConflict(err))

	got, err := s.service.GetNotice(s.ctx, created.ID)
	s.NoError(err)
	s.Equal("first editor", got.Body)
}

func (s *NoticeServiceSuite) TestArchiveRemovesFromDashboards() {
	created, err := s.service.CreateNotice(s.ctx, dto.CreateNoticeRequest{
		Title:    "Short lived",
		HouseIDs: []string{s.house1.ID},
	})
	s.NoError(err)

	s.clock.Advance(time.Minute)
	archived, err := s.service.ArchiveNotice(s.ctx, created.ID, dto.ArchiveRecordRequest{})
	s.NoError(err)
	s.Equal("inactive", string(archived.Status))

	resp, err := s.service.ListActiveNotices(s.ctx, dto.ListActiveNoticesRequest{
		HouseIDs: []string{s.house1.ID},
	})
	s.NoError(err)
	s.Empty(resp.Items)

	// the record itself remains readable
	got, err := s.service.GetNotice(s.ctx, created.ID)
	s.NoError(err)
	s.Equal(created.ID, got.ID)
}

func (s *NoticeServiceSuite) TestListFiltersByCategoryAndSearch() {
	for _, n := range []dto.CreateNoticeRequest{
		{Title: "Roster change next week", Category: "roster", HouseIDs: []string{s.house1.ID}},
		{Title: "Pool maintenance", Category: "maintenance", HouseIDs: []string{s.house1.ID}},
		{Title: "Medication policy update", Category: "policy", HouseIDs: []string{s.house2.ID}},
	} {
		s.clock.Advance(time.Second)
		_, err := s.service.CreateNotice(s.ctx, n)
		s.Require().NoError(err)
	}

	filter := types.NewRecordFilter()
	filter.Search = "maintenance"
	resp, err := s.service.ListNotices(s.ctx, filter)
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal("Pool maintenance", resp.Items[0].Title)
	s.Equal(1, resp.Pagination.Total)
}
