package service

import (
	"testing"
	"time"

	"github.com/carehub/carehub/internal/api/dto"
	"github.com/carehub/carehub/internal/domain/incident"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type IncidentServiceSuite struct {
	ServiceTestSuite
	service IncidentService
	house   *dto.HouseResponse
	client  *dto.ClientResponse
}

func TestIncidentServiceSuite(t *testing.T) {
	suite.Run(t, new(IncidentServiceSuite))
}

func (s *IncidentServiceSuite) SetupTest() {
	s.ServiceTestSuite.SetupTest()
	s.service = NewIncidentService(s.params, s.resolver)
	s.house = s.createHouse("Acacia House")
	s.client = s.createClient("Alex", "Nguyen", s.house.ID)
}

func (s *IncidentServiceSuite) report(description string, severity incident.Severity, occurredAt time.Time) *dto.IncidentResponse {
	r, err := s.service.CreateIncident(s.ctx, dto.CreateIncidentRequest{
		Description: description,
		Severity:    severity,
		RaisedFor:   incident.RaisedForClient,
		RaisedForID: s.client.ID,
		HouseID:     s.house.ID,
		OccurredAt:  occurredAt,
	})
	s.Require().NoError(err)
	return r
}

func (s *IncidentServiceSuite) TestCreateLinksClientAndHouse() {
	r := s.report("Fall in bathroom", incident.SeverityHigh, s.clock.Now().Add(-time.Hour))

	s.Equal(incident.RaisedForClient, r.RaisedFor)
	s.Equal([]string{s.house.ID}, r.HouseIDs)

	got, err := s.service.GetIncident(s.ctx, r.ID)
	s.NoError(err)
	s.Equal("Fall in bathroom", got.Description)
}

func (s *IncidentServiceSuite) TestCreateRejectsUnknownClient() {
	_, err := s.service.CreateIncident(s.ctx, dto.CreateIncidentRequest{
		Description: "Orphan report",
		Severity:    incident.SeverityLow,
		RaisedFor:   incident.RaisedForClient,
		RaisedForID: "client_unknown",
		HouseID:     s.house.ID,
		OccurredAt:  s.clock.Now(),
	})
	s.Error(err)
	s.True(ierr.IsReferenceNotFound(err))
}

func (s *IncidentServiceSuite) TestCreateRejectsInvalidSeverity() {
	_, err := s.service.CreateIncident(s.ctx, dto.CreateIncidentRequest{
		Description: "Bad grade",
		Severity:    incident.Severity("catastrophic"),
		RaisedFor:   incident.RaisedForClient,
		RaisedForID: s.client.ID,
		HouseID:     s.house.ID,
		OccurredAt:  s.clock.Now(),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *IncidentServiceSuite) TestCloseDropsOutOfDefaultListing() {
	r := s.report("Medication missed", incident.SeverityMedium, s.clock.Now())

	s.clock.Advance(time.Hour)
	closed, err := s.service.CloseIncident(s.ctx, r.ID, dto.ArchiveRecordRequest{})
	s.NoError(err)
	s.Equal(types.StatusClosed, closed.Status)

	listed, err := s.service.ListIncidents(s.ctx, nil)
	s.NoError(err)
	s.Empty(listed.Items, "default listing shows active reports only")

	filter := types.NewRecordFilter()
	filter.Status = lo.ToPtr(types.StatusClosed)
	closedList, err := s.service.ListIncidents(s.ctx, filter)
	s.NoError(err)
	s.Len(closedList.Items, 1)
}

func (s *IncidentServiceSuite) TestCloseWithStaleVersionConflicts() {
	r := s.report("Contended report", incident.SeverityLow, s.clock.Now())
	stale := r.UpdatedAt

	s.clock.Advance(time.Hour)
	_, err := s.service.UpdateIncident(s.ctx, r.ID, dto.UpdateIncidentRequest{
		Severity: lo.ToPtr(incident.SeverityHigh),
	})
	s.NoError(err)

	_, err = s.service.CloseIncident(s.ctx, r.ID, dto.ArchiveRecordRequest{ExpectedVersion: &stale})
	s.Error(err)
	s.True(ierr.IsVersionConflict(err))
}

func (s *IncidentServiceSuite) TestListFiltersBySeverityAndOccurrence() {
	base := s.clock.Now()
	s.report("Minor scrape", incident.SeverityLow, base.Add(-48*time.Hour))
	s.clock.Advance(time.Second)
	s.report("Fall in bathroom", incident.SeverityHigh, base.Add(-24*time.Hour))
	s.clock.Advance(time.Second)
	s.report("Unwitnessed fall", incident.SeverityHigh, base.Add(-time.Hour))

	filter := types.NewRecordFilter()
	filter.Categories = []string{string(incident.SeverityHigh)}
	resp, err := s.service.ListIncidents(s.ctx, filter)
	s.NoError(err)
	s.Len(resp.Items, 2)

	// range criteria test the occurrence time, not the audit stamp
	start := base.Add(-30 * time.Hour)
	end := base.Add(-12 * time.Hour)
	filter = types.NewRecordFilter()
	filter.TimeRangeFilter = &types.TimeRangeFilter{StartTime: &start, EndTime: &end}
	resp, err = s.service.ListIncidents(s.ctx, filter)
	s.NoError(err)
	s.Len(resp.Items, 1)
	s.Equal("Fall in bathroom", resp.Items[0].Description)

	filter = types.NewRecordFilter()
	filter.RaisedForType = string(incident.RaisedForClient)
	resp, err = s.service.ListIncidents(s.ctx, filter)
	s.NoError(err)
	s.Len(resp.Items, 3)
}
