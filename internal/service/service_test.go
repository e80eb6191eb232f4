package service

import (
	"context"
	"time"

	"github.com/carehub/carehub/internal/api/dto"
	"github.com/carehub/carehub/internal/cache"
	"github.com/carehub/carehub/internal/clock"
	"github.com/carehub/carehub/internal/config"
	"github.com/carehub/carehub/internal/domain/contact"
	"github.com/carehub/carehub/internal/domain/dailynote"
	"github.com/carehub/carehub/internal/domain/document"
	"github.com/carehub/carehub/internal/domain/handover"
	"github.com/carehub/carehub/internal/domain/incident"
	"github.com/carehub/carehub/internal/domain/notice"
	"github.com/carehub/carehub/internal/domain/owner"
	"github.com/carehub/carehub/internal/logger"
	"github.com/carehub/carehub/internal/storage/memory"
	"github.com/carehub/carehub/internal/testutil"
	"github.com/stretchr/testify/suite"
)

// ServiceTestSuite wires every service against in-memory storage and a
// fixed clock. Each suite run starts from an empty store at the same
// instant.
type ServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	clock    *clock.FixedClock
	params   ServiceParams
	resolver owner.Resolver
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	s.clock = clock.NewFixedClock(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))

	cfg := config.GetDefaultConfig()
	s.params = ServiceParams{
		Logger: logger.L,
		Config: cfg,
		Clock:  s.clock,
		Cache:  cache.NewInMemoryCache(cfg),
		DB:     testutil.NewMockPostgresClient(logger.L),

		ClientRepo: testutil.NewInMemoryClientStore(),
		HouseRepo:  testutil.NewInMemoryHouseStore(),
		StaffRepo:  testutil.NewInMemoryStaffStore(),

		NoticeRepo:    memory.NewRecordRepository[notice.Payload](),
		DailyNoteRepo: memory.NewRecordRepository[dailynote.Payload](),
		IncidentRepo:  memory.NewRecordRepository[incident.Payload](),
		ContactRepo:   memory.NewRecordRepository[contact.Payload](),
		DocumentRepo:  memory.NewRecordRepository[document.Payload](),
		HandoverRepo:  memory.NewRecordRepository[handover.Payload](),
	}
	s.resolver = NewOwnerResolver(s.params)
}

// createHouse seeds a house and returns its response.
func (s *ServiceTestSuite) createHouse(name string) *dto.HouseResponse {
	h, err := NewHouseService(s.params).CreateHouse(s.ctx, dto.CreateHouseRequest{
		Name:    name,
		Address: "1 Example St",
	})
	s.Require().NoError(err)
	return h
}

// createClient seeds a client assigned to a house.
func (s *ServiceTestSuite) createClient(firstName, lastName, houseID string) *dto.ClientResponse {
	c, err := NewClientService(s.params).CreateClient(s.ctx, dto.CreateClientRequest{
		FirstName: firstName,
		LastName:  lastName,
		HouseID:   houseID,
	})
	s.Require().NoError(err)
	return c
}
