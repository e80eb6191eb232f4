package service

import (
	"time"

	"github.com/carehub/carehub/internal/cache"
	"github.com/carehub/carehub/internal/clock"
	"github.com/carehub/carehub/internal/config"
	"github.com/carehub/carehub/internal/domain/client"
	"github.com/carehub/carehub/internal/domain/contact"
	"github.com/carehub/carehub/internal/domain/dailynote"
	"github.com/carehub/carehub/internal/domain/document"
	"github.com/carehub/carehub/internal/domain/handover"
	"github.com/carehub/carehub/internal/domain/house"
	"github.com/carehub/carehub/internal/domain/incident"
	"github.com/carehub/carehub/internal/domain/notice"
	"github.com/carehub/carehub/internal/domain/record"
	"github.com/carehub/carehub/internal/domain/staff"
	"github.com/carehub/carehub/internal/logger"
	"github.com/carehub/carehub/internal/postgres"
)

// ServiceParams is the common dependency set injected into every service.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	Clock  clock.Clock
	Cache  cache.Cache
	DB     postgres.IClient

	// Owner entity repositories
	ClientRepo client.Repository
	HouseRepo  house.Repository
	StaffRepo  staff.Repository

	// Record repositories, one per kind
	NoticeRepo    record.Repository[notice.Payload]
	DailyNoteRepo record.Repository[dailynote.Payload]
	IncidentRepo  record.Repository[incident.Payload]
	ContactRepo   record.Repository[contact.Payload]
	DocumentRepo  record.Repository[document.Payload]
	HandoverRepo  record.Repository[handover.Payload]
}

func (p ServiceParams) versionGranularity() time.Duration {
	if p.Config == nil {
		return 0
	}
	return p.Config.Concurrency.VersionGranularity
}
