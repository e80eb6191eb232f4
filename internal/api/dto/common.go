package dto

import "time"

// ArchiveRecordRequest soft-deletes a record through the conflict-checked
// update path.
type ArchiveRecordRequest struct {
	// ExpectedVersion is the updated_at value the caller last observed;
	// omitted skips the conflict check.
	ExpectedVersion *time.Time `json:"expected_version,omitempty"`
}
