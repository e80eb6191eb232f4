package staff

import (
	"github.com/carehub/carehub/internal/types"
)

// Member is a staff member of the organization.
type Member struct {
	// ID is the unique identifier for the staff member
	ID string `db:"id" json:"id"`

	// Name is the staff member's display name
	Name string `db:"name" json:"name"`

	// Email is the staff member's email address
	Email string `db:"email" json:"email"`

	// Role is the staff member's role, e.g. support worker, team leader
	Role string `db:"role" json:"role"`

	// HouseID is the house the staff member is primarily rostered to
	HouseID string `db:"house_id" json:"house_id"`

	types.BaseModel
}

// OwnerRef returns the owner reference pointing at this staff member.
func (m *Member) OwnerRef() types.OwnerRef {
	return types.NewOwnerRef(types.OwnerTypeUser, m.ID)
}
