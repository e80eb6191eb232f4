package house

import (
	"github.com/carehub/carehub/internal/types"
)

// House is a residence the organization operates. The short code is the
// human-facing identifier staff use in search boxes and rosters.
type House struct {
	// ID is the unique identifier for the house
	ID string `db:"id" json:"id"`

	// Code is the short human-facing house code, e.g. H-XYZ12A8Q
	Code string `db:"code" json:"code"`

	// Name is the display name of the house
	Name string `db:"name" json:"name"`

	// Address is the street address of the house
	Address string `db:"address" json:"address"`

	types.BaseModel
}

// OwnerRef returns the owner reference pointing at this house.
func (h *House) OwnerRef() types.OwnerRef {
	return types.NewOwnerRef(types.OwnerTypeHouse, h.ID)
}
