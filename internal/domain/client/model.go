package client

import (
	"time"

	"github.com/carehub/carehub/internal/types"
)

// Client is a person the organization coordinates care for.
type Client struct {
	// ID is the unique identifier for the client
	ID string `db:"id" json:"id"`

	// FirstName is the client's given name
	FirstName string `db:"first_name" json:"first_name"`

	// LastName is the client's family name
	LastName string `db:"last_name" json:"last_name"`

	// DateOfBirth is the client's date of birth
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`

	// HouseID is the house the client currently resides in
	HouseID string `db:"house_id" json:"house_id"`

	types.BaseModel
}

// FullName returns the client's display name.
func (c *Client) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// OwnerRef returns the owner reference pointing at this client.
func (c *Client) OwnerRef() types.OwnerRef {
	return types.NewOwnerRef(types.OwnerTypeClient, c.ID)
}
