package visibility

import (
	"testing"
	"time"

	"github.com/carehub/carehub/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestIsActive(t *testing.T) {
	from := time.Date(2021, 11, 18, 0, 0, 0, 0, time.UTC)
	until := time.Date(2021, 11, 19, 0, 0, 0, 0, time.UTC)

	h1 := types.NewOwnerRef(types.OwnerTypeHouse, "house-1")
	h2 := types.NewOwnerRef(types.OwnerTypeHouse, "house-2")
	h3 := types.NewOwnerRef(types.OwnerTypeHouse, "house-3")

	tests := []struct {
		name   string
		status types.Status
		owners types.OwnerRefs
		window types.ValidityWindow
		asOf   time.Time
		group  types.OwnerRefs
		want   bool
	}{
		{
			name:   "active status, owner in group, inside window",
			status: types.StatusActive,
			owners: types.OwnerRefs{h1, h2},
			window: types.ValidityWindow{ValidFrom: &from, ValidUntil: &until},
			asOf:   from.Add(12 * time.Hour),
			group:  types.OwnerRefs{h2},
			want:   true,
		},
		{
			name:   "inactive status fails regardless of window",
			status: types.StatusInactive,
			owners: types.OwnerRefs{h1},
			window: types.ValidityWindow{ValidFrom: &from, ValidUntil: &until},
			asOf:   from.Add(12 * time.Hour),
			group:  types.OwnerRefs{h1},
			want:   false,
		},
		{
			name:   "closed status fails",
			status: types.StatusClosed,
			owners: types.OwnerRefs{h1},
			window: types.ValidityWindow{},
			asOf:   from,
			group:  nil,
			want:   false,
		},
		{
			name:   "no owner intersects the group",
			status: types.StatusActive,
			owners: types.OwnerRefs{h1, h2},
			window: types.ValidityWindow{ValidFrom: &from, ValidUntil: &until},
			asOf:   from.Add(12 * time.Hour),
			group:  types.OwnerRefs{h3},
			want:   false,
		},
		{
			name:   "empty group imposes no owner constraint",
			status: types.StatusActive,
			owners: types.OwnerRefs{h1},
			window: types.ValidityWindow{ValidFrom: &from, ValidUntil: &until},
			asOf:   from.Add(12 * time.Hour),
			group:  nil,
			want:   true,
		},
		{
			name:   "lower bound is inclusive",
			status: types.StatusActive,
			owners: types.OwnerRefs{h1},
			window: types.ValidityWindow{ValidFrom: &from, ValidUntil: &until},
			asOf:   from,
			group:  types.OwnerRefs{h1},
			want:   true,
		},
		{
			name:   "upper bound is exclusive",
			status: types.StatusActive,
			owners: types.OwnerRefs{h1},
			window: types.ValidityWindow{ValidFrom: &from, ValidUntil: &until},
			asOf:   until,
			group:  types.OwnerRefs{h1},
			want:   false,
		},
		{
			name:   "instant before the window",
			status: types.StatusActive,
			owners: types.OwnerRefs{h1},
			window: types.ValidityWindow{ValidFrom: &from, ValidUntil: &until},
			asOf:   from.Add(-time.Second),
			group:  types.OwnerRefs{h1},
			want:   false,
		},
		{
			name:   "open lower bound",
			status: types.StatusActive,
			owners: types.OwnerRefs{h1},
			window: types.ValidityWindow{ValidUntil: &until},
			asOf:   time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
			group:  types.OwnerRefs{h1},
			want:   true,
		},
		{
			name:   "open upper bound",
			status: types.StatusActive,
			owners: types.OwnerRefs{h1},
			window: types.ValidityWindow{ValidFrom: &from},
			asOf:   time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC),
			group:  types.OwnerRefs{h1},
			want:   true,
		},
		{
			name:   "unbounded window is always in range",
			status: types.StatusActive,
			owners: types.OwnerRefs{h1},
			window: types.ValidityWindow{},
			asOf:   time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			group:  types.OwnerRefs{h1},
			want:   true,
		},
		{
			name:   "inverted window is never active",
			status: types.StatusActive,
			owners: types.OwnerRefs{h1},
			window: types.ValidityWindow{ValidFrom: &until, ValidUntil: &from},
			asOf:   from.Add(12 * time.Hour),
			group:  types.OwnerRefs{h1},
			want:   false,
		},
		{
			name:   "zero-length window contains nothing",
			status: types.StatusActive,
			owners: types.OwnerRefs{h1},
			window: types.ValidityWindow{ValidFrom: &from, ValidUntil: lo.ToPtr(from)},
			asOf:   from,
			group:  types.OwnerRefs{h1},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsActive(tt.status, tt.owners, tt.window, tt.asOf, tt.group)
			assert.Equal(t, tt.want, got)
		})
	}
}
