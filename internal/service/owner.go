package service

import (
	"context"

	"github.com/carehub/carehub/internal/cache"
	"github.com/carehub/carehub/internal/domain/owner"
	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/types"
)

// ownerResolver validates owner references against the client, house and
// staff repositories. Resolutions are cached: the create path of every
// record kind runs through here, and the owning entities change much less
// often than the records do.
type ownerResolver struct {
	ServiceParams
}

// NewOwnerResolver creates the resolver used by every record engine.
func NewOwnerResolver(params ServiceParams) owner.Resolver {
	return &ownerResolver{ServiceParams: params}
}

func (r *ownerResolver) Resolve(ctx context.Context, refs types.OwnerRefs) error {
	for _, ref := range refs {
		if err := r.resolveOne(ctx, ref); err != nil {
			return err
		}
	}
	return nil
}

func (r *ownerResolver) resolveOne(ctx context.Context, ref types.OwnerRef) error {
	key := cache.GenerateKey(cachePrefixFor(ref.Type), types.GetTenantID(ctx), ref.ID)
	if r.Cache != nil {
		if _, found := r.Cache.Get(ctx, key); found {
			return nil
		}
	}

	var err error
	switch ref.Type {
	case types.OwnerTypeClient:
		_, err = r.ClientRepo.Get(ctx, ref.ID)
	case types.OwnerTypeHouse:
		_, err = r.HouseRepo.Get(ctx, ref.ID)
	case types.OwnerTypeUser:
		_, err = r.StaffRepo.Get(ctx, ref.ID)
	default:
		return ierr.NewError("unknown owner type").
			WithHintf("Owner type %s is not resolvable", ref.Type).
			Mark(ierr.ErrValidation)
	}

	if err != nil {
		if ierr.IsNotFound(err) {
			return ierr.NewError("referenced owner does not exist").
				WithHintf("%s %s does not exist", ref.Type, ref.ID).
				WithReportableDetails(map[string]any{
					"owner_type": ref.Type,
					"owner_id":   ref.ID,
				}).
				Mark(ierr.ErrReferenceNotFound)
		}
		return err
	}

	if r.Cache != nil {
		r.Cache.Set(ctx, key, true, cache.DefaultExpiration)
	}
	return nil
}

func cachePrefixFor(t types.OwnerType) string {
	switch t {
	case types.OwnerTypeClient:
		return cache.PrefixClient
	case types.OwnerTypeHouse:
		return cache.PrefixHouse
	default:
		return cache.PrefixStaff
	}
}

// invalidateOwner drops a cached resolution after an owner entity changes.
func invalidateOwner(ctx context.Context, c cache.Cache, t types.OwnerType, id string) {
	if c == nil {
		return
	}
	c.Delete(ctx, cache.GenerateKey(cachePrefixFor(t), types.GetTenantID(ctx), id))
}
