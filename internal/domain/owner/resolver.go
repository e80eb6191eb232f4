package owner

import (
	"context"

	"github.com/carehub/carehub/internal/types"
)

// Resolver validates owner references before a record is persisted. Every
// create path resolves its owners first and fails fast when one is absent.
type Resolver interface {
	// Resolve checks that every reference points at an existing entity.
	// Fails with ErrReferenceNotFound naming the first reference that does
	// not resolve.
	Resolve(ctx context.Context, refs types.OwnerRefs) error
}
