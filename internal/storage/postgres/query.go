package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	ierr "github.com/carehub/carehub/internal/errors"
	"github.com/carehub/carehub/internal/types"
	"github.com/lib/pq"
)

// whereBuilder accumulates AND-ed conditions with numbered placeholders.
// The tenant guard is added up front when the context carries a tenant.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func newWhereBuilder(ctx context.Context) *whereBuilder {
	b := &whereBuilder{}
	if tenantID := types.GetTenantID(ctx); tenantID != "" {
		b.add("tenant_id = %s", tenantID)
	}
	return b
}

// add appends a condition; %s stands for the next numbered placeholder.
func (b *whereBuilder) add(cond string, args ...interface{}) {
	placeholders := make([]interface{}, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", len(b.args)+i+1)
	}
	b.conds = append(b.conds, fmt.Sprintf(cond, placeholders...))
	b.args = append(b.args, args...)
}

func (b *whereBuilder) statusIs(status types.Status) {
	b.add("status = %s", string(status))
}

// searchAcross adds a case-insensitive substring match OR-combined over the
// given columns.
func (b *whereBuilder) searchAcross(term string, columns ...string) {
	pattern := "%" + term + "%"
	parts := make([]string, len(columns))
	for i, col := range columns {
		b.args = append(b.args, pattern)
		parts[i] = fmt.Sprintf("%s ILIKE $%d", col, len(b.args))
	}
	b.conds = append(b.conds, "("+strings.Join(parts, " OR ")+")")
}

func (b *whereBuilder) anyOf(column string, values []string) {
	b.add(column+" = ANY(%s)", pq.Array(values))
}

func (b *whereBuilder) clause() (string, []interface{}) {
	if len(b.conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(b.conds, " AND "), b.args
}

func limitClause(filter *types.EntityFilter, argOffset int) string {
	if filter.IsUnlimited() {
		return ""
	}
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", argOffset+1, argOffset+2)
}

func limitArgs(filter *types.EntityFilter) []interface{} {
	if filter.IsUnlimited() {
		return nil
	}
	return []interface{}{filter.GetLimit(), filter.GetOffset()}
}

func requireAffected(res sql.Result, id, entity string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to update %s", entity).
			Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewError(entity+" not found").
			WithHintf("The %s with id %s was not found", entity, id).
			WithReportableDetails(map[string]any{"id": id}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
