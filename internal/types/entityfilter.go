package types

// EntityFilter is the criteria set for listing owner entities (clients,
// houses, staff). Same composition rules as RecordFilter: supplied criteria
// are AND-ed, absent ones impose no constraint.
type EntityFilter struct {
	*QueryFilter

	// Search is matched case-insensitively as a substring against the
	// entity's name-like fields (e.g. "name or house code contains X").
	Search string `json:"search,omitempty" form:"search"`

	// HouseIDs restricts clients/staff to those assigned to one of the
	// given houses.
	HouseIDs []string `json:"house_ids,omitempty" form:"house_ids"`
}

func NewEntityFilter() *EntityFilter {
	return &EntityFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

func (f *EntityFilter) Validate() error {
	if f.QueryFilter != nil {
		return f.QueryFilter.Validate()
	}
	return nil
}

// GetLimit implements BaseFilter
func (f *EntityFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter
func (f *EntityFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// IsUnlimited implements BaseFilter
func (f *EntityFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
