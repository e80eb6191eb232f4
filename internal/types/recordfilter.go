package types

// RecordFilter is the composite criteria set handed to a list operation.
// Every criterion is optional; absent criteria are simply omitted from the
// conjunction the query assembler builds. Supplied criteria are AND-ed,
// except the free-text search which OR-combines across the searchable
// fields of the record kind.
type RecordFilter struct {
	*QueryFilter
	*TimeRangeFilter

	// Search is a single free-text term matched case-insensitively as a
	// substring against the kind's searchable fields (e.g. "name or house
	// code contains X").
	Search string `json:"search,omitempty" form:"search"`

	// Categories restricts to records whose category matches exactly one
	// of the given values.
	Categories []string `json:"categories,omitempty" form:"categories"`

	// RaisedForType restricts workflow-bearing kinds by the entity type a
	// report was raised for.
	RaisedForType string `json:"raised_for_type,omitempty" form:"raised_for_type"`

	// OwnerRefs restricts to records whose owner reference set intersects
	// the given set (e.g. "any of these houses").
	OwnerRefs OwnerRefs `json:"owner_refs,omitempty" form:"-"`
}

// NewRecordFilter creates a filter with default pagination applied.
func NewRecordFilter() *RecordFilter {
	return &RecordFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

// NewNoLimitRecordFilter creates a filter without pagination limits.
func NewNoLimitRecordFilter() *RecordFilter {
	return &RecordFilter{
		QueryFilter: NewNoLimitQueryFilter(),
	}
}

// Validate validates the supplied criteria.
func (f *RecordFilter) Validate() error {
	if f.QueryFilter != nil {
		if err := f.QueryFilter.Validate(); err != nil {
			return err
		}
	}
	if f.TimeRangeFilter != nil {
		if err := f.TimeRangeFilter.Validate(); err != nil {
			return err
		}
	}
	if err := f.OwnerRefs.Validate(); err != nil {
		return err
	}
	return nil
}

// GetLimit implements BaseFilter
func (f *RecordFilter) GetLimit() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetLimit()
	}
	return f.QueryFilter.GetLimit()
}

// GetOffset implements BaseFilter
func (f *RecordFilter) GetOffset() int {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOffset()
	}
	return f.QueryFilter.GetOffset()
}

// GetStatus implements BaseFilter
func (f *RecordFilter) GetStatus() Status {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetStatus()
	}
	return f.QueryFilter.GetStatus()
}

// GetSort implements BaseFilter
func (f *RecordFilter) GetSort() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetSort()
	}
	return f.QueryFilter.GetSort()
}

// GetOrder implements BaseFilter
func (f *RecordFilter) GetOrder() string {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().GetOrder()
	}
	return f.QueryFilter.GetOrder()
}

// IsUnlimited implements BaseFilter
func (f *RecordFilter) IsUnlimited() bool {
	if f.QueryFilter == nil {
		return NewDefaultQueryFilter().IsUnlimited()
	}
	return f.QueryFilter.IsUnlimited()
}
