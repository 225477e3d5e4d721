package dto

// ── pagination ──

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListRequest common list parameters. Filters carries the remaining query
// parameters; each entity reads only the ones it knows.
type ListRequest struct {
	Page    int               `form:"page"`
	Limit   int               `form:"limit"`
	Search  string            `form:"search"`
	Filters map[string]string `form:"-"`
}

// GetPage page number with default.
func (r *ListRequest) GetPage() int {
	if r.Page <= 0 {
		return DefaultPage
	}
	return r.Page
}

// GetLimit page size with default and upper bound.
func (r *ListRequest) GetLimit() int {
	switch {
	case r.Limit <= 0:
		return DefaultLimit
	case r.Limit > MaxLimit:
		return MaxLimit
	default:
		return r.Limit
	}
}

// GetOffset rows to skip.
func (r *ListRequest) GetOffset() int {
	return (r.GetPage() - 1) * r.GetLimit()
}

// Filter returns one filter value, "" when absent.
func (r *ListRequest) Filter(name string) string {
	if r.Filters == nil {
		return ""
	}
	return r.Filters[name]
}
