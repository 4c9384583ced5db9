package shared

// Filter carries common listing parameters for repository queries
type Filter struct {
	Limit    int
	Offset   int
	OrderBy  string
	OrderDir string // asc or desc
	Search   string
}

// DefaultFilter returns a filter with sensible listing defaults
func DefaultFilter() Filter {
	return Filter{
		Limit:    50,
		Offset:   0,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}
