package models

// ProjectFilter selects which due-date window the project list is
// restricted to. It is a closed set: anything else fails to parse.
type ProjectFilter string

const (
	FilterToday     ProjectFilter = "Today"
	FilterThisWeek  ProjectFilter = "This Week"
	FilterThisMonth ProjectFilter = "This Month"
	FilterAll       ProjectFilter = "All"
)

func (f ProjectFilter) IsValid() bool {
	switch f {
	case FilterToday, FilterThisWeek, FilterThisMonth, FilterAll:
		return true
	}
	return false
}

// ParseProjectFilter validates a raw filter tag from the request path.
func ParseProjectFilter(raw string) (ProjectFilter, bool) {
	f := ProjectFilter(raw)
	return f, f.IsValid()
}
