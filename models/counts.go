package models

// PriorityCount is one bucket of the priority facet.
type PriorityCount struct {
	Priority Priority `json:"priority"`
	Count    int      `json:"count"`
}

// StatusCount is one bucket of the status facet.
type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// DueDateCounts holds the four due-date counters. The windows overlap
// on purpose: a project due today is also due this week and this month
// when its due date falls inside those windows.
type DueDateCounts struct {
	Overdue      int `json:"overdue"`
	DueToday     int `json:"dueToday"`
	DueThisWeek  int `json:"dueThisWeek"`
	DueThisMonth int `json:"dueThisMonth"`
}

// CountReport is the aggregate view of a user's projects shown on the
// analytics page. The shape is always fully present: empty facets are
// empty lists, never null.
type CountReport struct {
	PriorityCounts []PriorityCount `json:"priorityCounts"`
	StatusCounts   []StatusCount   `json:"statusCounts"`
	DueDateCounts  DueDateCounts   `json:"dueDateCounts"`
}
