package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/siddiq140/Project-Manager/logging"
	"github.com/siddiq140/Project-Manager/models"
)

// AnalyticsService computes the project count report shown on the
// analytics page. The store fetch goes through a circuit breaker so a
// struggling database does not pile up aggregation requests.
type AnalyticsService struct {
	ProjectStore ProjectStore
	Breaker      *gobreaker.CircuitBreaker
}

func NewAnalyticsService(store ProjectStore) *AnalyticsService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "AnalyticsStoreCB",
		MaxRequests: 1,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &AnalyticsService{
		ProjectStore: store,
		Breaker:      breaker,
	}
}

// GetProjectCounts aggregates the projects created by the given user
// into priority, status and due-date facets. Projects the user is
// merely assigned to are not included.
func (s *AnalyticsService) GetProjectCounts(ctx context.Context, userID primitive.ObjectID) (models.CountReport, error) {
	result, err := s.Breaker.Execute(func() (interface{}, error) {
		return s.ProjectStore.FindByCreator(ctx, userID)
	})
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_COUNTS_FETCH_FAILED, Description: Failed to fetch projects for user %s: %v", userID.Hex(), err)
		var storageErr StorageError
		if errors.As(err, &storageErr) {
			return models.CountReport{}, err
		}
		return models.CountReport{}, StorageError{Op: "project counts", Err: err}
	}

	projects := result.([]models.Project)
	ranges := GetDateRanges(time.Now())

	return computeCounts(projects, ranges), nil
}

// computeCounts builds the report from an already-loaded project set.
// The three facets are independent, so each one runs on its own
// goroutine over the same slice.
func computeCounts(projects []models.Project, ranges DateRanges) models.CountReport {
	var report models.CountReport
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		report.PriorityCounts = countByPriority(projects)
	}()
	go func() {
		defer wg.Done()
		report.StatusCounts = countByStatus(projects)
	}()
	go func() {
		defer wg.Done()
		report.DueDateCounts = countByDueDate(projects, ranges)
	}()
	wg.Wait()

	return report
}

// countByPriority tallies projects per priority. Priorities with no
// projects produce no bucket at all.
func countByPriority(projects []models.Project) []models.PriorityCount {
	tally := make(map[models.Priority]int)
	for _, project := range projects {
		tally[project.Priority]++
	}

	counts := make([]models.PriorityCount, 0, len(tally))
	for _, priority := range models.Priorities {
		if tally[priority] == 0 {
			continue
		}
		counts = append(counts, models.PriorityCount{Priority: priority, Count: tally[priority]})
	}
	return counts
}

func countByStatus(projects []models.Project) []models.StatusCount {
	tally := make(map[models.Status]int)
	for _, project := range projects {
		tally[project.Status]++
	}

	counts := make([]models.StatusCount, 0, len(tally))
	for _, status := range models.Statuses {
		if tally[status] == 0 {
			continue
		}
		counts = append(counts, models.StatusCount{Status: status, Count: tally[status]})
	}
	return counts
}

// countByDueDate fills the four due-date counters. A project with no
// due date contributes to none of them. The today/week/month counters
// overlap; only overdue is exclusive with the rest.
func countByDueDate(projects []models.Project, ranges DateRanges) models.DueDateCounts {
	var counts models.DueDateCounts
	for _, project := range projects {
		if project.DueDate == nil {
			continue
		}
		due := *project.DueDate

		if due.Before(ranges.StartOfToday) {
			counts.Overdue++
			continue
		}
		if due.Before(ranges.EndOfToday) {
			counts.DueToday++
		}
		if due.Before(ranges.EndOfWeek) {
			counts.DueThisWeek++
		}
		if due.Before(ranges.EndOfMonth) {
			counts.DueThisMonth++
		}
	}
	return counts
}
