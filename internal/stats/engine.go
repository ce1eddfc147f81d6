// Package stats computes derived statistics over projects, tasks, users and
// time entries. Every operation is a stateless point-in-time read followed by
// an in-memory fold; nothing here mutates source records, and any number of
// callers may run concurrently. Operations either return a complete result or
// an error; data-access failures propagate unretried.
package stats

import (
	"context"
	"sort"
	"time"

	"github.com/planora/planora-server/internal/store"
)

// defaultHourlyRate is the cost rate applied when Options leaves it unset.
const defaultHourlyRate = 100.0

// recentLimit caps the recent-projects and recent-users listings.
const recentLimit = 5

// Options configures the engine.
type Options struct {
	// HourlyRate is the currency amount charged per logged hour when deriving
	// actual cost. Zero means the default of 100. The rate is global; costing
	// does not vary by project, user or role.
	HourlyRate float64
}

// Engine answers statistics queries against a Store.
type Engine struct {
	store store.Store
	rate  float64
	now   func() time.Time
}

// New creates an Engine over the given store.
func New(s store.Store, opts Options) *Engine {
	rate := opts.HourlyRate
	if rate == 0 {
		rate = defaultHourlyRate
	}
	return &Engine{store: s, rate: rate, now: time.Now}
}

// ProjectStats returns the project total, counts grouped by status, and the
// five most recently created projects expanded with owning client and tasks.
func (e *Engine) ProjectStats(ctx context.Context) (*ProjectStats, error) {
	total, err := e.store.Projects().Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := e.store.Projects().CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := e.store.Projects().Recent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	return &ProjectStats{
		TotalProjects:    total,
		ProjectsByStatus: statusCounts(byStatus),
		RecentProjects:   recent,
	}, nil
}

// TaskStats returns the task total, counts grouped by status, and the number
// of overdue tasks. A task is overdue when its deadline lies strictly before
// now and it is not completed; tasks without a deadline are never overdue.
func (e *Engine) TaskStats(ctx context.Context) (*TaskStats, error) {
	total, err := e.store.Tasks().Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := e.store.Tasks().CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	overdue, err := e.store.Tasks().CountOverdue(ctx, e.now().UTC())
	if err != nil {
		return nil, err
	}
	return &TaskStats{
		TotalTasks:    total,
		TasksByStatus: statusCounts(byStatus),
		OverdueTasks:  overdue,
	}, nil
}

// UserStats returns the user total, counts grouped by role, and the five most
// recently created users.
func (e *Engine) UserStats(ctx context.Context) (*UserStats, error) {
	total, err := e.store.Users().Count(ctx)
	if err != nil {
		return nil, err
	}
	byRole, err := e.store.Users().CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := e.store.Users().Recent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}
	counts := make([]RoleCount, 0, len(byRole))
	for role, n := range byRole {
		counts = append(counts, RoleCount{Role: string(role), Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Role < counts[j].Role })
	return &UserStats{
		TotalUsers:  total,
		UsersByRole: counts,
		RecentUsers: recent,
	}, nil
}

// TimeStats returns the time entries dated within [start, end] inclusive,
// expanded with task, project and user, plus the total hours and a per-project
// minutes rollup.
//
// Ordering of start and end is deliberately not validated; an inverted range
// simply matches nothing.
//
// The per-project rollup is computed in two passes because entries reference
// tasks, not projects: minutes are first grouped by task, then each task is
// resolved to its project through an index built from the single expanded read,
// and the groups re-aggregated. No per-task follow-up reads are issued.
func (e *Engine) TimeStats(ctx context.Context, start, end time.Time) (*TimeStats, error) {
	entries, err := e.store.TimeEntries().ListRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var totalMinutes int64
	minutesByTask := make(map[string]int64)
	taskProject := make(map[string]string)
	for _, entry := range entries {
		totalMinutes += int64(entry.Minutes)
		minutesByTask[entry.TaskID] += int64(entry.Minutes)
		if entry.Task != nil {
			taskProject[entry.TaskID] = entry.Task.ProjectID
		}
	}

	minutesByProject := make(map[string]int64)
	for taskID, minutes := range minutesByTask {
		minutesByProject[taskProject[taskID]] += minutes
	}
	rollup := make([]ProjectMinutes, 0, len(minutesByProject))
	for projectID, minutes := range minutesByProject {
		rollup = append(rollup, ProjectMinutes{ProjectID: projectID, MinutesSum: minutes})
	}
	sort.Slice(rollup, func(i, j int) bool { return rollup[i].ProjectID < rollup[j].ProjectID })

	return &TimeStats{
		TimeEntries:    entries,
		TotalHours:     float64(totalMinutes) / 60,
		HoursByProject: rollup,
	}, nil
}

// BudgetStats returns every project's logged hours, actual cost at the
// configured hourly rate, budget (zero when unset) and variance, plus
// portfolio totals. The total variance is the sum of per-project variances.
func (e *Engine) BudgetStats(ctx context.Context) (*BudgetStats, error) {
	projects, err := e.store.Projects().List(ctx)
	if err != nil {
		return nil, err
	}
	minutesByProject, err := e.store.TimeEntries().MinutesByProject(ctx)
	if err != nil {
		return nil, err
	}

	out := &BudgetStats{ProjectStats: make([]ProjectBudget, 0, len(projects))}
	for _, p := range projects {
		hours := float64(minutesByProject[p.ProjectID]) / 60
		actual := hours * e.rate
		budget := 0.0
		if p.Budget != nil {
			budget = *p.Budget
		}
		pb := ProjectBudget{
			ProjectID:   p.ProjectID,
			ProjectName: p.Name,
			TotalHours:  hours,
			Budget:      budget,
			ActualCost:  actual,
			Variance:    budget - actual,
		}
		out.ProjectStats = append(out.ProjectStats, pb)
		out.TotalBudget += pb.Budget
		out.TotalActualCost += pb.ActualCost
		out.TotalVariance += pb.Variance
	}
	return out, nil
}

func statusCounts[S ~string](m map[S]int) []StatusCount {
	counts := make([]StatusCount, 0, len(m))
	for status, n := range m {
		counts = append(counts, StatusCount{Status: string(status), Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Status < counts[j].Status })
	return counts
}
