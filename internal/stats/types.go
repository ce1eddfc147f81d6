package stats

import "github.com/planora/planora-server/internal/model"

// StatusCount is one bucket of a status grouping. Only statuses with at least
// one record appear; no ordering is implied beyond what the engine applies.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// RoleCount is one bucket of a role grouping.
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// ProjectStats summarizes the project portfolio.
type ProjectStats struct {
	TotalProjects    int              `json:"totalProjects"`
	ProjectsByStatus []StatusCount    `json:"projectsByStatus"`
	RecentProjects   []*model.Project `json:"recentProjects"`
}

// TaskStats summarizes tasks across all projects.
type TaskStats struct {
	TotalTasks    int           `json:"totalTasks"`
	TasksByStatus []StatusCount `json:"tasksByStatus"`
	OverdueTasks  int           `json:"overdueTasks"`
}

// UserStats summarizes accounts.
type UserStats struct {
	TotalUsers  int           `json:"totalUsers"`
	UsersByRole []RoleCount   `json:"usersByRole"`
	RecentUsers []*model.User `json:"recentUsers"`
}

// ProjectMinutes is a per-project rollup of logged minutes, reported in
// raw-minutes form.
type ProjectMinutes struct {
	ProjectID  string `json:"projectId"`
	MinutesSum int64  `json:"minutesSum"`
}

// TimeStats reports logged work within an inclusive date window.
type TimeStats struct {
	TimeEntries    []*model.TimeEntry `json:"timeEntries"`
	TotalHours     float64            `json:"totalHours"`
	HoursByProject []ProjectMinutes   `json:"hoursByProject"`
}

// ProjectBudget is the budget position of a single project.
// Variance is budget minus actual cost; positive means under budget.
type ProjectBudget struct {
	ProjectID   string  `json:"projectId"`
	ProjectName string  `json:"projectName"`
	TotalHours  float64 `json:"totalHours"`
	Budget      float64 `json:"budget"`
	ActualCost  float64 `json:"actualCost"`
	Variance    float64 `json:"variance"`
}

// BudgetStats reports budget positions for every project plus portfolio totals.
// TotalVariance is the arithmetic sum of per-project variances, which equals
// TotalBudget minus TotalActualCost.
type BudgetStats struct {
	TotalBudget     float64         `json:"totalBudget"`
	TotalActualCost float64         `json:"totalActualCost"`
	TotalVariance   float64         `json:"totalVariance"`
	ProjectStats    []ProjectBudget `json:"projectStats"`
}
