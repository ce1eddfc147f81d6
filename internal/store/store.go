package store

import (
	"context"
	"time"

	"github.com/planora/planora-server/internal/model"
)

// Store exposes persistence operations required by services and the stats engine.
// Implementations live under internal/store/<driver>/ (e.g., postgres, sqlite).
type Store interface {
	Users() Users
	Projects() Projects
	Tasks() Tasks
	TimeEntries() TimeEntries
	Notifications() Notifications
	Activities() Activities
}

type Users interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, userID string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	Delete(ctx context.Context, userID string) error

	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context) (map[model.Role]int, error)
	Recent(ctx context.Context, limit int) ([]*model.User, error)
}

type Projects interface {
	Create(ctx context.Context, p *model.Project) (*model.Project, error)
	Get(ctx context.Context, projectID string) (*model.Project, error)
	List(ctx context.Context) ([]*model.Project, error)
	Update(ctx context.Context, p *model.Project) (*model.Project, error)
	Delete(ctx context.Context, projectID string) error

	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (map[model.ProjectStatus]int, error)
	// Recent returns the most recently created projects, newest first,
	// each expanded with its owning client and its tasks.
	Recent(ctx context.Context, limit int) ([]*model.Project, error)
}

type Tasks interface {
	Create(ctx context.Context, t *model.Task) (*model.Task, error)
	Get(ctx context.Context, taskID string) (*model.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*model.Task, error)
	Update(ctx context.Context, t *model.Task) (*model.Task, error)
	Delete(ctx context.Context, taskID string) error

	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context) (map[model.TaskStatus]int, error)
	// CountOverdue counts tasks whose deadline is strictly before now and
	// whose status is not completed. Tasks without a deadline never count.
	CountOverdue(ctx context.Context, now time.Time) (int, error)
}

type TimeEntries interface {
	Create(ctx context.Context, e *model.TimeEntry) (*model.TimeEntry, error)
	List(ctx context.Context, req model.ListTimeEntriesRequest) ([]*model.TimeEntry, error)
	// ListRange returns entries whose date falls within [start, end] inclusive,
	// each expanded with its task, that task's project, and the logging user.
	ListRange(ctx context.Context, start, end time.Time) ([]*model.TimeEntry, error)
	// MinutesByProject returns total logged minutes per project across all
	// of the project's tasks, in a single joined read.
	MinutesByProject(ctx context.Context) (map[string]int64, error)
}

type Notifications interface {
	Create(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
}

type Activities interface {
	Record(ctx context.Context, a *model.Activity) (*model.Activity, error)
	ListRecent(ctx context.Context, limit int) ([]*model.Activity, error)
}
