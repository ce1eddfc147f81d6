package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/planora/planora-server/internal/model"
	"github.com/planora/planora-server/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a native Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users                 { return &users{db: s.db} }
func (s *pgStore) Projects() store.Projects           { return &projects{db: s.db} }
func (s *pgStore) Tasks() store.Tasks                 { return &tasks{db: s.db} }
func (s *pgStore) TimeEntries() store.TimeEntries     { return &timeEntries{db: s.db} }
func (s *pgStore) Notifications() store.Notifications { return &notifications{db: s.db} }
func (s *pgStore) Activities() store.Activities       { return &activities{db: s.db} }

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Bootstrap performs a connectivity check to ensure Postgres is reachable.
// This is a fast ping-only check since migrations handle schema setup.
func Bootstrap(ctx context.Context, dsn string) error {
	if dsn == "" {
		return nil // No DSN configured, skip bootstrap
	}

	db, err := Open(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return db.PingContext(ctx)
}

func notFound(kind, id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", kind, id, model.ErrNotFound)
	}
	return err
}

// --- Users ---

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	id := m.UserID
	if id == "" {
		id = uuid.New().String()
	}
	role := m.Role
	if role == "" {
		role = model.RoleTeam
	}
	var created time.Time
	row := u.db.QueryRowContext(ctx, `
        INSERT INTO users (user_id, email, display_name, role)
        VALUES ($1,$2,$3,$4)
        RETURNING creation_time
    `, id, m.Email, m.DisplayName, role)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.UserID = id
	out.Role = role
	out.CreationTime = created
	return &out, nil
}

func (u *users) Get(ctx context.Context, userID string) (*model.User, error) {
	row := u.db.QueryRowContext(ctx, `
        SELECT user_id, email, display_name, role, creation_time
        FROM users WHERE user_id=$1
    `, userID)
	out, err := scanUser(row)
	if err != nil {
		return nil, notFound("user", userID, err)
	}
	return out, nil
}

func (u *users) List(ctx context.Context) ([]*model.User, error) {
	return u.query(ctx, `
        SELECT user_id, email, display_name, role, creation_time
        FROM users ORDER BY creation_time DESC
    `)
}

func (u *users) Delete(ctx context.Context, userID string) error {
	res, err := u.db.ExecContext(ctx, `DELETE FROM users WHERE user_id=$1`, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %s: %w", userID, model.ErrNotFound)
	}
	return nil
}

func (u *users) Count(ctx context.Context) (int, error) {
	var n int
	err := u.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (u *users) CountByRole(ctx context.Context) (map[model.Role]int, error) {
	rows, err := u.db.QueryContext(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := make(map[model.Role]int)
	for rows.Next() {
		var role model.Role
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		out[role] = n
	}
	return out, rows.Err()
}

func (u *users) Recent(ctx context.Context, limit int) ([]*model.User, error) {
	return u.query(ctx, fmt.Sprintf(`
        SELECT user_id, email, display_name, role, creation_time
        FROM users ORDER BY creation_time DESC LIMIT %d
    `, limit))
}

func (u *users) query(ctx context.Context, q string, args ...interface{}) ([]*model.User, error) {
	rows, err := u.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.User
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanUser(r rowScanner) (*model.User, error) {
	var m model.User
	if err := r.Scan(&m.UserID, &m.Email, &m.DisplayName, &m.Role, &m.CreationTime); err != nil {
		return nil, err
	}
	return &m, nil
}

// --- Projects ---

type projects struct{ db *sql.DB }

func (p *projects) Create(ctx context.Context, m *model.Project) (*model.Project, error) {
	id := m.ProjectID
	if id == "" {
		id = uuid.New().String()
	}
	status := m.Status
	if status == "" {
		status = model.ProjectDraft
	}
	var created time.Time
	row := p.db.QueryRowContext(ctx, `
        INSERT INTO projects (project_id, client_id, name, description, status, deadline, progress, budget)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING creation_time
    `, id, m.ClientID, m.Name, m.Description, status, m.Deadline, m.Progress, m.Budget)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.ProjectID = id
	out.Status = status
	out.CreationTime = created
	return &out, nil
}

func (p *projects) Get(ctx context.Context, projectID string) (*model.Project, error) {
	row := p.db.QueryRowContext(ctx, `
        SELECT project_id, client_id, name, description, status, deadline, progress, budget, creation_time
        FROM projects WHERE project_id=$1
    `, projectID)
	out, err := scanProject(row)
	if err != nil {
		return nil, notFound("project", projectID, err)
	}
	return out, nil
}

func (p *projects) List(ctx context.Context) ([]*model.Project, error) {
	return p.query(ctx, `
        SELECT project_id, client_id, name, description, status, deadline, progress, budget, creation_time
        FROM projects ORDER BY creation_time DESC
    `)
}

func (p *projects) Update(ctx context.Context, m *model.Project) (*model.Project, error) {
	res, err := p.db.ExecContext(ctx, `
        UPDATE projects SET name=$1, description=$2, status=$3, deadline=$4, progress=$5, budget=$6
        WHERE project_id=$7
    `, m.Name, m.Description, m.Status, m.Deadline, m.Progress, m.Budget, m.ProjectID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("project %s: %w", m.ProjectID, model.ErrNotFound)
	}
	return p.Get(ctx, m.ProjectID)
}

func (p *projects) Delete(ctx context.Context, projectID string) error {
	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
        DELETE FROM time_entries WHERE task_id IN (SELECT task_id FROM tasks WHERE project_id=$1)
    `, projectID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE project_id=$1`, projectID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE project_id=$1`, projectID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("project %s: %w", projectID, model.ErrNotFound)
	}
	return tx.Commit()
}

func (p *projects) Count(ctx context.Context) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n)
	return n, err
}

func (p *projects) CountByStatus(ctx context.Context) (map[model.ProjectStatus]int, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM projects GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := make(map[model.ProjectStatus]int)
	for rows.Next() {
		var status model.ProjectStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (p *projects) Recent(ctx context.Context, limit int) ([]*model.Project, error) {
	list, err := p.query(ctx, fmt.Sprintf(`
        SELECT project_id, client_id, name, description, status, deadline, progress, budget, creation_time
        FROM projects ORDER BY creation_time DESC LIMIT %d
    `, limit))
	if err != nil {
		return nil, err
	}
	// Expand owning client and tasks. The result set is capped by limit, so the
	// follow-up reads stay bounded.
	u := &users{db: p.db}
	tk := &tasks{db: p.db}
	for _, proj := range list {
		client, err := u.Get(ctx, proj.ClientID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return nil, err
		}
		proj.Client = client
		ts, err := tk.ListByProject(ctx, proj.ProjectID)
		if err != nil {
			return nil, err
		}
		proj.Tasks = ts
	}
	return list, nil
}

func (p *projects) query(ctx context.Context, q string, args ...interface{}) ([]*model.Project, error) {
	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Project
	for rows.Next() {
		m, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanProject(r rowScanner) (*model.Project, error) {
	var m model.Project
	var deadline sql.NullTime
	var budget sql.NullFloat64
	if err := r.Scan(&m.ProjectID, &m.ClientID, &m.Name, &m.Description, &m.Status, &deadline, &m.Progress, &budget, &m.CreationTime); err != nil {
		return nil, err
	}
	if deadline.Valid {
		t := deadline.Time
		m.Deadline = &t
	}
	if budget.Valid {
		b := budget.Float64
		m.Budget = &b
	}
	return &m, nil
}

// --- Tasks ---

type tasks struct{ db *sql.DB }

func (t *tasks) Create(ctx context.Context, m *model.Task) (*model.Task, error) {
	id := m.TaskID
	if id == "" {
		id = uuid.New().String()
	}
	status := m.Status
	if status == "" {
		status = model.TaskTodo
	}
	priority := m.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	var created time.Time
	row := t.db.QueryRowContext(ctx, `
        INSERT INTO tasks (task_id, project_id, title, status, priority, deadline, assignee_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING creation_time
    `, id, m.ProjectID, m.Title, status, priority, m.Deadline, m.AssigneeID)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.TaskID = id
	out.Status = status
	out.Priority = priority
	out.CreationTime = created
	return &out, nil
}

func (t *tasks) Get(ctx context.Context, taskID string) (*model.Task, error) {
	row := t.db.QueryRowContext(ctx, `
        SELECT task_id, project_id, title, status, priority, deadline, assignee_id, creation_time
        FROM tasks WHERE task_id=$1
    `, taskID)
	out, err := scanTask(row)
	if err != nil {
		return nil, notFound("task", taskID, err)
	}
	return out, nil
}

func (t *tasks) ListByProject(ctx context.Context, projectID string) ([]*model.Task, error) {
	rows, err := t.db.QueryContext(ctx, `
        SELECT task_id, project_id, title, status, priority, deadline, assignee_id, creation_time
        FROM tasks WHERE project_id=$1 ORDER BY creation_time DESC
    `, projectID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Task
	for rows.Next() {
		m, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (t *tasks) Update(ctx context.Context, m *model.Task) (*model.Task, error) {
	res, err := t.db.ExecContext(ctx, `
        UPDATE tasks SET title=$1, status=$2, priority=$3, deadline=$4, assignee_id=$5
        WHERE task_id=$6
    `, m.Title, m.Status, m.Priority, m.Deadline, m.AssigneeID, m.TaskID)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("task %s: %w", m.TaskID, model.ErrNotFound)
	}
	return t.Get(ctx, m.TaskID)
}

func (t *tasks) Delete(ctx context.Context, taskID string) error {
	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM time_entries WHERE task_id=$1`, taskID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE task_id=$1`, taskID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}
	return tx.Commit()
}

func (t *tasks) Count(ctx context.Context) (int, error) {
	var n int
	err := t.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}

func (t *tasks) CountByStatus(ctx context.Context) (map[model.TaskStatus]int, error) {
	rows, err := t.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM tasks GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := make(map[model.TaskStatus]int)
	for rows.Next() {
		var status model.TaskStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

func (t *tasks) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	var n int
	err := t.db.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM tasks
        WHERE deadline IS NOT NULL AND deadline < $1 AND status <> $2
    `, now, model.TaskCompleted).Scan(&n)
	return n, err
}

func scanTask(r rowScanner) (*model.Task, error) {
	var m model.Task
	var deadline sql.NullTime
	var assignee sql.NullString
	if err := r.Scan(&m.TaskID, &m.ProjectID, &m.Title, &m.Status, &m.Priority, &deadline, &assignee, &m.CreationTime); err != nil {
		return nil, err
	}
	if deadline.Valid {
		t := deadline.Time
		m.Deadline = &t
	}
	if assignee.Valid {
		a := assignee.String
		m.AssigneeID = &a
	}
	return &m, nil
}

// --- TimeEntries ---

type timeEntries struct{ db *sql.DB }

func (e *timeEntries) Create(ctx context.Context, m *model.TimeEntry) (*model.TimeEntry, error) {
	id := m.EntryID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := e.db.QueryRowContext(ctx, `
        INSERT INTO time_entries (entry_id, task_id, user_id, entry_date, minutes, note)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING creation_time
    `, id, m.TaskID, m.UserID, m.EntryDate, m.Minutes, m.Note)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.EntryID = id
	out.CreationTime = created
	return &out, nil
}

func (e *timeEntries) List(ctx context.Context, req model.ListTimeEntriesRequest) ([]*model.TimeEntry, error) {
	query := `SELECT entry_id, task_id, user_id, entry_date, minutes, note, creation_time
              FROM time_entries WHERE 1=1`
	args := []interface{}{}
	if req.TaskID != "" {
		args = append(args, req.TaskID)
		query += fmt.Sprintf(" AND task_id=$%d", len(args))
	}
	if req.UserID != "" {
		args = append(args, req.UserID)
		query += fmt.Sprintf(" AND user_id=$%d", len(args))
	}
	query += " ORDER BY entry_date DESC, creation_time DESC"
	if req.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", req.Limit)
	}
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.TimeEntry
	for rows.Next() {
		var m model.TimeEntry
		var note sql.NullString
		if err := rows.Scan(&m.EntryID, &m.TaskID, &m.UserID, &m.EntryDate, &m.Minutes, &note, &m.CreationTime); err != nil {
			return nil, err
		}
		if note.Valid {
			n := note.String
			m.Note = &n
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (e *timeEntries) ListRange(ctx context.Context, start, end time.Time) ([]*model.TimeEntry, error) {
	// One joined read resolves the full TimeEntry -> Task -> Project chain plus
	// the logging user; callers never issue per-task follow-ups.
	rows, err := e.db.QueryContext(ctx, `
        SELECT e.entry_id, e.task_id, e.user_id, e.entry_date, e.minutes, e.note, e.creation_time,
               t.project_id, t.title, t.status, t.priority, t.deadline, t.assignee_id, t.creation_time,
               p.client_id, p.name, p.description, p.status, p.deadline, p.progress, p.budget, p.creation_time,
               u.email, u.display_name, u.role, u.creation_time
        FROM time_entries e
        JOIN tasks t ON t.task_id = e.task_id
        JOIN projects p ON p.project_id = t.project_id
        JOIN users u ON u.user_id = e.user_id
        WHERE e.entry_date >= $1 AND e.entry_date <= $2
        ORDER BY e.entry_date ASC, e.creation_time ASC
    `, start, end)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.TimeEntry
	for rows.Next() {
		m, err := scanExpandedEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanExpandedEntry(r rowScanner) (*model.TimeEntry, error) {
	var m model.TimeEntry
	var task model.Task
	var proj model.Project
	var user model.User
	var note sql.NullString
	var taskDeadline, projDeadline sql.NullTime
	var assignee sql.NullString
	var budget sql.NullFloat64
	if err := r.Scan(
		&m.EntryID, &m.TaskID, &m.UserID, &m.EntryDate, &m.Minutes, &note, &m.CreationTime,
		&task.ProjectID, &task.Title, &task.Status, &task.Priority, &taskDeadline, &assignee, &task.CreationTime,
		&proj.ClientID, &proj.Name, &proj.Description, &proj.Status, &projDeadline, &proj.Progress, &budget, &proj.CreationTime,
		&user.Email, &user.DisplayName, &user.Role, &user.CreationTime,
	); err != nil {
		return nil, err
	}
	if note.Valid {
		n := note.String
		m.Note = &n
	}
	task.TaskID = m.TaskID
	if taskDeadline.Valid {
		t := taskDeadline.Time
		task.Deadline = &t
	}
	if assignee.Valid {
		a := assignee.String
		task.AssigneeID = &a
	}
	proj.ProjectID = task.ProjectID
	if projDeadline.Valid {
		t := projDeadline.Time
		proj.Deadline = &t
	}
	if budget.Valid {
		b := budget.Float64
		proj.Budget = &b
	}
	user.UserID = m.UserID
	m.Task = &task
	m.Project = &proj
	m.User = &user
	return &m, nil
}

func (e *timeEntries) MinutesByProject(ctx context.Context) (map[string]int64, error) {
	rows, err := e.db.QueryContext(ctx, `
        SELECT t.project_id, COALESCE(SUM(e.minutes),0)
        FROM time_entries e
        JOIN tasks t ON t.task_id = e.task_id
        GROUP BY t.project_id
    `)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := make(map[string]int64)
	for rows.Next() {
		var projectID string
		var minutes int64
		if err := rows.Scan(&projectID, &minutes); err != nil {
			return nil, err
		}
		out[projectID] = minutes
	}
	return out, rows.Err()
}

// --- Notifications ---

type notifications struct{ db *sql.DB }

func (n *notifications) Create(ctx context.Context, m *model.Notification) (*model.Notification, error) {
	id := m.NotificationID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := n.db.QueryRowContext(ctx, `
        INSERT INTO notifications (notification_id, user_id, message, is_read)
        VALUES ($1,$2,$3,false)
        RETURNING creation_time
    `, id, m.UserID, m.Message)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.NotificationID = id
	out.Read = false
	out.CreationTime = created
	return &out, nil
}

func (n *notifications) ListByUser(ctx context.Context, userID string) ([]*model.Notification, error) {
	rows, err := n.db.QueryContext(ctx, `
        SELECT notification_id, user_id, message, is_read, creation_time
        FROM notifications WHERE user_id=$1 ORDER BY creation_time DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Notification
	for rows.Next() {
		var m model.Notification
		if err := rows.Scan(&m.NotificationID, &m.UserID, &m.Message, &m.Read, &m.CreationTime); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func (n *notifications) MarkRead(ctx context.Context, notificationID string) error {
	res, err := n.db.ExecContext(ctx, `UPDATE notifications SET is_read=true WHERE notification_id=$1`, notificationID)
	if err != nil {
		return err
	}
	if cnt, _ := res.RowsAffected(); cnt == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, model.ErrNotFound)
	}
	return nil
}

// --- Activities ---

type activities struct{ db *sql.DB }

func (a *activities) Record(ctx context.Context, m *model.Activity) (*model.Activity, error) {
	id := m.ActivityID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := a.db.QueryRowContext(ctx, `
        INSERT INTO activities (activity_id, actor_id, action, entity_kind, entity_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING creation_time
    `, id, m.ActorID, m.Action, m.EntityKind, m.EntityID)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}
	out := *m
	out.ActivityID = id
	out.CreationTime = created
	return &out, nil
}

func (a *activities) ListRecent(ctx context.Context, limit int) ([]*model.Activity, error) {
	rows, err := a.db.QueryContext(ctx, fmt.Sprintf(`
        SELECT activity_id, actor_id, action, entity_kind, entity_id, creation_time
        FROM activities ORDER BY creation_time DESC LIMIT %d
    `, limit))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []*model.Activity
	for rows.Next() {
		var m model.Activity
		if err := rows.Scan(&m.ActivityID, &m.ActorID, &m.Action, &m.EntityKind, &m.EntityID, &m.CreationTime); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
