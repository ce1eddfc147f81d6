package stats

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora-server/internal/model"
	"github.com/planora/planora-server/internal/store"
)

// --- In-memory fake store ---

type fakeStore struct {
	users    []*model.User
	projects []*model.Project
	tasks    []*model.Task
	entries  []*model.TimeEntry
}

func (f *fakeStore) Users() store.Users                 { return &fakeUsers{f} }
func (f *fakeStore) Projects() store.Projects           { return &fakeProjects{f} }
func (f *fakeStore) Tasks() store.Tasks                 { return &fakeTasks{f} }
func (f *fakeStore) TimeEntries() store.TimeEntries     { return &fakeEntries{f} }
func (f *fakeStore) Notifications() store.Notifications { panic("unused") }
func (f *fakeStore) Activities() store.Activities       { panic("unused") }

func (f *fakeStore) taskByID(id string) *model.Task {
	for _, t := range f.tasks {
		if t.TaskID == id {
			return t
		}
	}
	return nil
}

func (f *fakeStore) projectByID(id string) *model.Project {
	for _, p := range f.projects {
		if p.ProjectID == id {
			return p
		}
	}
	return nil
}

func (f *fakeStore) userByID(id string) *model.User {
	for _, u := range f.users {
		if u.UserID == id {
			return u
		}
	}
	return nil
}

type fakeUsers struct{ p *fakeStore }

func (u *fakeUsers) Create(context.Context, *model.User) (*model.User, error) { panic("unused") }
func (u *fakeUsers) Get(context.Context, string) (*model.User, error)         { panic("unused") }
func (u *fakeUsers) List(context.Context) ([]*model.User, error)              { panic("unused") }
func (u *fakeUsers) Delete(context.Context, string) error                     { panic("unused") }
func (u *fakeUsers) Count(context.Context) (int, error)                       { return len(u.p.users), nil }
func (u *fakeUsers) CountByRole(context.Context) (map[model.Role]int, error) {
	out := make(map[model.Role]int)
	for _, m := range u.p.users {
		out[m.Role]++
	}
	return out, nil
}
func (u *fakeUsers) Recent(_ context.Context, limit int) ([]*model.User, error) {
	cp := append([]*model.User(nil), u.p.users...)
	// later-created (or later-inserted on equal timestamps) first
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].CreationTime.After(cp[j].CreationTime) })
	if len(cp) > limit {
		cp = cp[:limit]
	}
	return cp, nil
}

type fakeProjects struct{ p *fakeStore }

func (p *fakeProjects) Create(context.Context, *model.Project) (*model.Project, error) {
	panic("unused")
}
func (p *fakeProjects) Get(context.Context, string) (*model.Project, error) { panic("unused") }
func (p *fakeProjects) List(context.Context) ([]*model.Project, error)      { return p.p.projects, nil }
func (p *fakeProjects) Update(context.Context, *model.Project) (*model.Project, error) {
	panic("unused")
}
func (p *fakeProjects) Delete(context.Context, string) error { panic("unused") }
func (p *fakeProjects) Count(context.Context) (int, error)   { return len(p.p.projects), nil }
func (p *fakeProjects) CountByStatus(context.Context) (map[model.ProjectStatus]int, error) {
	out := make(map[model.ProjectStatus]int)
	for _, m := range p.p.projects {
		out[m.Status]++
	}
	return out, nil
}
func (p *fakeProjects) Recent(_ context.Context, limit int) ([]*model.Project, error) {
	cp := append([]*model.Project(nil), p.p.projects...)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].CreationTime.After(cp[j].CreationTime) })
	if len(cp) > limit {
		cp = cp[:limit]
	}
	for _, proj := range cp {
		proj.Client = p.p.userByID(proj.ClientID)
		proj.Tasks = nil
		for _, t := range p.p.tasks {
			if t.ProjectID == proj.ProjectID {
				proj.Tasks = append(proj.Tasks, t)
			}
		}
	}
	return cp, nil
}

type fakeTasks struct{ p *fakeStore }

func (t *fakeTasks) Create(context.Context, *model.Task) (*model.Task, error) { panic("unused") }
func (t *fakeTasks) Get(context.Context, string) (*model.Task, error)         { panic("unused") }
func (t *fakeTasks) ListByProject(context.Context, string) ([]*model.Task, error) {
	panic("unused")
}
func (t *fakeTasks) Update(context.Context, *model.Task) (*model.Task, error) { panic("unused") }
func (t *fakeTasks) Delete(context.Context, string) error                     { panic("unused") }
func (t *fakeTasks) Count(context.Context) (int, error)                       { return len(t.p.tasks), nil }
func (t *fakeTasks) CountByStatus(context.Context) (map[model.TaskStatus]int, error) {
	out := make(map[model.TaskStatus]int)
	for _, m := range t.p.tasks {
		out[m.Status]++
	}
	return out, nil
}
func (t *fakeTasks) CountOverdue(_ context.Context, now time.Time) (int, error) {
	n := 0
	for _, m := range t.p.tasks {
		if m.Deadline != nil && m.Deadline.Before(now) && m.Status != model.TaskCompleted {
			n++
		}
	}
	return n, nil
}

type fakeEntries struct{ p *fakeStore }

func (e *fakeEntries) Create(context.Context, *model.TimeEntry) (*model.TimeEntry, error) {
	panic("unused")
}
func (e *fakeEntries) List(context.Context, model.ListTimeEntriesRequest) ([]*model.TimeEntry, error) {
	panic("unused")
}
func (e *fakeEntries) ListRange(_ context.Context, start, end time.Time) ([]*model.TimeEntry, error) {
	var out []*model.TimeEntry
	for _, entry := range e.p.entries {
		if entry.EntryDate.Before(start) || entry.EntryDate.After(end) {
			continue
		}
		cp := *entry
		cp.Task = e.p.taskByID(entry.TaskID)
		if cp.Task != nil {
			cp.Project = e.p.projectByID(cp.Task.ProjectID)
		}
		cp.User = e.p.userByID(entry.UserID)
		out = append(out, &cp)
	}
	return out, nil
}
func (e *fakeEntries) MinutesByProject(context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, entry := range e.p.entries {
		if t := e.p.taskByID(entry.TaskID); t != nil {
			out[t.ProjectID] += int64(entry.Minutes)
		}
	}
	return out, nil
}

// --- Helpers ---

var baseTime = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func at(h int) time.Time { return baseTime.Add(time.Duration(h) * time.Hour) }

func day(offset int) time.Time {
	return time.Date(2026, 4, 10+offset, 0, 0, 0, 0, time.UTC)
}

func fptr(v float64) *float64 { return &v }

func tptr(t time.Time) *time.Time { return &t }

// --- Tests ---

func TestProjectStats_GroupingSumsToTotal(t *testing.T) {
	fs := &fakeStore{
		projects: []*model.Project{
			{ProjectID: "p1", Status: model.ProjectActive, CreationTime: at(0)},
			{ProjectID: "p2", Status: model.ProjectActive, CreationTime: at(1)},
			{ProjectID: "p3", Status: model.ProjectDraft, CreationTime: at(2)},
			{ProjectID: "p4", Status: model.ProjectArchived, CreationTime: at(3)},
		},
	}
	e := New(fs, Options{})

	got, err := e.ProjectStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, got.TotalProjects)
	sum := 0
	for _, sc := range got.ProjectsByStatus {
		assert.Positive(t, sc.Count, "empty status buckets must not appear")
		sum += sc.Count
	}
	assert.Equal(t, got.TotalProjects, sum)
}

func TestProjectStats_RecentOrderingAndCap(t *testing.T) {
	fs := &fakeStore{
		users: []*model.User{{UserID: "client", Role: model.RoleClient}},
	}
	for i := 0; i < 7; i++ {
		fs.projects = append(fs.projects, &model.Project{
			ProjectID:    string(rune('a' + i)),
			ClientID:     "client",
			Status:       model.ProjectActive,
			CreationTime: at(i),
		})
	}
	fs.tasks = []*model.Task{{TaskID: "t1", ProjectID: "g", Status: model.TaskTodo}}
	e := New(fs, Options{})

	got, err := e.ProjectStats(context.Background())
	require.NoError(t, err)

	require.Len(t, got.RecentProjects, 5)
	for i := 1; i < len(got.RecentProjects); i++ {
		prev, cur := got.RecentProjects[i-1], got.RecentProjects[i]
		assert.True(t, prev.CreationTime.After(cur.CreationTime),
			"recent projects must be sorted newest first")
	}
	newest := got.RecentProjects[0]
	assert.Equal(t, "g", newest.ProjectID)
	require.NotNil(t, newest.Client)
	assert.Equal(t, "client", newest.Client.UserID)
	assert.Len(t, newest.Tasks, 1)
}

func TestTaskStats_OverdueRules(t *testing.T) {
	now := at(24)
	past := at(0)
	future := at(48)
	fs := &fakeStore{
		tasks: []*model.Task{
			{TaskID: "late", Status: model.TaskInProgress, Deadline: tptr(past)},
			{TaskID: "done-late", Status: model.TaskCompleted, Deadline: tptr(past)},
			{TaskID: "no-deadline", Status: model.TaskInProgress},
			{TaskID: "future", Status: model.TaskTodo, Deadline: tptr(future)},
		},
	}
	e := New(fs, Options{})
	e.now = func() time.Time { return now }

	got, err := e.TaskStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, got.TotalTasks)
	assert.Equal(t, 1, got.OverdueTasks,
		"completed and deadline-less tasks must not count as overdue")

	sum := 0
	for _, sc := range got.TasksByStatus {
		sum += sc.Count
	}
	assert.Equal(t, got.TotalTasks, sum)
}

func TestUserStats_GroupingAndRecency(t *testing.T) {
	fs := &fakeStore{}
	roles := []model.Role{model.RoleAdmin, model.RoleTeam, model.RoleTeam, model.RoleClient, model.RoleTeam, model.RoleClient, model.RoleAdmin}
	for i, role := range roles {
		fs.users = append(fs.users, &model.User{
			UserID:       string(rune('u')) + string(rune('0'+i)),
			Role:         role,
			CreationTime: at(i),
		})
	}
	e := New(fs, Options{})

	got, err := e.UserStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, got.TotalUsers)
	sum := 0
	for _, rc := range got.UsersByRole {
		sum += rc.Count
	}
	assert.Equal(t, got.TotalUsers, sum)

	require.Len(t, got.RecentUsers, 5)
	for i := 1; i < len(got.RecentUsers); i++ {
		assert.True(t, got.RecentUsers[i-1].CreationTime.After(got.RecentUsers[i].CreationTime))
	}
}

func TestTimeStats_WindowInclusivity(t *testing.T) {
	fs := &fakeStore{
		users:    []*model.User{{UserID: "w"}},
		projects: []*model.Project{{ProjectID: "p1"}},
		tasks:    []*model.Task{{TaskID: "t1", ProjectID: "p1"}},
		entries: []*model.TimeEntry{
			{EntryID: "before", TaskID: "t1", UserID: "w", EntryDate: day(-1), Minutes: 10},
			{EntryID: "start", TaskID: "t1", UserID: "w", EntryDate: day(0), Minutes: 20},
			{EntryID: "end", TaskID: "t1", UserID: "w", EntryDate: day(2), Minutes: 30},
			{EntryID: "after", TaskID: "t1", UserID: "w", EntryDate: day(3), Minutes: 40},
		},
	}
	e := New(fs, Options{})

	got, err := e.TimeStats(context.Background(), day(0), day(2))
	require.NoError(t, err)

	require.Len(t, got.TimeEntries, 2)
	ids := []string{got.TimeEntries[0].EntryID, got.TimeEntries[1].EntryID}
	assert.ElementsMatch(t, []string{"start", "end"}, ids,
		"entries dated exactly at the bounds are included")

	for _, entry := range got.TimeEntries {
		require.NotNil(t, entry.Task)
		require.NotNil(t, entry.Project)
		require.NotNil(t, entry.User)
	}
}

func TestTimeStats_HoursConversion(t *testing.T) {
	fs := &fakeStore{
		users:    []*model.User{{UserID: "w"}},
		projects: []*model.Project{{ProjectID: "p1"}},
		tasks:    []*model.Task{{TaskID: "t1", ProjectID: "p1"}},
		entries: []*model.TimeEntry{
			{EntryID: "e1", TaskID: "t1", UserID: "w", EntryDate: day(0), Minutes: 60},
			{EntryID: "e2", TaskID: "t1", UserID: "w", EntryDate: day(0), Minutes: 30},
			{EntryID: "e3", TaskID: "t1", UserID: "w", EntryDate: day(0), Minutes: 90},
		},
	}
	e := New(fs, Options{})

	got, err := e.TimeStats(context.Background(), day(0), day(0))
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.TotalHours)
}

func TestTimeStats_ProjectRollupResolvesTaskChain(t *testing.T) {
	// Two tasks in p1, one in p2; the rollup must re-aggregate the per-task
	// groups at project granularity.
	fs := &fakeStore{
		users: []*model.User{{UserID: "w"}},
		projects: []*model.Project{
			{ProjectID: "p1"}, {ProjectID: "p2"},
		},
		tasks: []*model.Task{
			{TaskID: "t1", ProjectID: "p1"},
			{TaskID: "t2", ProjectID: "p1"},
			{TaskID: "t3", ProjectID: "p2"},
		},
		entries: []*model.TimeEntry{
			{EntryID: "e1", TaskID: "t1", UserID: "w", EntryDate: day(0), Minutes: 45},
			{EntryID: "e2", TaskID: "t2", UserID: "w", EntryDate: day(0), Minutes: 15},
			{EntryID: "e3", TaskID: "t3", UserID: "w", EntryDate: day(0), Minutes: 30},
			{EntryID: "e4", TaskID: "t1", UserID: "w", EntryDate: day(1), Minutes: 60},
		},
	}
	e := New(fs, Options{})

	got, err := e.TimeStats(context.Background(), day(0), day(1))
	require.NoError(t, err)

	require.Len(t, got.HoursByProject, 2)
	assert.Equal(t, ProjectMinutes{ProjectID: "p1", MinutesSum: 120}, got.HoursByProject[0])
	assert.Equal(t, ProjectMinutes{ProjectID: "p2", MinutesSum: 30}, got.HoursByProject[1])
}

func TestTimeStats_InvertedRangeYieldsEmpty(t *testing.T) {
	fs := &fakeStore{
		entries: []*model.TimeEntry{
			{EntryID: "e1", TaskID: "t1", UserID: "w", EntryDate: day(1), Minutes: 60},
		},
	}
	e := New(fs, Options{})

	got, err := e.TimeStats(context.Background(), day(2), day(0))
	require.NoError(t, err)
	assert.Empty(t, got.TimeEntries)
	assert.Zero(t, got.TotalHours)
}

func TestBudgetStats_VarianceIdentity(t *testing.T) {
	fs := &fakeStore{
		projects: []*model.Project{
			{ProjectID: "p1", Name: "alpha", Budget: fptr(5000)},
			{ProjectID: "p2", Name: "beta", Budget: fptr(1000)},
			{ProjectID: "p3", Name: "gamma"}, // unset budget counts as 0
		},
		tasks: []*model.Task{
			{TaskID: "t1", ProjectID: "p1"},
			{TaskID: "t2", ProjectID: "p2"},
			{TaskID: "t3", ProjectID: "p3"},
		},
		entries: []*model.TimeEntry{
			{EntryID: "e1", TaskID: "t1", UserID: "w", EntryDate: day(0), Minutes: 600},  // 10h
			{EntryID: "e2", TaskID: "t2", UserID: "w", EntryDate: day(0), Minutes: 1200}, // 20h
			{EntryID: "e3", TaskID: "t3", UserID: "w", EntryDate: day(0), Minutes: 30},   // 0.5h
		},
	}
	e := New(fs, Options{})

	got, err := e.BudgetStats(context.Background())
	require.NoError(t, err)
	require.Len(t, got.ProjectStats, 3)

	var varianceSum float64
	for _, pb := range got.ProjectStats {
		assert.Equal(t, pb.Budget-pb.ActualCost, pb.Variance)
		varianceSum += pb.Variance
	}
	assert.Equal(t, varianceSum, got.TotalVariance)
	assert.Equal(t, got.TotalBudget-got.TotalActualCost, got.TotalVariance)

	assert.Equal(t, 6000.0, got.TotalBudget)
	assert.Equal(t, 3050.0, got.TotalActualCost) // (10+20+0.5)h at 100/h
	assert.Equal(t, 2950.0, got.TotalVariance)
}

func TestBudgetStats_CustomHourlyRate(t *testing.T) {
	fs := &fakeStore{
		projects: []*model.Project{{ProjectID: "p1", Name: "alpha", Budget: fptr(1000)}},
		tasks:    []*model.Task{{TaskID: "t1", ProjectID: "p1"}},
		entries: []*model.TimeEntry{
			{EntryID: "e1", TaskID: "t1", UserID: "w", EntryDate: day(0), Minutes: 120},
		},
	}
	e := New(fs, Options{HourlyRate: 50})

	got, err := e.BudgetStats(context.Background())
	require.NoError(t, err)
	require.Len(t, got.ProjectStats, 1)
	assert.Equal(t, 100.0, got.ProjectStats[0].ActualCost) // 2h at 50/h
	assert.Equal(t, 900.0, got.ProjectStats[0].Variance)
}

func TestBudgetStats_EndToEndScenario(t *testing.T) {
	// One project, budget 10000, two tasks each with one 300-minute entry:
	// 10 hours logged, actual cost 1000 at the default rate, variance 9000.
	fs := &fakeStore{
		projects: []*model.Project{{ProjectID: "p1", Name: "site", Budget: fptr(10000)}},
		tasks: []*model.Task{
			{TaskID: "t1", ProjectID: "p1"},
			{TaskID: "t2", ProjectID: "p1"},
		},
		entries: []*model.TimeEntry{
			{EntryID: "e1", TaskID: "t1", UserID: "w", EntryDate: day(0), Minutes: 300},
			{EntryID: "e2", TaskID: "t2", UserID: "w", EntryDate: day(0), Minutes: 300},
		},
	}
	e := New(fs, Options{})

	budget, err := e.BudgetStats(context.Background())
	require.NoError(t, err)
	require.Len(t, budget.ProjectStats, 1)
	assert.Equal(t, 10.0, budget.ProjectStats[0].TotalHours)
	assert.Equal(t, 1000.0, budget.ProjectStats[0].ActualCost)
	assert.Equal(t, 9000.0, budget.ProjectStats[0].Variance)

	timeStats, err := e.TimeStats(context.Background(), day(0), day(0))
	require.NoError(t, err)
	assert.Equal(t, 10.0, timeStats.TotalHours)
}
