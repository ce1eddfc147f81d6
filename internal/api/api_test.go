package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/planora/planora-server/internal/stats"
	"github.com/planora/planora-server/internal/store/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	engine := stats.New(st, stats.Options{HourlyRate: 100})
	srv := httptest.NewServer(NewRouter(st, engine))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Actor-Id", "test_admin")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createUser(t *testing.T, srv *httptest.Server, id, role string) {
	t.Helper()
	code := doJSON(t, http.MethodPost, srv.URL+"/api/v1/users", map[string]interface{}{
		"userId": id, "email": id + "@example.com", "role": role,
	}, nil)
	require.Equal(t, http.StatusCreated, code)
}

func TestUserLifecycle(t *testing.T) {
	srv := newTestServer(t)

	createUser(t, srv, "alice", "admin")

	var got map[string]interface{}
	code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/users/alice", nil, &got)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "alice", got["userId"])
	require.Equal(t, "admin", got["role"])

	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/users/nobody", nil, nil)
	require.Equal(t, http.StatusNotFound, code)

	code = doJSON(t, http.MethodPost, srv.URL+"/api/v1/users", map[string]interface{}{
		"userId": "bob", "email": "not-an-email", "role": "team",
	}, nil)
	require.Equal(t, http.StatusBadRequest, code)

	code = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/users/alice", nil, nil)
	require.Equal(t, http.StatusNoContent, code)
}

func TestProjectAndTaskFlow(t *testing.T) {
	srv := newTestServer(t)
	createUser(t, srv, "client_1", "client")
	createUser(t, srv, "dev_1", "team")

	var project map[string]interface{}
	code := doJSON(t, http.MethodPost, srv.URL+"/api/v1/projects", map[string]interface{}{
		"clientId": "client_1", "name": "Website Redesign", "status": "active", "budget": 10000,
	}, &project)
	require.Equal(t, http.StatusCreated, code)
	projectID, _ := project["projectId"].(string)
	require.NotEmpty(t, projectID)

	var task map[string]interface{}
	code = doJSON(t, http.MethodPost, srv.URL+"/api/v1/projects/"+projectID+"/tasks", map[string]interface{}{
		"title": "Build landing page", "priority": "high",
	}, &task)
	require.Equal(t, http.StatusCreated, code)
	taskID, _ := task["taskId"].(string)
	require.NotEmpty(t, taskID)
	require.Equal(t, "todo", task["status"])

	// Assigning notifies the assignee.
	code = doJSON(t, http.MethodPost, srv.URL+"/api/v1/tasks/"+taskID+"/assign", map[string]interface{}{
		"assigneeId": "dev_1",
	}, &task)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "dev_1", task["assigneeId"])

	var notifications map[string]interface{}
	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/users/dev_1/notifications", nil, &notifications)
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 1, notifications["count"])

	// Mutations landed in the activity feed.
	var activities map[string]interface{}
	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/activities", nil, &activities)
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 3, activities["count"])

	// Task creation against a missing project is rejected.
	code = doJSON(t, http.MethodPost, srv.URL+"/api/v1/projects/missing/tasks", map[string]interface{}{
		"title": "Orphan task",
	}, nil)
	require.Equal(t, http.StatusNotFound, code)

	// Deleting the project cascades to its tasks.
	code = doJSON(t, http.MethodDelete, srv.URL+"/api/v1/projects/"+projectID, nil, nil)
	require.Equal(t, http.StatusNoContent, code)
	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/tasks/"+taskID, nil, nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestStatsEndpoints(t *testing.T) {
	srv := newTestServer(t)
	createUser(t, srv, "client_1", "client")
	createUser(t, srv, "dev_1", "team")

	var project map[string]interface{}
	code := doJSON(t, http.MethodPost, srv.URL+"/api/v1/projects", map[string]interface{}{
		"clientId": "client_1", "name": "Mobile App", "status": "active", "budget": 10000,
	}, &project)
	require.Equal(t, http.StatusCreated, code)
	projectID := project["projectId"].(string)

	var task map[string]interface{}
	code = doJSON(t, http.MethodPost, srv.URL+"/api/v1/projects/"+projectID+"/tasks", map[string]interface{}{
		"title": "Prototype screens", "status": "in_progress",
	}, &task)
	require.Equal(t, http.StatusCreated, code)
	taskID := task["taskId"].(string)

	for i := 0; i < 2; i++ {
		code = doJSON(t, http.MethodPost, srv.URL+"/api/v1/entries", map[string]interface{}{
			"taskId": taskID, "userId": "dev_1", "entryDate": fmt.Sprintf("2026-03-0%d", i+1), "minutes": 300,
		}, nil)
		require.Equal(t, http.StatusCreated, code)
	}

	var projectStats map[string]interface{}
	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/stats/projects", nil, &projectStats)
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 1, projectStats["totalProjects"])

	var taskStats map[string]interface{}
	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/stats/tasks", nil, &taskStats)
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 1, taskStats["totalTasks"])
	require.EqualValues(t, 0, taskStats["overdueTasks"])

	var userStats map[string]interface{}
	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/stats/users", nil, &userStats)
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 2, userStats["totalUsers"])

	var timeStats map[string]interface{}
	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/stats/time?start=2026-03-01&end=2026-03-31", nil, &timeStats)
	require.Equal(t, http.StatusOK, code)
	require.InDelta(t, 10.0, timeStats["totalHours"], 1e-9)

	// Missing bounds are rejected.
	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/stats/time?start=2026-03-01", nil, nil)
	require.Equal(t, http.StatusBadRequest, code)

	// An inverted window is not an error; it just matches nothing.
	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/stats/time?start=2026-03-31&end=2026-03-01", nil, &timeStats)
	require.Equal(t, http.StatusOK, code)
	require.InDelta(t, 0.0, timeStats["totalHours"], 1e-9)

	var budgetStats map[string]interface{}
	code = doJSON(t, http.MethodGet, srv.URL+"/api/v1/stats/budget", nil, &budgetStats)
	require.Equal(t, http.StatusOK, code)
	require.InDelta(t, 10000.0, budgetStats["totalBudget"], 1e-9)
	require.InDelta(t, 1000.0, budgetStats["totalActualCost"], 1e-9)
	require.InDelta(t, 9000.0, budgetStats["totalVariance"], 1e-9)
}

func TestTimeEntryValidation(t *testing.T) {
	srv := newTestServer(t)
	createUser(t, srv, "client_1", "client")
	createUser(t, srv, "dev_1", "team")

	var project map[string]interface{}
	code := doJSON(t, http.MethodPost, srv.URL+"/api/v1/projects", map[string]interface{}{
		"clientId": "client_1", "name": "Internal Tools", "status": "active",
	}, &project)
	require.Equal(t, http.StatusCreated, code)

	var task map[string]interface{}
	code = doJSON(t, http.MethodPost, srv.URL+"/api/v1/projects/"+project["projectId"].(string)+"/tasks", map[string]interface{}{
		"title": "Set up CI",
	}, &task)
	require.Equal(t, http.StatusCreated, code)
	taskID := task["taskId"].(string)

	code = doJSON(t, http.MethodPost, srv.URL+"/api/v1/entries", map[string]interface{}{
		"taskId": taskID, "userId": "dev_1", "entryDate": "2026-03-01", "minutes": -5,
	}, nil)
	require.Equal(t, http.StatusBadRequest, code)

	code = doJSON(t, http.MethodPost, srv.URL+"/api/v1/entries", map[string]interface{}{
		"taskId": taskID, "userId": "dev_1", "entryDate": "March 1st", "minutes": 60,
	}, nil)
	require.Equal(t, http.StatusBadRequest, code)

	code = doJSON(t, http.MethodPost, srv.URL+"/api/v1/entries", map[string]interface{}{
		"taskId": "missing", "userId": "dev_1", "entryDate": "2026-03-01", "minutes": 60,
	}, nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	BindServiceHealth(func() bool { return true })
	t.Cleanup(func() { BindServiceHealth(func() bool { return healthyFlag.Load() == 1 }) })

	var got map[string]interface{}
	code := doJSON(t, http.MethodGet, srv.URL+"/api/v1/health", nil, &got)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "healthy", got["status"])
}
