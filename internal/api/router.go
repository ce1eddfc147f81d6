package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/planora/planora-server/internal/api/recovery"
	"github.com/planora/planora-server/internal/services"
	"github.com/planora/planora-server/internal/stats"
	"github.com/planora/planora-server/internal/store"
)

// actorID identifies the caller for audit records. There is no auth layer;
// clients self-report via header and absent callers are recorded as "system".
func actorID(r *http.Request) string {
	if v := r.Header.Get("X-Actor-Id"); v != "" {
		return v
	}
	return "system"
}

// NewRouter creates the HTTP router with all API routes.
func NewRouter(s store.Store, engine *stats.Engine) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	// Create domain services
	userService := services.NewUserService(s)
	projectService := services.NewProjectService(s)
	taskService := services.NewTaskService(s)
	timeEntryService := services.NewTimeEntryService(s)
	notificationService := services.NewNotificationService(s)
	activityService := services.NewActivityService(s)

	// Create handlers
	healthHandler := NewHealthHandler()
	userHandler := NewUserHandler(userService)
	projectHandler := NewProjectHandler(projectService)
	taskHandler := NewTaskHandler(taskService)
	timeEntryHandler := NewTimeEntryHandler(timeEntryService)
	notificationHandler := NewNotificationHandler(notificationService)
	activityHandler := NewActivityHandler(activityService)
	statsHandler := NewStatsHandler(engine)

	// Health endpoint
	router.HandleFunc("/api/v1/health", healthHandler.CheckHealth).Methods("GET")

	// User endpoints
	router.HandleFunc("/api/v1/users", userHandler.CreateUser).Methods("POST")
	router.HandleFunc("/api/v1/users", userHandler.ListUsers).Methods("GET")
	router.HandleFunc("/api/v1/users/{userId}", userHandler.GetUser).Methods("GET")
	router.HandleFunc("/api/v1/users/{userId}", userHandler.DeleteUser).Methods("DELETE")
	router.HandleFunc("/api/v1/users/{userId}/notifications", notificationHandler.ListNotifications).Methods("GET")

	// Project endpoints
	router.HandleFunc("/api/v1/projects", projectHandler.CreateProject).Methods("POST")
	router.HandleFunc("/api/v1/projects", projectHandler.ListProjects).Methods("GET")
	router.HandleFunc("/api/v1/projects/{projectId}", projectHandler.GetProject).Methods("GET")
	router.HandleFunc("/api/v1/projects/{projectId}", projectHandler.UpdateProject).Methods("PUT")
	router.HandleFunc("/api/v1/projects/{projectId}", projectHandler.DeleteProject).Methods("DELETE")

	// Task endpoints nested under projects, plus direct task access
	router.HandleFunc("/api/v1/projects/{projectId}/tasks", taskHandler.CreateTask).Methods("POST")
	router.HandleFunc("/api/v1/projects/{projectId}/tasks", taskHandler.ListTasks).Methods("GET")
	router.HandleFunc("/api/v1/tasks/{taskId}", taskHandler.GetTask).Methods("GET")
	router.HandleFunc("/api/v1/tasks/{taskId}", taskHandler.UpdateTask).Methods("PUT")
	router.HandleFunc("/api/v1/tasks/{taskId}", taskHandler.DeleteTask).Methods("DELETE")
	router.HandleFunc("/api/v1/tasks/{taskId}/assign", taskHandler.AssignTask).Methods("POST")

	// Time entry endpoints
	router.HandleFunc("/api/v1/entries", timeEntryHandler.CreateTimeEntry).Methods("POST")
	router.HandleFunc("/api/v1/entries", timeEntryHandler.ListTimeEntries).Methods("GET")

	// Notification endpoints
	router.HandleFunc("/api/v1/notifications", notificationHandler.CreateNotification).Methods("POST")
	router.HandleFunc("/api/v1/notifications/{notificationId}/read", notificationHandler.MarkRead).Methods("POST")

	// Activity feed
	router.HandleFunc("/api/v1/activities", activityHandler.ListActivities).Methods("GET")

	// Stats endpoints
	router.HandleFunc("/api/v1/stats/projects", statsHandler.GetProjectStats).Methods("GET")
	router.HandleFunc("/api/v1/stats/tasks", statsHandler.GetTaskStats).Methods("GET")
	router.HandleFunc("/api/v1/stats/users", statsHandler.GetUserStats).Methods("GET")
	router.HandleFunc("/api/v1/stats/time", statsHandler.GetTimeStats).Methods("GET")
	router.HandleFunc("/api/v1/stats/budget", statsHandler.GetBudgetStats).Methods("GET")

	return router
}
