package api

import "net/http"

// Route paths mirror the documented API surface. Trailing-slash and bare
// variants both resolve so clients are not forced into one convention.
const (
	routeRegister = "/api/auth/register"
	routeLogin    = "/api/auth/login"
	routeRefresh  = "/api/auth/refresh"
	routeTasks    = "/api/tasks"
	routeTaskByID = "/api/tasks/{id}"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}

	handle := func(method, path string, handlerFunc http.HandlerFunc) {
		mux.HandleFunc(method+" "+path, handlerFunc)
		mux.HandleFunc(method+" "+path+"/{$}", handlerFunc)
	}

	handle(http.MethodPost, routeRegister, h.handleRegister)
	handle(http.MethodPost, routeLogin, h.handleLogin)
	handle(http.MethodPost, routeRefresh, h.handleRefresh)

	handle(http.MethodGet, routeTasks, h.handleListTasks)
	handle(http.MethodPost, routeTasks, h.handleCreateTask)

	handle(http.MethodGet, routeTaskByID, h.handleGetTask)
	handle(http.MethodPatch, routeTaskByID, h.handleUpdateTask)
	handle(http.MethodPut, routeTaskByID, h.handleUpdateTask)
	handle(http.MethodDelete, routeTaskByID, h.handleDeleteTask)
}
