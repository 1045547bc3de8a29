// internal/handler/router.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/asadkovich/task-manager/internal/middleware"
)

// NewRouter wires the route table. Registration and login are the only
// routes reachable without a bearer token.
func NewRouter(log *slog.Logger, authn *middleware.Authenticator, users *UserHandler, tasks *TaskHandler) http.Handler {
	mux := http.NewServeMux()
	logged := middleware.Logging(log)

	public := func(h http.HandlerFunc) http.Handler {
		return logged(h)
	}
	protected := func(h http.HandlerFunc) http.Handler {
		return authn.Require(logged(h))
	}

	mux.Handle("GET /health", public(health))
	mux.Handle("POST /user/create", public(users.Create))
	mux.Handle("POST /login", public(users.Login))

	mux.Handle("PUT /task/create", protected(tasks.Create))
	mux.Handle("PUT /task/update", protected(tasks.Update))
	mux.Handle("DELETE /task/delete", protected(tasks.Delete))
	mux.Handle("POST /task/history", protected(tasks.History))
	mux.Handle("POST /user/tasks", protected(tasks.List))

	return mux
}

func health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
