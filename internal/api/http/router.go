package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouterDeps collects everything the route table needs.
type RouterDeps struct {
	Auth           *AuthHandler
	AccessRequests *AccessRequestHandler
	Cases          *CaseHandler
	Reminders      *ReminderHandler
	Cron           *CronHandler
	Middleware     *AuthMiddleware
	CronSecret     string
}

// NewRouter wires the full route table.
func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()

	// public
	api.HandleFunc("/auth/login", deps.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", deps.Auth.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/request-access", deps.AccessRequests.Submit).Methods(http.MethodPost)

	// session required
	session := api.NewRoute().Subrouter()
	session.Use(deps.Middleware.Authenticate)
	session.HandleFunc("/auth/me", deps.Auth.Me).Methods(http.MethodGet)
	session.HandleFunc("/auth/change-password", deps.Auth.ChangePassword).Methods(http.MethodPut)
	session.HandleFunc("/users", deps.Auth.ListUsers).Methods(http.MethodGet)

	session.HandleFunc("/cases", deps.Cases.List).Methods(http.MethodGet)
	session.HandleFunc("/cases", deps.Cases.Create).Methods(http.MethodPost)
	session.HandleFunc("/cases/{id:[0-9]+}", deps.Cases.Get).Methods(http.MethodGet)
	session.HandleFunc("/cases/{id:[0-9]+}", deps.Cases.Update).Methods(http.MethodPut)
	session.HandleFunc("/cases/{id:[0-9]+}", deps.Cases.Delete).Methods(http.MethodDelete)
	session.HandleFunc("/cases/{id:[0-9]+}/movements", deps.Cases.AddMovement).Methods(http.MethodPost)
	session.HandleFunc("/cases/{id:[0-9]+}/comments", deps.Cases.AddComment).Methods(http.MethodPost)
	session.HandleFunc("/cases/{id:[0-9]+}/documents", deps.Cases.ListDocuments).Methods(http.MethodGet)
	session.HandleFunc("/cases/{id:[0-9]+}/documents", deps.Cases.AddDocument).Methods(http.MethodPost)
	session.HandleFunc("/documents/{documentId:[0-9]+}", deps.Cases.DeleteDocument).Methods(http.MethodDelete)
	session.HandleFunc("/documents/{documentId:[0-9]+}/download", deps.Cases.DownloadDocument).Methods(http.MethodGet)

	session.HandleFunc("/reminders", deps.Reminders.List).Methods(http.MethodGet)
	session.HandleFunc("/reminders", deps.Reminders.Create).Methods(http.MethodPost)
	session.HandleFunc("/reminders/{id:[0-9]+}", deps.Reminders.Update).Methods(http.MethodPut)
	session.HandleFunc("/reminders/{id:[0-9]+}", deps.Reminders.Delete).Methods(http.MethodDelete)

	// admin only
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(deps.Middleware.RequireAdmin)
	admin.HandleFunc("/access-requests", deps.AccessRequests.List).Methods(http.MethodGet)
	admin.HandleFunc("/access-requests/{id:[0-9]+}", deps.AccessRequests.Decide).Methods(http.MethodPut)

	// scheduler trigger
	api.Handle("/cron/send-reminders",
		CronAuth(deps.CronSecret, http.HandlerFunc(deps.Cron.SendReminders))).Methods(http.MethodPost)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return r
}
