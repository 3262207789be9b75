package routes

import (
	"net/http"
	"skycast/internal/handlers"
	"skycast/internal/middleware"

	"github.com/gorilla/mux"
)

func InitRoutes(
	r *mux.Router,
	authHandler *handlers.AuthHandler,
	passwordHandler *handlers.PasswordHandler,
	locationHandler *handlers.LocationHandler,
) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logging)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Публичные маршруты.
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	api.HandleFunc("/password/forgot", passwordHandler.Forgot).Methods(http.MethodPost)
	api.HandleFunc("/password/reset", passwordHandler.Reset).Methods(http.MethodPost)

	api.HandleFunc("/email/verify", authHandler.VerifyEmail).Methods(http.MethodGet)

	// Маршруты под JWT.
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.JWTAuth)

	protected.HandleFunc("/auth/profile", authHandler.Profile).Methods(http.MethodGet)
	protected.HandleFunc("/email/resend", authHandler.ResendVerificationEmail).Methods(http.MethodPost)
	protected.HandleFunc("/password/change", passwordHandler.Change).Methods(http.MethodPost)

	protected.HandleFunc("/locations", locationHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/locations", locationHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/locations/{id:[0-9]+}", locationHandler.Show).Methods(http.MethodGet)
	protected.HandleFunc("/locations/{id:[0-9]+}", locationHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/locations/{id:[0-9]+}", locationHandler.Delete).Methods(http.MethodDelete)
}
