package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mfin-backend/internal/handlers"
	"mfin-backend/internal/middleware"
)

// NewStaffRouter wires the back-office API. Session login, health and
// metrics are public; everything else sits behind the session middleware.
func NewStaffRouter(
	loanHandler *handlers.LoanHandler,
	customerHandler *handlers.CustomerHandler,
	userHandler *handlers.UserHandler,
	sessionHandler *handlers.SessionHandler,
	financialHandler *handlers.FinancialHandler,
	activityHandler *handlers.ActivityHandler,
	collectionHandler *handlers.CollectionHandler,
	healthHandler *handlers.HealthHandler,
	sessionMiddleware *middleware.SessionMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public routes - session login and probes
	r.HandleFunc("/session", sessionHandler.Login).Methods("POST")
	r.HandleFunc("/session", sessionHandler.Current).Methods("GET")
	r.HandleFunc("/session", sessionHandler.Logout).Methods("DELETE")

	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Protected API routes - Loans
	loansAPI := r.PathPrefix("/api/loans").Subrouter()
	loansAPI.Use(sessionMiddleware.Authenticate)
	loansAPI.HandleFunc("", loanHandler.List).Methods("GET")
	loansAPI.HandleFunc("", loanHandler.Create).Methods("POST")
	loansAPI.HandleFunc("", loanHandler.Patch).Methods("PATCH")
	loansAPI.HandleFunc("/groups", loanHandler.Groups).Methods("GET")
	loansAPI.HandleFunc("/{id}", loanHandler.Delete).Methods("DELETE")

	// Protected API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(sessionMiddleware.Authenticate)
	customersAPI.HandleFunc("", customerHandler.List).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.Create).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.Get).Methods("GET")

	// Protected API routes - Financials
	financialsAPI := r.PathPrefix("/api/financials").Subrouter()
	financialsAPI.Use(sessionMiddleware.Authenticate)
	financialsAPI.HandleFunc("", financialHandler.Get).Methods("GET")
	financialsAPI.HandleFunc("", financialHandler.Replace).Methods("POST")

	// Protected API routes - Collections (payment events)
	collectionsAPI := r.PathPrefix("/api/collections").Subrouter()
	collectionsAPI.Use(sessionMiddleware.Authenticate)
	collectionsAPI.HandleFunc("", collectionHandler.List).Methods("GET")

	// Protected API routes - User activities
	activitiesAPI := r.PathPrefix("/api/userActivities").Subrouter()
	activitiesAPI.Use(sessionMiddleware.Authenticate)
	activitiesAPI.HandleFunc("", activityHandler.List).Methods("GET")
	activitiesAPI.HandleFunc("", activityHandler.Create).Methods("POST")

	// Protected API routes - Users (roster changes are admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.HandleFunc("", sessionMiddleware.Authenticate(http.HandlerFunc(userHandler.List)).ServeHTTP).Methods("GET")
	usersAPI.HandleFunc("", sessionMiddleware.RequireAdmin(http.HandlerFunc(userHandler.Create)).ServeHTTP).Methods("POST")
	usersAPI.HandleFunc("", sessionMiddleware.RequireAdmin(http.HandlerFunc(userHandler.Update)).ServeHTTP).Methods("PATCH")

	return r
}

// NewPortalRouter wires the borrower-facing portal. Login, health and
// metrics are public; loan and profile reads require a borrower JWT.
func NewPortalRouter(
	portalHandler *handlers.PortalHandler,
	healthHandler *handlers.HealthHandler,
	customerAuth *middleware.CustomerAuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/auth/login", portalHandler.Login).Methods("POST")

	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	portalAPI := r.PathPrefix("/api").Subrouter()
	portalAPI.Use(customerAuth.Authenticate)
	portalAPI.HandleFunc("/loans", portalHandler.Loans).Methods("GET")
	portalAPI.HandleFunc("/profile", portalHandler.Profile).Methods("GET")

	return r
}
