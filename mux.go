package hybridauth

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
)

// Server wires the auth API, the dashboard operations endpoints and their
// stores behind a single http.Handler.
type Server struct {
	router     *mux.Router
	Session    *scs.SessionManager
	Middleware Middleware

	// Optional name used as a prefix for defaults
	AppName string

	// Must be passed in
	UserStore  UserStore
	TokenStore TokenStore

	// Dashboard data stores. Leave nil to disable the operations endpoints.
	Shipments ShipmentStore
	Orders    OrderStore
	Telemetry TelemetryStore

	// JWT related fields
	JwtIssuer    string
	JWTSecretKey string

	// How long a bearer token / session cookie is valid for. Defaults to 1 day.
	SessionTimeoutInSeconds int
}

func New(appName string) *Server {
	return (&Server{AppName: appName}).EnsureDefaults()
}

func (s *Server) EnsureDefaults() *Server {
	if s.AppName == "" {
		s.AppName = "imsop"
	}
	if s.SessionTimeoutInSeconds <= 0 {
		s.SessionTimeoutInSeconds = 86400
	}
	if s.JwtIssuer == "" {
		s.JwtIssuer = fmt.Sprintf("%s-issuer", s.AppName)
	}
	if s.JWTSecretKey == "" {
		s.JWTSecretKey = strings.TrimSpace(os.Getenv("IMSOP_JWT_SECRET_KEY"))
		if s.JWTSecretKey == "" {
			s.JWTSecretKey = "MyTestJWTSecretKey123456"
		}
	}
	if s.Session == nil {
		s.Session = scs.New()
		s.Session.Lifetime = time.Second * time.Duration(s.SessionTimeoutInSeconds)
	}
	if s.Middleware.SessionGetter == nil {
		s.Middleware.SessionGetter = func(r *http.Request, param string) any {
			return s.Session.Get(r.Context(), param)
		}
	}
	if s.Middleware.VerifyToken == nil {
		s.Middleware.VerifyToken = s.verifyAuthToken
	}
	return s
}

// Handler returns the fully assembled handler, with session loading wrapped
// around the router.
func (s *Server) Handler() http.Handler {
	s.EnsureDefaults()
	return s.Session.LoadAndSave(s.setupRoutes().router)
}

func (s *Server) setupRoutes() *Server {
	if s.router != nil {
		return s
	}
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	auth.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	auth.HandleFunc("/request-reset", s.handleRequestReset).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", s.handleResetPassword).Methods(http.MethodPost)
	auth.Handle("/me", s.Middleware.EnsureUser(http.HandlerFunc(s.handleMe))).Methods(http.MethodGet)
	auth.Handle("/profile/{id}", s.Middleware.EnsureUser(http.HandlerFunc(s.handleUpdateProfile))).Methods(http.MethodPatch)
	auth.Handle("/change-password/{id}", s.Middleware.EnsureUser(http.HandlerFunc(s.handleChangePassword))).Methods(http.MethodPost)
	auth.Handle("/logout", http.HandlerFunc(s.handleLogout)).Methods(http.MethodPost)

	ops := api.PathPrefix("/operations").Subrouter()
	ops.Use(mux.MiddlewareFunc(s.Middleware.EnsureUser))
	ops.HandleFunc("/shipments", s.handleListShipments).Methods(http.MethodGet)
	ops.HandleFunc("/shipments/export", s.handleExportShipments).Methods(http.MethodGet)
	ops.HandleFunc("/orders", s.handleListOrders).Methods(http.MethodGet)
	ops.HandleFunc("/orders/export", s.handleExportOrders).Methods(http.MethodGet)

	tel := api.PathPrefix("/telemetry").Subrouter()
	tel.Use(mux.MiddlewareFunc(s.Middleware.EnsureUser))
	tel.HandleFunc("", s.handleGetTelemetry).Methods(http.MethodGet)
	tel.HandleFunc("", s.handlePostTelemetry).Methods(http.MethodPost)

	s.router = r
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// setLoggedInUser records the authenticated user in the cookie session so
// browser clients stay logged in without re-sending the bearer header.
// Passing nil clears the session.
func (s *Server) setLoggedInUser(user *User, token string, r *http.Request) {
	if user == nil {
		_ = s.Session.Clear(r.Context())
		return
	}
	s.Session.Put(r.Context(), s.Middleware.userParamName(), user.ID)
	s.Session.Put(r.Context(), "authToken", token)
}
