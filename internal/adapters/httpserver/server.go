package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/phenrril/repairshop/internal/domain"
	"github.com/phenrril/repairshop/internal/usecase"
)

type Server struct {
	mux       *http.ServeMux
	auth      *usecase.AuthUC
	customers *usecase.CustomerUC
	jobs      *usecase.JobUC
	products  *usecase.ProductUC
	billing   *usecase.BillingUC
	oauthCfg  *oauth2.Config
	secret    []byte
	uploadDir string
}

type Config struct {
	Auth       *usecase.AuthUC
	Customers  *usecase.CustomerUC
	Jobs       *usecase.JobUC
	Products   *usecase.ProductUC
	Billing    *usecase.BillingUC
	OAuth      *oauth2.Config
	SessionKey string
	UploadDir  string
}

func New(cfg Config) http.Handler {
	s := &Server{
		mux:       http.NewServeMux(),
		auth:      cfg.Auth,
		customers: cfg.Customers,
		jobs:      cfg.Jobs,
		products:  cfg.Products,
		billing:   cfg.Billing,
		oauthCfg:  cfg.OAuth,
		secret:    []byte(cfg.SessionKey),
		uploadDir: cfg.UploadDir,
	}
	s.routes()
	return Chain(s.mux,
		RateLimit(120),
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadDir))))

	s.mux.HandleFunc("POST /api/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/logout", s.handleLogout)
	s.mux.HandleFunc("GET /api/me", s.protected(s.handleMe))

	s.mux.HandleFunc("GET /api/customers", s.protected(s.handleCustomerSearch))
	s.mux.HandleFunc("GET /api/customers/{id}/jobs", s.protected(s.handleCustomerJobs))

	s.mux.HandleFunc("POST /api/jobs", s.protected(s.handleJobIntake))
	s.mux.HandleFunc("GET /api/jobs", s.protected(s.handleJobList))
	s.mux.HandleFunc("GET /api/jobs/{id}", s.protected(s.handleJobGet))
	s.mux.HandleFunc("PATCH /api/jobs/{id}/status", s.protected(s.handleJobStatus))
	s.mux.HandleFunc("POST /api/jobs/{id}/photos", s.protected(s.handleJobPhotos))

	s.mux.HandleFunc("GET /api/products", s.protected(s.handleProductList))
	s.mux.HandleFunc("POST /api/products", s.protected(s.handleProductCreate))
	s.mux.HandleFunc("GET /api/products/low-stock", s.protected(s.handleLowStock))
	s.mux.HandleFunc("GET /api/products/export", s.protected(s.handleProductExport))

	s.mux.HandleFunc("POST /api/checkout", s.protected(s.handleCheckout))
	s.mux.HandleFunc("GET /api/sales", s.protected(s.handleSaleByJob))
	s.mux.HandleFunc("GET /api/sales/{id}", s.protected(s.handleSaleGet))

	if s.oauthCfg != nil {
		s.mux.HandleFunc("GET /auth/google/login", s.handleGoogleLogin)
		s.mux.HandleFunc("GET /auth/google/callback", s.handleGoogleCallback)
	}
}

// protected rejects requests without a valid session cookie. The signed-in
// identity is re-read from the cookie on every request; nothing is cached
// process-wide.
func (s *Server) protected(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.readUserSession(r) == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "authentication required"})
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain failures onto the small set of user-facing
// responses; store-layer failures stay generic.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
	case errors.Is(err, domain.ErrWrongCredentials),
		errors.Is(err, domain.ErrInvalidEmail):
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptySale),
		errors.Is(err, domain.ErrInvalidPayment),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrAlreadyBilled),
		errors.Is(err, domain.ErrDuplicatePhone):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "something went wrong, try again"})
	}
}
