package api

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"agritrack/backend/internal/config"
	"agritrack/backend/internal/report"
)

type Server struct {
	db             *pgxpool.Pool
	jwtSecret      []byte
	meta           report.Meta
	allowedOrigins map[string]struct{}
	allowAnyOrigin bool
}

type authContextKey string

const userIDContextKey authContextKey = "user_id"

func NewServer(db *pgxpool.Pool, cfg config.Config) *Server {
	s := &Server{
		db:        db,
		jwtSecret: []byte(cfg.JWTSecret),
		meta: report.Meta{
			Region:       cfg.Region,
			Province:     cfg.Province,
			Municipality: cfg.Municipality,
		},
		allowedOrigins: make(map[string]struct{}, len(cfg.CORSAllowedOrigins)),
	}
	for _, origin := range cfg.CORSAllowedOrigins {
		if origin == "*" {
			s.allowAnyOrigin = true
			continue
		}
		s.allowedOrigins[origin] = struct{}{}
	}
	return s
}

func (s *Server) Mux() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.Handle("GET /api/auth/me", s.authRequired(http.HandlerFunc(s.handleMe)))

	mux.Handle("GET /api/dashboard", s.authRequired(http.HandlerFunc(s.handleDashboard)))
	mux.Handle("GET /api/reports/{kind}/export", s.authRequired(http.HandlerFunc(s.handleReportExport)))

	return s.withCORS(mux)
}
