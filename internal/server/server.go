// Package server exposes the evaluation engine over HTTP for the form UI
// and report collaborators. Handlers are stateless: every request carries
// the full item or session payload.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/licita-tools/pesquisa-cli/internal/config"
	"github.com/licita-tools/pesquisa-cli/internal/engine"
	"github.com/licita-tools/pesquisa-cli/internal/model"
	"github.com/licita-tools/pesquisa-cli/internal/session"
)

// New builds the router. defaults supplies the analysis thresholds used
// when a request omits its own.
func New(cfg config.ServerConfig, defaults model.AnalysisConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Use(rateLimit(rate.Limit(cfg.RateLimit), cfg.RateBurst))

	r.Get("/health", handleHealth)
	r.Post("/evaluate", handleEvaluate(defaults))
	r.Post("/consolidate", handleConsolidate(defaults))

	return r
}

// rateLimit applies a process-wide token bucket. The evaluation API backs
// a single interactive UI, so a global limiter is enough.
func rateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// evaluateRequest carries one item and optional threshold overrides.
type evaluateRequest struct {
	Item   model.Item            `json:"item"`
	Config *model.AnalysisConfig `json:"config,omitempty"`
}

func handleEvaluate(defaults model.AnalysisConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		cfg := defaults
		if req.Config != nil {
			cfg = *req.Config
		}
		ev, err := engine.New(cfg)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		res := ev.EvaluateItem(&req.Item)
		writeJSON(w, http.StatusOK, res)
	}
}

// consolidateRequest carries a full session snapshot.
type consolidateRequest struct {
	Session model.AnalysisSession `json:"session"`
}

func handleConsolidate(defaults model.AnalysisConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req consolidateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if (req.Session.Config == model.AnalysisConfig{}) {
			req.Session.Config = defaults
		}
		mgr, err := session.Restore(&req.Session)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		rep, err := mgr.Consolidate()
		if err != nil {
			zap.L().Error("server: consolidate failed",
				zap.String("session_id", req.Session.ID),
				zap.Error(err),
			)
			writeError(w, http.StatusInternalServerError, "consolidation failed")
			return
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
