// Package server is the thin HTTP shim around the pipeline: one scrape
// operation, JSON in and out, status codes split between client and
// upstream failures.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"ReviewScanner/internal/domain"
)

// Runner executes one pipeline invocation.
type Runner interface {
	Run(ctx context.Context, productURL string) (domain.PipelineResult, error)
}

// Server exposes the pipeline over HTTP.
type Server struct {
	runner         Runner
	allowedOrigins []string
	logger         *slog.Logger
}

// New builds the HTTP surface around a pipeline runner.
func New(runner Runner, allowedOrigins []string, log *slog.Logger) *Server {
	return &Server{runner: runner, allowedOrigins: allowedOrigins, logger: log}
}

// Handler returns the routed handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /scrape", s.handleScrape)
	mux.HandleFunc("OPTIONS /scrape", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return s.cors(mux)
}

type scrapeRequest struct {
	ProductURL string `json:"product_url"`
}

type scrapeResponse struct {
	Message  string                 `json:"message"`
	Data     []domain.Review        `json:"data"`
	Counts   domain.SentimentCounts `json:"counts"`
	SheetURL string                 `json:"sheet_url"`
	Warnings []string               `json:"warnings,omitempty"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set("X-Request-Id", requestID)
	log := s.logger
	if log != nil {
		log = log.With("request_id", requestID)
	}

	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "request body must be JSON with a product_url field"})
		return
	}
	if req.ProductURL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "product_url is required"})
		return
	}

	if log != nil {
		log.Info("scrape requested", "product_url", req.ProductURL)
	}

	result, err := s.runner.Run(r.Context(), req.ProductURL)
	if err != nil {
		status, detail := mapError(err)
		if log != nil {
			log.Warn("scrape failed", "status", status, "error", err)
		}
		writeJSON(w, status, errorResponse{Detail: detail})
		return
	}

	if log != nil {
		log.Info("scrape done", "reviews", len(result.Reviews), "warnings", len(result.Warnings))
	}

	writeJSON(w, http.StatusOK, scrapeResponse{
		Message:  "scraping, analysis, and saving completed",
		Data:     result.Reviews,
		Counts:   result.Counts,
		SheetURL: result.SheetURL,
		Warnings: result.Warnings,
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "product review sentiment service"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// mapError splits the taxonomy into client and server failures. Only fatal
// errors reach this point; degraded outcomes travel as warnings on a 200.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidReference):
		return http.StatusBadRequest, "cannot parse product URL, no item id found"
	case errors.Is(err, domain.ErrSourceUnavailable):
		return http.StatusBadGateway, "review source is unavailable, please retry later"
	default:
		return http.StatusInternalServerError, err.Error()
	}
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		for _, allowed := range s.allowedOrigins {
			if origin == allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				break
			}
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
