package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ykhdr/hash-bruteforce/common/http/middleware"
	"github.com/ykhdr/hash-bruteforce/config"
	"github.com/ykhdr/hash-bruteforce/internal/dispatcher"
	"github.com/ykhdr/hash-bruteforce/internal/hashcrack"
	"github.com/ykhdr/hash-bruteforce/internal/messages/request"
	"github.com/ykhdr/hash-bruteforce/internal/store/requeststore"
)

const shutdownTimeout = 5 * time.Second

type Dispatcher interface {
	DispatchRequest(req *hashcrack.Request) (request.Id, error)
}

type Server struct {
	l            zerolog.Logger
	addr         string
	dispatcher   Dispatcher
	requestStore requeststore.RequestStore
	metrics      http.Handler
}

// NewServer builds the HTTP API. metrics may be nil, in which case /metrics
// is not served.
func NewServer(
	cfg *config.ServerConfig,
	dispatcher Dispatcher,
	requestStore requeststore.RequestStore,
	metrics http.Handler,
) *Server {
	return &Server{
		addr:         cfg.Address,
		dispatcher:   dispatcher,
		requestStore: requestStore,
		metrics:      metrics,
		l: log.With().
			Str("domain", "api-server").
			Str("type", "http").
			Logger(),
	}
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(s.l))
	plainRouter := router.NewRoute().Subrouter()
	if s.metrics != nil {
		plainRouter.Handle("/metrics", s.metrics).Methods(http.MethodGet)
	}
	plainRouter.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)

	jsonRouter := router.NewRoute().Subrouter()
	jsonRouter.Use(middleware.ApplicationJsonContentTypeMiddleware())
	jsonRouter.HandleFunc("/api/hash/crack", s.handleHashCrack).Methods(http.MethodPost)
	jsonRouter.HandleFunc("/api/hash/status", s.handleHashStatus).Methods(http.MethodGet)
	jsonRouter.HandleFunc("/api/hash/requests", s.handleRequests).Methods(http.MethodGet)
	return router
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(listener net.Listener) context.Context {
			return ctx
		},
	}
	errC := make(chan error, 1)
	go func() {
		s.l.Info().Str("address", s.addr).Msg("Api server is running")
		errC <- server.ListenAndServe()
	}()
	select {
	case err := <-errC:
		s.l.Error().Err(err).Msg("Api server failed")
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown api server")
		}
		s.l.Info().Msg("Api server stopped")
		return nil
	}
}

type crackResponse struct {
	RequestId string `json:"requestId"`
}

type statusResponse struct {
	Status     request.Status `json:"status"`
	Data       []string       `json:"data"`
	Attempts   uint64         `json:"attempts"`
	Exact      bool           `json:"exact"`
	Elapsed    float64        `json:"elapsed"`
	Incomplete bool           `json:"incomplete,omitempty"`
	Warnings   []string       `json:"warnings,omitempty"`
	Error      string         `json:"error,omitempty"`
}

type requestSummary struct {
	RequestId string         `json:"requestId"`
	Status    request.Status `json:"status"`
	Algorithm string         `json:"algorithm"`
	Hash      string         `json:"hash"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (s *Server) handleHashCrack(w http.ResponseWriter, r *http.Request) {
	var req hashcrack.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.l.Warn().Err(err).Msg("Invalid request")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	reqId, err := s.dispatcher.DispatchRequest(&req)
	if err != nil {
		s.l.Warn().Err(err).Msg("Failed to dispatch request")
		if hashcrack.IsConfigError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if errors.Is(err, dispatcher.ErrorQueueFull) {
			http.Error(w, "Too many requests", http.StatusServiceUnavailable)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
	if err = json.NewEncoder(w).Encode(crackResponse{RequestId: string(reqId)}); err != nil {
		s.l.Warn().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) handleHashStatus(w http.ResponseWriter, r *http.Request) {
	requestId := r.URL.Query().Get("requestId")
	if requestId == "" {
		http.Error(w, "Missing requestId", http.StatusBadRequest)
		return
	}
	info, err := s.requestStore.Get(request.Id(requestId))
	if err != nil {
		if errors.Is(err, requeststore.NotFoundErr) {
			http.Error(w, "Request not found", http.StatusNotFound)
			return
		}
		s.l.Warn().Err(err).Str("request-id", requestId).Msg("Failed to get request")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	resp := statusResponse{
		Status: info.Status,
		Data:   []string{},
		Error:  info.ErrorReason,
	}
	if res := info.Result; res != nil {
		if res.Found {
			resp.Data = []string{res.Candidate}
		}
		resp.Attempts = res.Attempts
		resp.Exact = res.Exact
		resp.Elapsed = res.Elapsed.Seconds()
		resp.Incomplete = res.Incomplete
		resp.Warnings = res.Warnings
	}
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		s.l.Warn().Err(err).Msg("Failed to encode response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		s.l.Warn().Err(err).Msg("Failed to write health response")
	}
}

func (s *Server) handleRequests(w http.ResponseWriter, r *http.Request) {
	infos := s.requestStore.List()
	resp := make([]requestSummary, 0, len(infos))
	for _, info := range infos {
		resp = append(resp, requestSummary{
			RequestId: string(info.ID),
			Status:    info.Status,
			Algorithm: info.Request.Algorithm,
			Hash:      info.Request.Hash,
			CreatedAt: info.CreatedAt,
			UpdatedAt: info.UpdatedAt,
		})
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.l.Warn().Err(err).Msg("Failed to encode response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
