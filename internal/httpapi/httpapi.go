package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/TemirB/opsboard/internal/application/service"
	"github.com/TemirB/opsboard/internal/domain"
	"github.com/TemirB/opsboard/internal/observability"
	"github.com/TemirB/opsboard/internal/purchase"
)

//go:generate mockgen -source internal/httpapi/httpapi.go -destination=internal/httpapi/httpapi_mock_test.go -package=httpapi

type Accessor interface {
	GetOrders(ctx context.Context) service.Orders
	GetOrderByIDWithStats(ctx context.Context, id string) (*domain.OrderRecord, service.LookupStats, error)
	ForceSyncOrders(ctx context.Context) (domain.SyncResult, error)
	GetCurrencyRates(ctx context.Context) domain.RateSnapshot
	ForceRefreshRates(ctx context.Context) (domain.RateSnapshot, error)
	Health() service.Health
}

type Purchases interface {
	Transition(ctx context.Context, id int64, to purchase.Status, in purchase.ReceiveInput) (*purchase.Purchase, error)
}

type Server struct {
	accessor  Accessor
	purchases Purchases
	router    chi.Router
	logger    *zap.Logger
	metrics   observability.Metrics
	now       func() time.Time
}

// New builds the API. purchases may be nil when no database is configured.
func New(accessor Accessor, purchases Purchases, logger *zap.Logger, metrics observability.Metrics) *Server {
	s := &Server{
		accessor:  accessor,
		purchases: purchases,
		router:    chi.NewRouter(),
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		ServerTimingApp(s.metrics),
	)

	s.router.Get("/healthz", s.health)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/orders", s.getOrders)
		r.Get("/orders/{id}", s.getOrder)
		r.Post("/orders/sync", s.syncOrders)

		r.Get("/currency/rates", s.getRates)
		r.Post("/currency/rates/refresh", s.refreshRates)

		r.Post("/purchases/{id}/status", s.transitionPurchase)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.accessor.Health())
}

func (s *Server) getOrders(w http.ResponseWriter, r *http.Request) {
	orders := s.accessor.GetOrders(r.Context())

	observability.SetProvenance(w, string(orders.Provenance), orders.FetchedAt, s.now())
	writeJSON(w, orders.Items)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		http.Error(w, "order id required", http.StatusBadRequest)
		return
	}

	order, st, err := s.accessor.GetOrderByIDWithStats(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	observability.AppendServerTiming(w, "index", st.IndexMs, "")
	observability.AppendServerTiming(w, "scan", st.ScanMs, "")
	observability.AppendServerTiming(w, "lookup", 0, string(st.Source))
	w.Header().Set("X-Source", string(st.Provenance))
	w.Header().Set("X-Lookup", string(st.Source))
	observability.SetIfPos(w, "X-Index-Time", st.IndexMs)
	observability.SetIfPos(w, "X-Scan-Time", st.ScanMs)

	writeJSON(w, order)
}

func (s *Server) syncOrders(w http.ResponseWriter, r *http.Request) {
	res, err := s.accessor.ForceSyncOrders(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *Server) getRates(w http.ResponseWriter, r *http.Request) {
	snap := s.accessor.GetCurrencyRates(r.Context())
	s.setRateProvenance(w, snap)
	writeJSON(w, snap)
}

func (s *Server) refreshRates(w http.ResponseWriter, r *http.Request) {
	snap, err := s.accessor.ForceRefreshRates(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.setRateProvenance(w, snap)
	writeJSON(w, snap)
}

func (s *Server) setRateProvenance(w http.ResponseWriter, snap domain.RateSnapshot) {
	switch {
	case snap.Source == domain.RateSourceFallback:
		observability.SetProvenance(w, domain.RateSourceFallback, time.Time{}, s.now())
	case snap.Stale:
		observability.SetProvenance(w, "stale", snap.LastUpdate, s.now())
	default:
		observability.SetProvenance(w, "live", snap.LastUpdate, s.now())
	}
}

type transitionRequest struct {
	Status string `json:"status"`
	purchase.ReceiveInput
}

func (s *Server) transitionPurchase(w http.ResponseWriter, r *http.Request) {
	if s.purchases == nil {
		http.Error(w, "purchases are not configured", http.StatusServiceUnavailable)
		return
	}
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid purchase id", http.StatusBadRequest)
		return
	}

	var req transitionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		s.logger.Error(
			"Error while decoding JSON",
			zap.Error(err),
		)
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.Status == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	p, err := s.purchases.Transition(r.Context(), id, purchase.Status(req.Status), req.ReceiveInput)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, p)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, domain.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrNoData):
		http.Error(w, "upstream unavailable and nothing cached", http.StatusBadGateway)
	default:
		s.logger.Error("Request failed", zap.Error(err))
		http.Error(w, "Service error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	return srv.ListenAndServe()
}

func (s *Server) Handler() http.Handler { return s.router }
