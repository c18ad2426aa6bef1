package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"FinScore/internal/domain/models"
	icache "FinScore/internal/service/cache"
	"FinScore/internal/service/metrics"
	"FinScore/internal/service/ratelimit"
	"FinScore/internal/usecase"
	xhttp "FinScore/pkg/http"
	xlogger "FinScore/pkg/logger"
	xutil "FinScore/pkg/util"

	"github.com/labstack/echo/v4"
)

const headerCache = "X-Cache"

// HealthCheck reports whether a backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

// ScoreEchoHandler serves the scoring API.
type ScoreEchoHandler struct {
	logger  *xlogger.Logger
	engine  *usecase.Engine
	batch   *usecase.BatchScorer
	symbols *usecase.SymbolScorer
	candles *usecase.CandlesUseCase

	cache    icache.BytesCache
	cacheTTL time.Duration
	rl       *ratelimit.Limiter
	checks   map[string]HealthCheck
}

type ScoreHandlerOption func(*ScoreEchoHandler)

// WithPriceStoreUseCases enables the symbol and candle routes.
func WithPriceStoreUseCases(s *usecase.SymbolScorer, c *usecase.CandlesUseCase) ScoreHandlerOption {
	return func(h *ScoreEchoHandler) {
		h.symbols = s
		h.candles = c
	}
}

func WithCache(c icache.BytesCache, ttl time.Duration) ScoreHandlerOption {
	return func(h *ScoreEchoHandler) {
		h.cache = c
		h.cacheTTL = ttl
	}
}

func WithRateLimiter(rl *ratelimit.Limiter) ScoreHandlerOption {
	return func(h *ScoreEchoHandler) { h.rl = rl }
}

func WithHealthCheck(name string, fn HealthCheck) ScoreHandlerOption {
	return func(h *ScoreEchoHandler) {
		if fn != nil {
			h.checks[name] = fn
		}
	}
}

func NewScoreEchoHandler(logger *xlogger.Logger, engine *usecase.Engine, batch *usecase.BatchScorer, opts ...ScoreHandlerOption) *ScoreEchoHandler {
	metrics.Register()
	if logger == nil {
		logger = xlogger.Nop()
	}
	h := &ScoreEchoHandler{
		logger:   logger,
		engine:   engine,
		batch:    batch,
		cacheTTL: time.Minute,
		checks:   make(map[string]HealthCheck),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *ScoreEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api", h.rateLimit)
	g.POST("/score", h.Score)
	g.POST("/score/batch", h.ScoreBatch)
	g.GET("/score/:symbol", h.ScoreSymbol)
	g.GET("/candles/:symbol", h.Candles)
	g.POST("/regime", h.Regime)
	g.GET("/weights", h.Weights)
}

func (h *ScoreEchoHandler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.rl != nil && !h.rl.Allow(c.RealIP()+":"+c.Path()) {
			h.logger.Warn("api rate_limited",
				xlogger.String("remote", c.RealIP()),
				xlogger.String("route", c.Path()))
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limited"))
		}
		return next(c)
	}
}

func track(endpoint string) func() {
	start := time.Now()
	return func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }
}

func (h *ScoreEchoHandler) fail(c echo.Context, endpoint string, err error) error {
	metrics.APIErrors.WithLabelValues(endpoint).Inc()
	h.logger.Error(endpoint+" usecase error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}

// cachedReport looks up a report; any cache error counts as a miss.
func (h *ScoreEchoHandler) cachedReport(c echo.Context, endpoint, key string) (models.ScoreReport, bool) {
	if h.cache == nil {
		return models.ScoreReport{}, false
	}
	rep, err := icache.GetJSON[models.ScoreReport](c.Request().Context(), h.cache, key)
	switch {
	case err == nil:
		metrics.APICacheHits.WithLabelValues(endpoint).Inc()
		h.logger.Debug(endpoint+" cache_hit", xlogger.String("key", key))
		c.Response().Header().Set(headerCache, "HIT")
		return rep, true
	case errors.Is(err, icache.ErrMiss):
		h.logger.Debug(endpoint+" cache_miss", xlogger.String("key", key))
	default:
		h.logger.Warn(endpoint+" cache_get_error", xlogger.Error(err))
	}
	c.Response().Header().Set(headerCache, "MISS")
	return models.ScoreReport{}, false
}

func (h *ScoreEchoHandler) storeReport(c echo.Context, endpoint, key string, rep models.ScoreReport) {
	if h.cache == nil || rep.Band == models.BandError {
		return
	}
	if err := icache.SetJSON(c.Request().Context(), h.cache, key, rep, h.cacheTTL); err != nil {
		h.logger.Warn(endpoint+" cache_set_error", xlogger.Error(err))
	}
}

// Score handles POST /api/score.
func (h *ScoreEchoHandler) Score(c echo.Context) error {
	const endpoint = "score"
	defer track(endpoint)()

	req := &models.ScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return h.fail(c, endpoint, xhttp.BadRequestError("request is not encodable").WithError(err))
	}
	key := icache.Key(endpoint+":"+h.engine.Mode(), payload)
	if rep, ok := h.cachedReport(c, endpoint, key); ok {
		return xhttp.SuccessResponse(c, rep)
	}

	rep := h.engine.Score(h.engine.InputFromRequest(*req))
	h.storeReport(c, endpoint, key, rep)
	return xhttp.SuccessResponse(c, rep)
}

// ScoreBatch handles POST /api/score/batch. Reports keep request order.
func (h *ScoreEchoHandler) ScoreBatch(c echo.Context) error {
	const endpoint = "score_batch"
	defer track(endpoint)()

	req := &models.BatchScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	reps, err := h.batch.ScoreRequests(c.Request().Context(), req.Items)
	if err != nil {
		return h.fail(c, endpoint, xhttp.ServiceUnavailableError("batch scoring did not complete").WithError(err))
	}
	return xhttp.SuccessResponse(c, reps)
}

// ScoreSymbol handles GET /api/score/:symbol from stored prices.
func (h *ScoreEchoHandler) ScoreSymbol(c echo.Context) error {
	const endpoint = "score_symbol"
	defer track(endpoint)()

	if h.symbols == nil {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("price store is not configured"))
	}
	req := &models.SymbolScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	var asOf time.Time
	if req.AsOf != "" {
		t, ok := xutil.ParseTime(req.AsOf)
		if !ok {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("invalid as_of %q", req.AsOf))
		}
		asOf = xutil.TruncateDay(t)
	}

	key := fmt.Sprintf("%s:%s:%s:%d:%s", endpoint, h.engine.Mode(), req.Symbol, req.N, asOf.Format(xutil.DateLayout))
	// without as_of the latest bar can change, so only pinned dates are cached
	pinned := !asOf.IsZero()
	if pinned {
		if rep, ok := h.cachedReport(c, endpoint, key); ok {
			return xhttp.SuccessResponse(c, rep)
		}
	}

	rep, err := h.symbols.Score(c.Request().Context(), usecase.ScoreSymbolParams{
		Symbol: req.Symbol,
		N:      req.N,
		AsOf:   asOf,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrNoCandles) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no candles for %s", req.Symbol))
		}
		return h.fail(c, endpoint, err)
	}
	if pinned {
		h.storeReport(c, endpoint, key, *rep)
	}
	return xhttp.SuccessResponse(c, rep)
}

// Candles handles GET /api/candles/:symbol.
func (h *ScoreEchoHandler) Candles(c echo.Context) error {
	const endpoint = "candles"
	defer track(endpoint)()

	if h.candles == nil {
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("price store is not configured"))
	}
	req := &models.CandlesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	to := time.Now().UTC()
	if req.To != "" {
		t, ok := xutil.ParseTime(req.To)
		if !ok {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("invalid to %q", req.To))
		}
		to = t
	}
	from := to.AddDate(-1, 0, 0)
	if req.From != "" {
		t, ok := xutil.ParseTime(req.From)
		if !ok {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("invalid from %q", req.From))
		}
		from = t
	}
	from, to = xutil.AlignRange(from, to)

	res, err := h.candles.GetCandles(c.Request().Context(), usecase.GetCandlesParams{
		Symbol: req.Symbol,
		From:   from,
		To:     to,
		Limit:  req.Limit,
	})
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Regime handles POST /api/regime.
func (h *ScoreEchoHandler) Regime(c echo.Context) error {
	const endpoint = "regime"
	defer track(endpoint)()

	req := &models.RegimeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	w, state, err := h.engine.Regime(req.Candles)
	if err != nil {
		metrics.APIErrors.WithLabelValues(endpoint).Inc()
		h.logger.Warn("regime classification failed", xlogger.Error(err), xlogger.Int("candles", len(req.Candles)))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("regime classification failed").
			WithError(err).
			WithParam("reason", err.Error()))
	}
	res := models.RegimeResponse{Mode: h.engine.Mode(), Weights: w}
	if state != nil {
		s := state.Finite()
		res.State = &s
	}
	return xhttp.SuccessResponse(c, res)
}

// Weights handles GET /api/weights.
func (h *ScoreEchoHandler) Weights(c echo.Context) error {
	defer track("weights")()
	return xhttp.SuccessResponse(c, models.WeightsResponse{
		Mode:    h.engine.Mode(),
		Weights: h.engine.BaseWeights(),
	})
}

type healthResponse struct {
	Status string            `json:"status"`
	Mode   string            `json:"mode"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health handles GET /healthz. Any failing check yields 503.
func (h *ScoreEchoHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	res := healthResponse{Status: "ok", Mode: h.engine.Mode()}
	if len(names) > 0 {
		res.Checks = make(map[string]string, len(names))
	}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			h.logger.Warn("health check failed", xlogger.String("check", name), xlogger.Error(err))
			res.Status = "degraded"
			res.Checks[name] = err.Error()
			continue
		}
		res.Checks[name] = "ok"
	}
	if res.Status != "ok" {
		return xhttp.DataResponse(c, http.StatusServiceUnavailable, res)
	}
	return xhttp.SuccessResponse(c, res)
}
