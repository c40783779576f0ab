// Package handler exposes the onboarding engine over HTTP.
package handler

import (
	"errors"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/elcukro/home-budget-sub000/internal/auth"
	"github.com/elcukro/home-budget-sub000/internal/engine"
	"github.com/elcukro/home-budget-sub000/internal/merge"
	"github.com/elcukro/home-budget-sub000/internal/metrics"
	"github.com/elcukro/home-budget-sub000/internal/model"
	"github.com/elcukro/home-budget-sub000/internal/telemetry"
)

const (
	routeState   = "/api/onboarding"
	routeActions = "/api/onboarding/actions"
	routeMetrics = "/api/onboarding/metrics"
	routeMerge   = "/api/onboarding/merge"
	routeHealth  = "/healthz"
	routeProm    = "/metrics"
)

type Handler struct {
	engine   *engine.Engine
	verifier *auth.Verifier
	logger   *zap.Logger
	prom     fasthttp.RequestHandler
}

func New(e *engine.Engine, v *auth.Verifier, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{engine: e, verifier: v, logger: logger, prom: telemetry.Handler()}
}

// Serve routes a request and records its duration.
func (h *Handler) Serve(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch path {
	case routeHealth:
		h.only(ctx, fasthttp.MethodGet, h.health)
	case routeProm:
		h.only(ctx, fasthttp.MethodGet, h.prom)
	case routeState:
		h.only(ctx, fasthttp.MethodGet, h.authenticated(h.state))
	case routeActions:
		h.only(ctx, fasthttp.MethodPost, h.authenticated(h.actions))
	case routeMetrics:
		h.only(ctx, fasthttp.MethodPost, h.metrics)
	case routeMerge:
		h.only(ctx, fasthttp.MethodPost, h.merge)
	default:
		path = "unmatched"
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}

	telemetry.ObserveRequest(path, ctx.Response.StatusCode(), time.Since(start))
}

func (h *Handler) only(ctx *fasthttp.RequestCtx, method string, next fasthttp.RequestHandler) {
	if string(ctx.Method()) != method {
		ctx.Response.Header.Set("Allow", method)
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	next(ctx)
}

type identityHandler func(ctx *fasthttp.RequestCtx, id auth.Identity)

func (h *Handler) authenticated(next identityHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		id, err := h.verifier.Authenticate(
			string(ctx.Request.Header.Peek(fasthttp.HeaderAuthorization)),
			string(ctx.Request.Header.Peek(auth.DevUserHeader)),
		)
		if err != nil {
			if !errors.Is(err, auth.ErrMissingUser) {
				h.logger.Debug("rejected token", zap.Error(err))
			}
			writeError(ctx, fasthttp.StatusUnauthorized, "Unauthorized")
			return
		}
		next(ctx, id)
	}
}

func (h *Handler) health(ctx *fasthttp.RequestCtx) {
	writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) state(ctx *fasthttp.RequestCtx, id auth.Identity) {
	writeJSON(ctx, fasthttp.StatusOK, h.engine.State(ctx, id))
}

func (h *Handler) actions(ctx *fasthttp.RequestCtx, id auth.Identity) {
	var req model.ActionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Actions) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "At least one action is required")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, h.engine.Process(ctx, id, &req))
}

// metrics computes the metrics of a posted record without touching any
// session.
func (h *Handler) metrics(ctx *fasthttp.RequestCtx) {
	rec, err := merge.Decode(ctx.PostBody())
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid record: "+err.Error())
		return
	}
	merge.Normalize(&rec)
	m := metrics.Compute(rec)
	writeJSON(ctx, fasthttp.StatusOK, model.MetricsResult{Metrics: m, Display: metrics.Display(m)})
}

func (h *Handler) merge(ctx *fasthttp.RequestCtx) {
	var req model.MergeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	current, err := merge.Decode(req.Current)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid current record: "+err.Error())
		return
	}
	incoming, err := merge.Decode(req.Incoming)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid incoming record: "+err.Error())
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, merge.Merge(current, incoming))
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(model.ErrorResponse{
		Status:  status,
		Message: message,
	})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
