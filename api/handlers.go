/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes payment calculation and schedule management via REST API.
  Handles HTTP request/response and JSON serialization, and delegates to
  the payroll package.

ENDPOINTS:
  Payments:
    POST   /api/payments               Compute a payment from a raw input string

  Schedules:
    GET    /api/schedules              List schedules
    GET    /api/schedules/{name}       Get one schedule
    PUT    /api/schedules/{name}       Create or replace a schedule
    DELETE /api/schedules/{name}       Delete a schedule

ERROR HANDLING:
  Errors are returned as JSON with an HTTP status chosen by error kind:
  - 400: Malformed input string, invalid schedule definition
  - 404: Schedule not found
  - 422: Schedule has no rates for a worked day
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
)

const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store           payroll.ScheduleStore
	Factory         *factory.ScheduleFactory
	Calculator      *payroll.Calculator
	Metrics         *Metrics
	Logger          zerolog.Logger
	DefaultSchedule string

	validate *validator.Validate
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(store payroll.ScheduleStore, logger zerolog.Logger) *Handler {
	return &Handler{
		Store:           store,
		Factory:         factory.NewScheduleFactory(),
		Calculator:      payroll.NewCalculator(store, payroll.NewTextParser()),
		Metrics:         NewMetrics(),
		Logger:          logger,
		DefaultSchedule: factory.DefaultScheduleName,
		validate:        validator.New(),
	}
}

// =============================================================================
// PAYMENT HANDLERS
// =============================================================================

// CalculatePayment computes a payment.
// POST /api/payments
func (h *Handler) CalculatePayment(w http.ResponseWriter, r *http.Request) {
	var req CalculatePaymentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Schedule == "" {
		req.Schedule = h.DefaultSchedule
	}

	log := h.Logger.With().Str("request_id", middleware.GetReqID(r.Context())).Str("schedule", req.Schedule).Logger()

	payment, err := h.Calculator.Calculate(r.Context(), req.Schedule, req.Input)
	if err != nil {
		h.Metrics.observeError(err)
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Msg("payment calculation failed")
		} else {
			log.Warn().Err(err).Msg("payment calculation rejected")
		}
		writeError(w, status, "Failed to calculate payment", err)
		return
	}

	h.Metrics.observePayment(payment)
	id := uuid.NewString()
	log.Debug().
		Str("payment_id", id).
		Str("employee", payment.Employee).
		Str("total", payment.Total.String()).
		Int("lines", len(payment.Lines)).
		Msg("payment computed")

	writeJSON(w, http.StatusOK, toPaymentDTO(id, payment))
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// ListSchedules returns all schedules.
// GET /api/schedules
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.Store.ListSchedules(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list schedules", err)
		return
	}

	dtos := make([]ScheduleDTO, 0, len(schedules))
	for _, s := range schedules {
		dtos = append(dtos, toScheduleDTO(h.Factory, s))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSchedule returns one schedule.
// GET /api/schedules/{name}
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	schedule, err := h.Store.GetSchedule(r.Context(), name)
	if err != nil {
		writeError(w, statusFor(err), "Failed to get schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(h.Factory, schedule))
}

// PutSchedule creates or replaces a schedule from a ScheduleJSON body.
// PUT /api/schedules/{name}
func (h *Handler) PutSchedule(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body", err)
		return
	}

	schedule, err := h.Factory.ParseSchedule(name, body)
	if err != nil {
		writeError(w, statusFor(err), "Invalid schedule", err)
		return
	}

	if err := h.Store.SaveSchedule(r.Context(), schedule); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save schedule", err)
		return
	}

	h.Logger.Info().Str("schedule", name).Msg("schedule saved")
	writeJSON(w, http.StatusOK, toScheduleDTO(h.Factory, schedule))
}

// DeleteSchedule removes a schedule.
// DELETE /api/schedules/{name}
func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.Store.DeleteSchedule(r.Context(), name); err != nil {
		writeError(w, statusFor(err), "Failed to delete schedule", err)
		return
	}

	h.Logger.Info().Str("schedule", name).Msg("schedule deleted")
	w.WriteHeader(http.StatusNoContent)
}

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

// statusFor maps a payroll error to an HTTP status.
func statusFor(err error) int {
	switch {
	case payroll.IsClientError(err):
		return http.StatusBadRequest
	case payroll.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, payroll.ErrScheduleLookup):
		return http.StatusUnprocessableEntity
	case errors.Is(err, payroll.ErrInvalidSchedule), errors.Is(err, payroll.ErrInvalidRateBand):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
