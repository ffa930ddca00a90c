// internal/api/handler/broadcast.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"daily-broadcast/internal/service"
	"daily-broadcast/internal/util"
)

// BroadcastHandler handles HTTP requests related to the daily broadcast.
type BroadcastHandler struct {
	responder
	service service.BroadcastService
}

// NewBroadcastHandler creates a new BroadcastHandler.
func NewBroadcastHandler(svc service.BroadcastService, logger *slog.Logger) *BroadcastHandler {
	return &BroadcastHandler{
		responder: responder{logger: logger},
		service:   svc,
	}
}

// SetBroadcastRequest represents the request body for setting today's broadcast.
type SetBroadcastRequest struct {
	VideoURL      string          `json:"videoUrl"`
	BroadcastTime string          `json:"broadcastTime"`
	VideoTitle    string          `json:"videoTitle"`
	AdPayment     json.RawMessage `json:"adPayment"`
}

// GetToday handles the get today's broadcast request. It responds with null
// when nothing is scheduled.
// GET /api/broadcast/today
func (h *BroadcastHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	broadcast, err := h.service.GetCurrentBroadcast(r.Context())
	if err != nil {
		if util.IsError(err, util.ErrBroadcastNotFound) {
			h.respondWithJSON(w, http.StatusOK, nil)
			return
		}
		h.respondWithError(w, r, err, "Failed to get broadcast")
		return
	}
	h.respondWithJSON(w, http.StatusOK, broadcast)
}

// SetToday handles the create/replace today's broadcast request.
// POST /api/broadcast
func (h *BroadcastHandler) SetToday(w http.ResponseWriter, r *http.Request) {
	var req SetBroadcastRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondWithError(w, r, err, "Failed to set broadcast")
		return
	}

	date := h.service.Today()
	input := service.BroadcastInput{
		VideoURL:      req.VideoURL,
		BroadcastTime: req.BroadcastTime,
		VideoTitle:    req.VideoTitle,
	}

	paymentErr := &util.ValidationError{}
	input.AdPayment = decimalField(paymentErr, "adPayment", req.AdPayment, "must be a positive number")
	if paymentErr.HasErrors() {
		// Report the unreadable payment together with the other offending fields.
		ve := &util.ValidationError{}
		if other, ok := util.AsValidationError(service.ValidateBroadcast(date, input)); ok {
			ve.Fields = append(ve.Fields, other.Fields...)
		}
		ve.Fields = append(ve.Fields, paymentErr.Fields...)
		h.respondWithError(w, r, ve, "Failed to set broadcast")
		return
	}

	broadcast, err := h.service.SetBroadcast(r.Context(), date, input)
	if err != nil {
		h.respondWithError(w, r, err, "Failed to set broadcast")
		return
	}

	h.logger.Info("Broadcast scheduled", "date", broadcast.Date, "id", broadcast.ID, "time", broadcast.BroadcastTime)
	h.respondWithJSON(w, http.StatusOK, broadcast)
}

// GetByDate handles the get broadcast for a date request.
// GET /api/broadcast/{date}
func (h *BroadcastHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	broadcast, err := h.service.GetBroadcastForDate(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		h.respondWithError(w, r, err, "Failed to get broadcast")
		return
	}
	h.respondWithJSON(w, http.StatusOK, broadcast)
}

// GetTodayRevenue handles the revenue split request for today's broadcast.
// GET /api/broadcast/today/revenue?viewers=N
func (h *BroadcastHandler) GetTodayRevenue(w http.ResponseWriter, r *http.Request) {
	var viewers int64
	if raw := r.URL.Query().Get("viewers"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			ve := &util.ValidationError{}
			ve.Add("viewers", "must be a non-negative integer")
			h.respondWithError(w, r, ve, "Failed to compute revenue split")
			return
		}
		viewers = v
	}

	split, err := h.service.GetRevenueSplit(r.Context(), viewers)
	if err != nil {
		if util.IsError(err, util.ErrBroadcastNotFound) {
			h.respondWithJSON(w, http.StatusOK, nil)
			return
		}
		h.respondWithError(w, r, err, "Failed to compute revenue split")
		return
	}
	h.respondWithJSON(w, http.StatusOK, split)
}
