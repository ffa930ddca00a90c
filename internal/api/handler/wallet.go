// internal/api/handler/wallet.go
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

// WalletHandler handles HTTP requests related to wallets and ad views.
type WalletHandler struct {
	responder
	service service.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc service.WalletService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		responder: responder{logger: logger},
		service:   svc,
	}
}

// ConnectWalletRequest represents the request body for wallet connect.
type ConnectWalletRequest struct {
	WalletAddress string `json:"walletAddress"`
	UserID        string `json:"userId"`
}

// RecordViewRequest represents the request body for recording an ad view.
type RecordViewRequest struct {
	BroadcastID   json.RawMessage `json:"broadcastId"`
	WalletAddress string          `json:"walletAddress"`
	RewardAmount  json.RawMessage `json:"rewardAmount"`
	Claimed       json.RawMessage `json:"claimed"`
}

// ClaimViewRequest represents the request body for claiming an ad view reward.
type ClaimViewRequest struct {
	BroadcastID   json.RawMessage `json:"broadcastId"`
	WalletAddress string          `json:"walletAddress"`
}

// Connect handles the wallet connect request.
// POST /api/wallet/connect
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req ConnectWalletRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondWithError(w, r, err, "Failed to connect wallet")
		return
	}

	wallet, err := h.service.RegisterWallet(r.Context(), req.WalletAddress, req.UserID)
	if err != nil {
		h.respondWithError(w, r, err, "Failed to connect wallet")
		return
	}
	h.respondWithJSON(w, http.StatusOK, wallet)
}

// GetWallet handles the get wallet request.
// GET /api/wallet/{address}
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.service.GetWallet(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		h.respondWithError(w, r, err, "Failed to get wallet")
		return
	}
	h.respondWithJSON(w, http.StatusOK, wallet)
}

// RecordView handles the ad view recorded request.
// POST /api/ad/view
func (h *WalletHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	var req RecordViewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondWithError(w, r, err, "Failed to record ad view")
		return
	}
	ve := &util.ValidationError{}
	input := service.ViewInput{
		BroadcastID:   int64Field(ve, "broadcastId", req.BroadcastID),
		WalletAddress: req.WalletAddress,
		Claimed:       boolField(ve, "claimed", req.Claimed),
	}
	if isAbsent(req.RewardAmount) {
		ve.Add("rewardAmount", "is required")
	} else if reward := decimalField(ve, "rewardAmount", req.RewardAmount, "must be a non-negative number"); reward != nil {
		input.RewardAmount = *reward
	}
	if ve.HasErrors() {
		h.respondWithError(w, r, ve, "Failed to record ad view")
		return
	}

	view, err := h.service.RecordView(r.Context(), input)
	if err != nil {
		h.respondWithError(w, r, err, "Failed to record ad view")
		return
	}
	h.respondWithJSON(w, http.StatusOK, view)
}

// ClaimView handles the claim reward request.
// POST /api/ad/claim
func (h *WalletHandler) ClaimView(w http.ResponseWriter, r *http.Request) {
	var req ClaimViewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondWithError(w, r, err, "Failed to claim reward")
		return
	}

	ve := &util.ValidationError{}
	broadcastID := int64Field(ve, "broadcastId", req.BroadcastID)
	if ve.HasErrors() {
		h.respondWithError(w, r, ve, "Failed to claim reward")
		return
	}

	view, err := h.service.ClaimView(r.Context(), broadcastID, req.WalletAddress)
	if err != nil {
		h.respondWithError(w, r, err, "Failed to claim reward")
		return
	}
	h.respondWithJSON(w, http.StatusOK, view)
}

// GetUserViews handles the get views of a wallet request.
// GET /api/user/{walletAddress}/views
func (h *WalletHandler) GetUserViews(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.GetViewsForWallet(r.Context(), chi.URLParam(r, "walletAddress"))
	if err != nil {
		h.respondWithError(w, r, err, "Failed to get ad views")
		return
	}
	h.respondWithJSON(w, http.StatusOK, views)
}

// GetBroadcastViews handles the get views of a broadcast request.
// GET /api/broadcast/{broadcastID}/views
func (h *WalletHandler) GetBroadcastViews(w http.ResponseWriter, r *http.Request) {
	broadcastID, err := strconv.ParseInt(chi.URLParam(r, "broadcastID"), 10, 64)
	if err != nil {
		ve := &util.ValidationError{}
		ve.Add("broadcastId", "must be an integer")
		h.respondWithError(w, r, ve, "Failed to get ad views")
		return
	}

	views, err := h.service.GetViewsForBroadcast(r.Context(), broadcastID)
	if err != nil {
		h.respondWithError(w, r, err, "Failed to get ad views")
		return
	}
	h.respondWithJSON(w, http.StatusOK, views)
}
