// internal/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"daily-broadcast/internal/api/types"
	"daily-broadcast/internal/domain"
	"daily-broadcast/internal/util"
)

// APIError is a non-2xx answer from the broadcast API.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []util.FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("api: %d %s (%s)", e.StatusCode, e.Message, strings.Join(parts, "; "))
}

// Unwrap maps status codes back onto the shared sentinel errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return util.ErrInvalidInput
	case http.StatusNotFound:
		return util.ErrNotFound
	}
	return nil
}

// Client calls the broadcast HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API rooted at baseURL. A nil httpClient uses
// a client with a 10s timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// SetBroadcastRequest is the body of a broadcast write.
type SetBroadcastRequest struct {
	VideoURL      string           `json:"videoUrl"`
	BroadcastTime string           `json:"broadcastTime"`
	VideoTitle    string           `json:"videoTitle"`
	AdPayment     *decimal.Decimal `json:"adPayment,omitempty"`
}

// RecordViewRequest is the body of an ad view write.
type RecordViewRequest struct {
	BroadcastID   int64           `json:"broadcastId"`
	WalletAddress string          `json:"walletAddress"`
	RewardAmount  decimal.Decimal `json:"rewardAmount"`
	Claimed       *bool           `json:"claimed,omitempty"`
}

// TodayBroadcast returns today's broadcast, or nil when none is scheduled.
func (c *Client) TodayBroadcast(ctx context.Context) (*domain.Broadcast, error) {
	var b *domain.Broadcast
	if err := c.do(ctx, http.MethodGet, "/api/broadcast/today", nil, &b); err != nil {
		return nil, err
	}
	return b, nil
}

// BroadcastForDate returns the broadcast of date (YYYY-MM-DD).
func (c *Client) BroadcastForDate(ctx context.Context, date string) (*domain.Broadcast, error) {
	var b domain.Broadcast
	if err := c.do(ctx, http.MethodGet, "/api/broadcast/"+url.PathEscape(date), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// SetBroadcast creates or replaces today's broadcast.
func (c *Client) SetBroadcast(ctx context.Context, req SetBroadcastRequest) (*domain.Broadcast, error) {
	var b domain.Broadcast
	if err := c.do(ctx, http.MethodPost, "/api/broadcast", req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// TodayRevenue returns the revenue split of today's broadcast over viewers,
// or nil when none is scheduled.
func (c *Client) TodayRevenue(ctx context.Context, viewers int64) (*domain.RevenueSplit, error) {
	var split *domain.RevenueSplit
	path := "/api/broadcast/today/revenue?viewers=" + strconv.FormatInt(viewers, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, &split); err != nil {
		return nil, err
	}
	return split, nil
}

// ConnectWallet registers walletAddress, or returns the existing record.
func (c *Client) ConnectWallet(ctx context.Context, walletAddress, userID string) (*domain.UserWallet, error) {
	var w domain.UserWallet
	body := map[string]string{"walletAddress": walletAddress, "userId": userID}
	if err := c.do(ctx, http.MethodPost, "/api/wallet/connect", body, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// Wallet returns the registered wallet.
func (c *Client) Wallet(ctx context.Context, walletAddress string) (*domain.UserWallet, error) {
	var w domain.UserWallet
	if err := c.do(ctx, http.MethodGet, "/api/wallet/"+url.PathEscape(walletAddress), nil, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// RecordView records or overwrites an ad view.
func (c *Client) RecordView(ctx context.Context, req RecordViewRequest) (*domain.AdView, error) {
	var v domain.AdView
	if err := c.do(ctx, http.MethodPost, "/api/ad/view", req, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ClaimView marks an ad view claimed.
func (c *Client) ClaimView(ctx context.Context, broadcastID int64, walletAddress string) (*domain.AdView, error) {
	var v domain.AdView
	body := map[string]any{"broadcastId": broadcastID, "walletAddress": walletAddress}
	if err := c.do(ctx, http.MethodPost, "/api/ad/claim", body, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// WalletViews lists the ad views of a wallet.
func (c *Client) WalletViews(ctx context.Context, walletAddress string) ([]domain.AdView, error) {
	var views []domain.AdView
	if err := c.do(ctx, http.MethodGet, "/api/user/"+url.PathEscape(walletAddress)+"/views", nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

// BroadcastViews lists the ad views of a broadcast.
func (c *Client) BroadcastViews(ctx context.Context, broadcastID int64) ([]domain.AdView, error) {
	var views []domain.AdView
	path := "/api/broadcast/" + strconv.FormatInt(broadcastID, 10) + "/views"
	if err := c.do(ctx, http.MethodGet, path, nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		var errResp types.ErrorResponse
		if err := json.NewDecoder(res.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			apiErr.Message = errResp.Message
			apiErr.Fields = errResp.Errors
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
