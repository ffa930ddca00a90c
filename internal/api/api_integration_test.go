// internal/api/api_integration_test.go
package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "daily-broadcast/internal"
	"daily-broadcast/internal/api/types"
	"daily-broadcast/internal/clock"
	"daily-broadcast/internal/domain"
)

// testApp is the global application instance for testing.
var testApp *app.Application

// testServer is the httptest server.
var testServer *httptest.Server

// testClock pins "now" for every request.
var testClock = clock.NewFake(time.Date(2026, 10, 16, 14, 59, 59, 0, time.UTC))

// TestMain is the special entry point for Go tests, executed once before all tests.
func TestMain(m *testing.M) {
	// 1. Run against the in-memory store with a fixed calendar.
	os.Setenv("STORE_DRIVER", "memory")
	os.Setenv("TIMEZONE", "UTC")
	os.Setenv("LOG_LEVEL", "error")

	// 2. Initialize the application.
	testApp = app.NewApplication()
	testApp.Clock = testClock
	if err := testApp.Initialize(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize test application: %v\n", err)
		os.Exit(1)
	}

	// 3. Start an httptest server to test the HTTP handling layer.
	testServer = httptest.NewServer(testApp.HTTPHandler)

	// 4. Run all tests.
	code := m.Run()

	testServer.Close()
	if err := testApp.Shutdown(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown test application: %v\n", err)
		os.Exit(1)
	}

	os.Exit(code)
}

// resetStore clears all records so each test starts from an empty store.
func resetStore(t *testing.T) {
	t.Helper()
	require.NotNil(t, testApp.Store)
	testApp.Store.Reset()
}

// makeRequest helper function: sends an HTTP request to the test server.
func makeRequest(t *testing.T, method, path string, body string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, testServer.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(respBody)
}

func decodeInto(t *testing.T, body string, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), dst), body)
}

func setTodayBroadcast(t *testing.T, body string) domain.Broadcast {
	t.Helper()
	resp, respBody := makeRequest(t, http.MethodPost, "/api/broadcast", body)
	require.Equal(t, http.StatusOK, resp.StatusCode, respBody)
	var b domain.Broadcast
	decodeInto(t, respBody, &b)
	return b
}

func TestHealth(t *testing.T) {
	resp, body := makeRequest(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
}

// TestBroadcastIntegration covers GET /api/broadcast/today and POST /api/broadcast.
func TestBroadcastIntegration(t *testing.T) {
	resetStore(t)

	t.Run("NothingScheduled", func(t *testing.T) {
		resp, body := makeRequest(t, http.MethodGet, "/api/broadcast/today", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "null", body)
	})

	t.Run("SetAndReadBack", func(t *testing.T) {
		b := setTodayBroadcast(t, `{"videoUrl":"https://example.com/daily.mp4","broadcastTime":"15:00","videoTitle":"Launch"}`)
		assert.Equal(t, "2026-10-16", b.Date)
		assert.NotZero(t, b.ID)
		assert.True(t, decimal.NewFromInt(1000).Equal(b.AdPayment))

		resp, body := makeRequest(t, http.MethodGet, "/api/broadcast/today", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `"adPayment":"1000"`)
		assert.Contains(t, body, `"videoUrl":"https://example.com/daily.mp4"`)

		var got domain.Broadcast
		decodeInto(t, body, &got)
		assert.Equal(t, b.ID, got.ID)
		assert.Equal(t, "Launch", got.VideoTitle)
	})

	t.Run("ReplaceAcceptsNumericOrStringPayment", func(t *testing.T) {
		b := setTodayBroadcast(t, `{"videoUrl":"https://example.com/other.mp4","broadcastTime":"18:45","videoTitle":"Replaced","adPayment":250}`)
		assert.Equal(t, "250", b.AdPayment.String())

		b = setTodayBroadcast(t, `{"videoUrl":"https://example.com/other.mp4","broadcastTime":"18:45","videoTitle":"Replaced","adPayment":"99.95"}`)
		assert.Equal(t, "99.95", b.AdPayment.String())

		resp, body := makeRequest(t, http.MethodGet, "/api/broadcast/2026-10-16", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got domain.Broadcast
		decodeInto(t, body, &got)
		assert.Equal(t, "Replaced", got.VideoTitle)
		assert.Equal(t, "18:45", got.BroadcastTime)
	})

	t.Run("ValidationFailureKeepsRecord", func(t *testing.T) {
		resp, body := makeRequest(t, http.MethodPost, "/api/broadcast", `{"videoUrl":"not-a-url","broadcastTime":"7pm","videoTitle":"","adPayment":"-5"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var errResp types.ErrorResponse
		decodeInto(t, body, &errResp)
		assert.Equal(t, "Invalid data", errResp.Message)
		fields := make([]string, 0, len(errResp.Errors))
		for _, f := range errResp.Errors {
			fields = append(fields, f.Field)
		}
		assert.ElementsMatch(t, []string{"videoUrl", "broadcastTime", "videoTitle", "adPayment"}, fields)

		_, body = makeRequest(t, http.MethodGet, "/api/broadcast/today", "")
		assert.Contains(t, body, `"videoTitle":"Replaced"`)
	})

	t.Run("UnreadablePaymentNamesField", func(t *testing.T) {
		for _, payment := range []string{`""`, `"abc"`} {
			resp, body := makeRequest(t, http.MethodPost, "/api/broadcast",
				`{"videoUrl":"https://example.com/x.mp4","broadcastTime":"15:00","videoTitle":"X","adPayment":`+payment+`}`)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, body)

			var errResp types.ErrorResponse
			decodeInto(t, body, &errResp)
			require.Len(t, errResp.Errors, 1, body)
			assert.Equal(t, "adPayment", errResp.Errors[0].Field)
			assert.Equal(t, "must be a positive number", errResp.Errors[0].Message)
		}

		resp, body := makeRequest(t, http.MethodPost, "/api/broadcast", `{"videoUrl":"","broadcastTime":"15:00","videoTitle":"X","adPayment":"abc"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var errResp types.ErrorResponse
		decodeInto(t, body, &errResp)
		fields := make([]string, 0, len(errResp.Errors))
		for _, f := range errResp.Errors {
			fields = append(fields, f.Field)
		}
		assert.Equal(t, []string{"videoUrl", "adPayment"}, fields)

		resp, body = makeRequest(t, http.MethodPost, "/api/broadcast", `{"videoUrl":42,"broadcastTime":"15:00","videoTitle":"X"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		decodeInto(t, body, &errResp)
		require.Len(t, errResp.Errors, 1)
		assert.Equal(t, "videoUrl", errResp.Errors[0].Field)

		// Nothing was replaced.
		_, body = makeRequest(t, http.MethodGet, "/api/broadcast/today", "")
		assert.Contains(t, body, `"videoTitle":"Replaced"`)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		resp, _ := makeRequest(t, http.MethodPost, "/api/broadcast", `{"videoUrl":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, _ = makeRequest(t, http.MethodPost, "/api/broadcast", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UnknownDate", func(t *testing.T) {
		resp, _ := makeRequest(t, http.MethodGet, "/api/broadcast/2026-10-17", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, _ = makeRequest(t, http.MethodGet, "/api/broadcast/tomorrow", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestRevenueIntegration(t *testing.T) {
	resetStore(t)

	resp, body := makeRequest(t, http.MethodGet, "/api/broadcast/today/revenue?viewers=10", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", body)

	setTodayBroadcast(t, `{"videoUrl":"https://example.com/daily.mp4","broadcastTime":"15:00","videoTitle":"Launch"}`)

	resp, body = makeRequest(t, http.MethodGet, "/api/broadcast/today/revenue?viewers=10", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var split domain.RevenueSplit
	decodeInto(t, body, &split)
	assert.Equal(t, "750", split.UserRewards.String())
	assert.Equal(t, "150", split.PlatformFee.String())
	assert.Equal(t, "100", split.OperatingCosts.String())
	assert.Equal(t, "75", split.PerViewer.String())

	resp, _ = makeRequest(t, http.MethodGet, "/api/broadcast/today/revenue?viewers=-3", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestWalletIntegration covers wallet connect and lookup.
func TestWalletIntegration(t *testing.T) {
	resetStore(t)

	resp, body := makeRequest(t, http.MethodPost, "/api/wallet/connect", `{"walletAddress":"0xAbC","userId":"session-1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	var first domain.UserWallet
	decodeInto(t, body, &first)
	assert.Equal(t, "session-1", first.UserID)
	assert.Equal(t, "0", first.TotalEarned.String())

	testClock.Advance(time.Minute)
	defer testClock.Advance(-time.Minute)

	resp, body = makeRequest(t, http.MethodPost, "/api/wallet/connect", `{"walletAddress":"0xAbC","userId":"session-2"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var second domain.UserWallet
	decodeInto(t, body, &second)
	assert.Equal(t, "session-1", second.UserID)
	assert.True(t, first.ConnectedAt.Equal(second.ConnectedAt))

	resp, body = makeRequest(t, http.MethodGet, "/api/wallet/0xAbC", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"walletAddress":"0xAbC"`)

	resp, body = makeRequest(t, http.MethodGet, "/api/wallet/0xunknown", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Wallet not found")

	resp, _ = makeRequest(t, http.MethodPost, "/api/wallet/connect", `{"walletAddress":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestAdViewIntegration covers recording, listing and claiming ad views.
func TestAdViewIntegration(t *testing.T) {
	resetStore(t)
	b := setTodayBroadcast(t, `{"videoUrl":"https://example.com/daily.mp4","broadcastTime":"15:00","videoTitle":"Launch"}`)

	resp, body := makeRequest(t, http.MethodPost, "/api/wallet/connect", `{"walletAddress":"0xabc","userId":"s1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	viewBody := fmt.Sprintf(`{"broadcastId":%d,"walletAddress":"0xabc","rewardAmount":"7.5"}`, b.ID)
	resp, body = makeRequest(t, http.MethodPost, "/api/ad/view", viewBody)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	var view domain.AdView
	decodeInto(t, body, &view)
	assert.False(t, view.Claimed)
	assert.Equal(t, "7.5", view.RewardAmount.String())

	// Same key, string-encoded id and claimed flag: overwrite.
	viewBody = fmt.Sprintf(`{"broadcastId":"%d","walletAddress":"0xabc","rewardAmount":8,"claimed":"false"}`, b.ID)
	resp, body = makeRequest(t, http.MethodPost, "/api/ad/view", viewBody)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, body = makeRequest(t, http.MethodGet, "/api/user/0xabc/views", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var views []domain.AdView
	decodeInto(t, body, &views)
	require.Len(t, views, 1)
	assert.Equal(t, "8", views[0].RewardAmount.String())

	resp, body = makeRequest(t, http.MethodGet, fmt.Sprintf("/api/broadcast/%d/views", b.ID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeInto(t, body, &views)
	assert.Len(t, views, 1)

	claimBody := fmt.Sprintf(`{"broadcastId":%d,"walletAddress":"0xabc"}`, b.ID)
	resp, body = makeRequest(t, http.MethodPost, "/api/ad/claim", claimBody)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	decodeInto(t, body, &view)
	assert.True(t, view.Claimed)

	resp, body = makeRequest(t, http.MethodGet, "/api/wallet/0xabc", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var wallet domain.UserWallet
	decodeInto(t, body, &wallet)
	assert.Equal(t, "8", wallet.TotalEarned.String())

	t.Run("Errors", func(t *testing.T) {
		resp, _ := makeRequest(t, http.MethodPost, "/api/ad/claim", `{"broadcastId":999,"walletAddress":"0xabc"}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, _ = makeRequest(t, http.MethodPost, "/api/ad/view", `{"broadcastId":1,"walletAddress":"0xabc"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, body := makeRequest(t, http.MethodPost, "/api/ad/view", `{"broadcastId":"x1","walletAddress":"0xabc","rewardAmount":"lots","claimed":"maybe"}`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var errResp types.ErrorResponse
		decodeInto(t, body, &errResp)
		fields := make([]string, 0, len(errResp.Errors))
		for _, f := range errResp.Errors {
			fields = append(fields, f.Field)
		}
		assert.Equal(t, []string{"broadcastId", "claimed", "rewardAmount"}, fields)

		resp, _ = makeRequest(t, http.MethodGet, "/api/broadcast/abc/views", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, body = makeRequest(t, http.MethodGet, "/api/user/0xnobody/views", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "[]", body)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	resp, body := makeRequest(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "broadcast_writes_total")
}
