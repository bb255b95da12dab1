package rest_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArgyPorgy/stx-names-indexer/internal/api/middleware"
	"github.com/ArgyPorgy/stx-names-indexer/internal/api/rest"
	"github.com/ArgyPorgy/stx-names-indexer/internal/domain"
	"github.com/ArgyPorgy/stx-names-indexer/internal/logger"
	"github.com/ArgyPorgy/stx-names-indexer/internal/mocks"
	"github.com/ArgyPorgy/stx-names-indexer/internal/store"
	"github.com/ArgyPorgy/stx-names-indexer/internal/store/schema"
)

const testAPIKey = "test-api-key"

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	gin.SetMode(gin.TestMode)

	code := m.Run()
	os.Exit(code)
}

// testHandlerMocks contains all the mocks needed for testing the REST handler
type testHandlerMocks struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	engine    *mocks.MockEngine
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
}

func setupTestRouter(t *testing.T, webhookSecret string) (*gin.Engine, *testHandlerMocks) {
	ctrl := gomock.NewController(t)
	m := &testHandlerMocks{
		ctrl:      ctrl,
		store:     mocks.NewMockStore(ctrl),
		engine:    mocks.NewMockEngine(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}

	handler := rest.NewHandler(m.store, m.engine, m.publisher, m.clock)

	router := gin.New()
	rest.SetupRoutes(router, handler, middleware.AuthConfig{APIKeys: []string{testAPIKey}}, webhookSecret)

	return router, m
}

func tearDownTestRouter(m *testHandlerMocks) {
	m.ctrl.Finish()
}

func performRequest(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	w := performRequest(router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListUsernames(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	records := []*schema.Username{
		{Username: "alice", Owner: "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7", RegisteredAt: 1700000000, TxID: "0xa", BlockHeight: 100},
		{Username: "bobby", Owner: "SP3FGQ8Z7JY9BWYZ5WM53E0M9NK7WHJF0691NZ159", RegisteredAt: 1699990000, TxID: "0xb", BlockHeight: 99},
	}

	m.store.EXPECT().ListUsernames(gomock.Any(), 2, 0).Return(records, nil)
	m.store.EXPECT().CountUsernames(gomock.Any()).Return(int64(12), nil)

	w := performRequest(router, http.MethodGet, "/api/usernames?limit=2", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results []struct {
			Username string `json:"username"`
			Owner    string `json:"owner"`
		} `json:"results"`
		Total  int64 `json:"total"`
		Limit  int   `json:"limit"`
		Offset int   `json:"offset"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 2)
	assert.Equal(t, "alice", resp.Results[0].Username)
	assert.Equal(t, int64(12), resp.Total)
	assert.Equal(t, 2, resp.Limit)
}

func TestListUsernamesCapsPageSize(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	m.store.EXPECT().ListUsernames(gomock.Any(), rest.MAX_PAGE_SIZE, 0).Return(nil, nil)
	m.store.EXPECT().CountUsernames(gomock.Any()).Return(int64(0), nil)

	w := performRequest(router, http.MethodGet, "/api/usernames?limit=5000", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetUsername(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	m.store.EXPECT().GetUsername(gomock.Any(), "alice").Return(&schema.Username{
		Username:     "alice",
		Owner:        "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7",
		RegisteredAt: 1700000000,
		TxID:         "0xa",
		BlockHeight:  100,
	}, nil)

	w := performRequest(router, http.MethodGet, "/api/usernames/alice", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.Contains(t, w.Body.String(), `"registered_at":1700000000`)
}

func TestGetUsernameNotFound(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	m.store.EXPECT().GetUsername(gomock.Any(), "ghost").Return(nil, nil)

	w := performRequest(router, http.MethodGet, "/api/usernames/ghost", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"not_found"`)
}

func TestGetUsernameRejectsInvalidName(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	// Uppercase is outside the registry alphabet; the store is never queried
	w := performRequest(router, http.MethodGet, "/api/usernames/NotAName", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUsernameByOwner(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	owner := "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"
	m.store.EXPECT().GetUsernameByOwner(gomock.Any(), owner).Return(&schema.Username{
		Username: "alice",
		Owner:    owner,
	}, nil)

	w := performRequest(router, http.MethodGet, "/api/usernames/owner/"+owner, "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestGetUsernameByOwnerRejectsInvalidAddress(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	w := performRequest(router, http.MethodGet, "/api/usernames/owner/notanaddress", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRecentEvents(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	m.store.EXPECT().ListRecentEvents(gomock.Any(), 20).Return([]store.RecentEvent{
		{EventType: "transfer", Username: "alice", EventOwner: "SP3FGQ8Z7JY9BWYZ5WM53E0M9NK7WHJF0691NZ159", TxID: "0xb", BlockHeight: 101, Timestamp: 1700000600},
		{EventType: "registration", Username: "alice", EventOwner: "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7", TxID: "0xa", BlockHeight: 100, Timestamp: 1700000000},
	}, nil)

	w := performRequest(router, http.MethodGet, "/api/events/recent", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"event_type":"transfer"`)
}

func TestGetStats(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	m.store.EXPECT().CountUsernames(gomock.Any()).Return(int64(42), nil)

	w := performRequest(router, http.MethodGet, "/api/stats", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_usernames":42}`, w.Body.String())
}

func TestInsertUsernameRequiresAuth(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	body := `{"username":"alice","owner":"SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"}`
	w := performRequest(router, http.MethodPost, "/api/test/insert-username", body, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestInsertUsernameWithAPIKey(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	m.clock.EXPECT().Now().Return(time.Unix(1700000000, 0))
	m.engine.EXPECT().
		Apply(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, event domain.NormalizedEvent) (bool, error) {
			assert.Equal(t, domain.EventKindRegister, event.Kind)
			assert.Equal(t, "alice", event.Username)
			assert.Equal(t, int64(1700000000), event.Timestamp)
			return true, nil
		})

	body := `{"username":"alice","owner":"SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"}`
	w := performRequest(router, http.MethodPost, "/api/test/insert-username", body, map[string]string{
		"Authorization": "ApiKey " + testAPIKey,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func webhookPayload(function, repr string, args ...string) string {
	functionArgs := []map[string]string{{"name": "username", "type": "(string-ascii 30)", "repr": repr}}
	for _, extra := range args {
		functionArgs = append(functionArgs, map[string]string{"name": "new-owner", "type": "principal", "repr": extra})
	}
	argsJSON, _ := json.Marshal(functionArgs)

	return `{
		"apply": [{
			"block_identifier": {"index": 150000, "hash": "0xblock"},
			"timestamp": 1700000000999,
			"transactions": [{
				"transaction_identifier": {"hash": "0xhook"},
				"metadata": {"sender": "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"},
				"operations": [{
					"type": "contract_call",
					"status": "success",
					"contract_call": {
						"contract_identifier": "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7.username-registry",
						"function_name": "` + function + `",
						"function_args": ` + string(argsJSON) + `
					}
				}]
			}]
		}]
	}`
}

func TestHandleWebhookAppliesRegister(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	m.engine.EXPECT().
		Apply(gomock.Any(), domain.NormalizedEvent{
			Kind:        domain.EventKindRegister,
			TxID:        "0xhook",
			BlockHeight: 150000,
			Timestamp:   1700000000,
			Sender:      "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7",
			Username:    "alice",
		}).
		Return(true, nil)
	m.publisher.EXPECT().
		PublishEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, event *domain.AppliedEvent) error {
			assert.Equal(t, "chainhook", event.Source)
			assert.Equal(t, "alice", event.Username)
			return nil
		})

	w := performRequest(router, http.MethodPost, "/api/chainhooks/register-username",
		webhookPayload("register-username", `"alice"`), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"applied":1,"skipped":0}`, w.Body.String())
}

func TestHandleWebhookCountsSkips(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	m.engine.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(false, nil)

	w := performRequest(router, http.MethodPost, "/api/chainhooks/transfer-username",
		webhookPayload("transfer-username", `"alice"`, "'SP3FGQ8Z7JY9BWYZ5WM53E0M9NK7WHJF0691NZ159"), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"applied":0,"skipped":1}`, w.Body.String())
}

func TestHandleWebhookStorageFaultReturns500(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	m.engine.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(false, assert.AnError)

	w := performRequest(router, http.MethodPost, "/api/chainhooks/register-username",
		webhookPayload("register-username", `"alice"`), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHandleWebhookRejectsMalformedBody(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	w := performRequest(router, http.MethodPost, "/api/chainhooks/register-username", "{not json", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleWebhookSharedSecret(t *testing.T) {
	router, m := setupTestRouter(t, "hook-secret")
	defer tearDownTestRouter(m)

	payload := webhookPayload("register-username", `"alice"`)

	// Missing secret is rejected before the body is parsed
	w := performRequest(router, http.MethodPost, "/api/chainhooks/register-username", payload, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct secret passes through to the handler
	m.engine.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(true, nil)
	m.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(nil)

	w = performRequest(router, http.MethodPost, "/api/chainhooks/register-username", payload, map[string]string{
		"Authorization": "Bearer hook-secret",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleWebhookToleratesPublishFailure(t *testing.T) {
	router, m := setupTestRouter(t, "")
	defer tearDownTestRouter(m)

	m.engine.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(true, nil)
	m.publisher.EXPECT().PublishEvent(gomock.Any(), gomock.Any()).Return(assert.AnError)

	w := performRequest(router, http.MethodPost, "/api/chainhooks/release-username",
		webhookPayload("release-username", `"alice"`), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"applied":1,"skipped":0}`, w.Body.String())
}
