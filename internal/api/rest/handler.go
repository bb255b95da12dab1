package rest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ArgyPorgy/stx-names-indexer/internal/adapter"
	"github.com/ArgyPorgy/stx-names-indexer/internal/api/rest/dto"
	"github.com/ArgyPorgy/stx-names-indexer/internal/chainhook"
	"github.com/ArgyPorgy/stx-names-indexer/internal/domain"
	"github.com/ArgyPorgy/stx-names-indexer/internal/logger"
	"github.com/ArgyPorgy/stx-names-indexer/internal/messaging"
	"github.com/ArgyPorgy/stx-names-indexer/internal/reconcile"
	"github.com/ArgyPorgy/stx-names-indexer/internal/store"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ListUsernames retrieves active username records with pagination
	// GET /api/usernames?limit=<limit>&offset=<offset>
	ListUsernames(c *gin.Context)

	// GetUsername retrieves a single active record by username
	// GET /api/usernames/:username
	GetUsername(c *gin.Context)

	// GetUsernameByOwner retrieves the active record held by an owner address
	// GET /api/usernames/owner/:owner
	GetUsernameByOwner(c *gin.Context)

	// ListRecentEvents retrieves the combined activity feed, newest first
	// GET /api/events/recent?limit=<limit>
	ListRecentEvents(c *gin.Context)

	// GetStats returns registry summary counts
	// GET /api/stats
	GetStats(c *gin.Context)

	// InsertUsername inserts a record directly, bypassing the chain (debug tooling)
	// POST /api/test/insert-username
	InsertUsername(c *gin.Context)

	// HandleWebhook ingests a chainhook delivery for any registry function
	// POST /api/chainhooks/register-username
	// POST /api/chainhooks/transfer-username
	// POST /api/chainhooks/release-username
	HandleWebhook(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store     store.Store
	engine    reconcile.Engine
	publisher messaging.Publisher
	clock     adapter.Clock
}

// NewHandler creates a new REST API handler. The publisher may be nil when no
// broker is configured.
func NewHandler(st store.Store, engine reconcile.Engine, publisher messaging.Publisher, clock adapter.Clock) Handler {
	return &handler{
		store:     st,
		engine:    engine,
		publisher: publisher,
		clock:     clock,
	}
}

// ListUsernames retrieves active records with pagination
func (h *handler) ListUsernames(c *gin.Context) {
	params, err := ParseListUsernamesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	records, err := h.store.ListUsernames(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondInternalError(c, err, "Failed to list usernames")
		return
	}

	total, err := h.store.CountUsernames(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to count usernames")
		return
	}

	results := make([]*dto.Username, 0, len(records))
	for _, record := range records {
		results = append(results, dto.UsernameFromSchema(record))
	}

	c.JSON(http.StatusOK, dto.UsernameList{
		Results: results,
		Total:   total,
		Limit:   params.Limit,
		Offset:  params.Offset,
	})
}

// GetUsername retrieves a single active record by username
func (h *handler) GetUsername(c *gin.Context) {
	username := c.Param("username")
	if !domain.ValidUsername(username) {
		respondBadRequest(c, "Invalid username")
		return
	}

	record, err := h.store.GetUsername(c.Request.Context(), username)
	if err != nil {
		respondInternalError(c, err, "Failed to get username")
		return
	}

	if record == nil {
		respondNotFound(c, "Username not found")
		return
	}

	c.JSON(http.StatusOK, dto.UsernameFromSchema(record))
}

// GetUsernameByOwner retrieves the active record held by an owner
func (h *handler) GetUsernameByOwner(c *gin.Context) {
	owner := c.Param("owner")
	if !domain.IsStacksAddress(owner) {
		respondBadRequest(c, "Invalid Stacks address")
		return
	}

	record, err := h.store.GetUsernameByOwner(c.Request.Context(), owner)
	if err != nil {
		respondInternalError(c, err, "Failed to get username by owner")
		return
	}

	if record == nil {
		respondNotFound(c, "No username registered for address")
		return
	}

	c.JSON(http.StatusOK, dto.UsernameFromSchema(record))
}

// ListRecentEvents retrieves the combined activity feed
func (h *handler) ListRecentEvents(c *gin.Context) {
	params, err := ParseRecentEventsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	events, err := h.store.ListRecentEvents(c.Request.Context(), params.Limit)
	if err != nil {
		respondInternalError(c, err, "Failed to list recent events")
		return
	}

	c.JSON(http.StatusOK, dto.RecentEvents{Results: events})
}

// GetStats returns registry summary counts
func (h *handler) GetStats(c *gin.Context) {
	total, err := h.store.CountUsernames(c.Request.Context())
	if err != nil {
		respondInternalError(c, err, "Failed to count usernames")
		return
	}

	c.JSON(http.StatusOK, dto.Stats{TotalUsernames: total})
}

// InsertUsername applies a synthetic register event (debug tooling)
func (h *handler) InsertUsername(c *gin.Context) {
	var req dto.InsertUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	event := domain.NormalizedEvent{
		Kind:        domain.EventKindRegister,
		TxID:        req.TxID,
		BlockHeight: req.BlockHeight,
		Timestamp:   req.Timestamp,
		Sender:      req.Owner,
		Username:    req.Username,
	}
	if event.TxID == "" {
		event.TxID = "0xdebug-" + req.Username
	}
	if event.Timestamp == 0 {
		event.Timestamp = h.clock.Now().Unix()
	}

	if !event.Valid() {
		respondValidationError(c, "invalid username or owner address")
		return
	}

	if _, err := h.engine.Apply(c.Request.Context(), event); err != nil {
		respondInternalError(c, err, "Failed to insert username")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// HandleWebhook ingests one chainhook delivery. Events are applied in block
// order; a storage fault aborts the request with a 500 so the sender
// redelivers the payload.
func (h *handler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondBadRequest(c, "Failed to read request body")
		return
	}

	envelope, err := chainhook.ParseEnvelope(body)
	if err != nil {
		respondBadRequest(c, "Invalid chainhook payload", err.Error())
		return
	}

	events := chainhook.Normalize(envelope)

	applied := 0
	skipped := 0
	for _, event := range events {
		ok, err := h.engine.Apply(c.Request.Context(), event)
		if err != nil {
			respondInternalError(c, err, "Failed to apply event",
				zap.String("tx_id", event.TxID),
				zap.String("username", event.Username))
			return
		}
		if !ok {
			skipped++
			continue
		}
		applied++
		h.publishApplied(c, event)
	}

	logger.InfoCtx(c.Request.Context(), "Processed chainhook delivery",
		zap.Int("events", len(events)),
		zap.Int("applied", applied),
		zap.Int("skipped", skipped))

	c.JSON(http.StatusOK, dto.WebhookAck{
		Success: true,
		Applied: applied,
		Skipped: skipped,
	})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// publishApplied notifies the broker of an applied event. Publish failures
// are logged, not surfaced; the ledger is the source of truth.
func (h *handler) publishApplied(c *gin.Context, event domain.NormalizedEvent) {
	if h.publisher == nil {
		return
	}

	if err := h.publisher.PublishEvent(c.Request.Context(), domain.NewAppliedEvent(event, domain.SourceChainhook)); err != nil {
		logger.WarnCtx(c.Request.Context(), "Failed to publish applied event",
			zap.String("tx_id", event.TxID),
			zap.String("username", event.Username),
			zap.Error(err))
	}
}
