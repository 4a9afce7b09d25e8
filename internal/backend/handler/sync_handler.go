package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/backend/service"
)

// DefaultMaxEvents caps the number of events accepted in one sync POST.
const DefaultMaxEvents = 500

type SyncHandler struct {
	svc       service.SyncService
	apiKey    string
	maxEvents int
	logger    *zap.Logger
}

func NewSyncHandler(svc service.SyncService, apiKey string, maxEvents int, logger *zap.Logger) *SyncHandler {
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEvents
	}
	return &SyncHandler{svc: svc, apiKey: apiKey, maxEvents: maxEvents, logger: logger}
}

func (h *SyncHandler) Register(e *echo.Echo) {
	g := e.Group("/api/sync")
	g.Use(GateKeyMiddleware(h.apiKey))
	g.POST("/gate/events", h.IngestEvents)
}

// Events stays raw until the list shape is confirmed, so a scalar or object
// payload can be answered with the contract's 400 instead of a bind error.
type syncEventsRequest struct {
	Events json.RawMessage `json:"events"`
}

// IngestEvents godoc
// @Summary      Ingest a batch of gate events
// @Description  Applies replicated ENTRY/EXIT/ENTRY_EXPIRED_SEEN events idempotently. Each event is acked or rejected individually; rejected events must not be retried.
// @ID           ingest-gate-events
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        X-GATE-API-KEY  header  string             true  "Shared gate key"
// @Param        request         body    syncEventsRequest  true  "Event batch"
// @Success      200  {object}  object
// @Failure      400  {object}  errResp  "events is not a list"
// @Failure      401  {object}  errResp  "Missing gate key"
// @Failure      403  {object}  errResp  "Wrong gate key"
// @Failure      413  {object}  errResp  "Batch too large"
// @Failure      500  {object}  errResp  "Ingest aborted"
// @Router       /api/sync/gate/events [post]
func (h *SyncHandler) IngestEvents(c echo.Context) error {
	var req syncEventsRequest
	if err := c.Bind(&req); err != nil {
		return errResponse(c, http.StatusBadRequest, "invalid request body")
	}

	trimmed := bytes.TrimSpace(req.Events)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return errResponse(c, http.StatusBadRequest, "Invalid payload: 'events' must be a list")
	}
	var events []json.RawMessage
	if err := json.Unmarshal(trimmed, &events); err != nil {
		return errResponse(c, http.StatusBadRequest, "Invalid payload: 'events' must be a list")
	}
	if len(events) > h.maxEvents {
		return errResponse(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Too many events in one request (max %d)", h.maxEvents))
	}

	resp, err := h.svc.IngestBatch(c.Request().Context(), events)
	if err != nil {
		// The batch is abandoned; the gate retries everything unacked.
		h.logger.Error("gate batch ingest aborted", zap.Error(err))
		return errResponse(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, resp)
}
