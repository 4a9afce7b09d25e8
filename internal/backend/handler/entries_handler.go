package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shub-krishan208/pale-tsg-v2/internal/backend/service"
)

type EntriesHandler struct {
	issue      service.IssueService
	dashboard  service.DashboardService
	kioskToken string
	logger     *zap.Logger
}

func NewEntriesHandler(issue service.IssueService, dashboard service.DashboardService, kioskToken string, logger *zap.Logger) *EntriesHandler {
	return &EntriesHandler{issue: issue, dashboard: dashboard, kioskToken: kioskToken, logger: logger}
}

func (h *EntriesHandler) Register(e *echo.Echo) {
	g := e.Group("/api/entries")
	g.POST("/generate", h.GenerateToken)
	g.POST("/generate/exit", h.GenerateEmergencyExit)
	g.GET("/summary", h.Summary, KioskTokenMiddleware(h.kioskToken))
}

// --- Request/Response DTOs ---

type generateTokenRequest struct {
	Roll   string          `json:"roll"`
	Laptop *string         `json:"laptop"`
	Extra  json.RawMessage `json:"extra"`
}

type generateTokenResponse struct {
	EntryID string `json:"entryId"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type emergencyExitRequest struct {
	Roll string `json:"roll"`
}

type emergencyExitResponse struct {
	EntryID          string `json:"entryId"`
	Token            string `json:"token"`
	ExpiresInSeconds int    `json:"expiresInSeconds"`
	Message          string `json:"message"`
}

// --- Handlers ---

// GenerateToken godoc
// @Summary      Issue an entry credential
// @Description  Creates a PENDING entry and returns a signed QR token valid for 24 hours. The same token is presented again on exit.
// @ID           generate-entry-token
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        request  body  generateTokenRequest  true  "Roll and belongings"
// @Success      201  {object}  generateTokenResponse
// @Failure      400  {object}  errResp  "Validation Error"
// @Failure      500  {object}  errResp  "Internal Error"
// @Router       /api/entries/generate [post]
func (h *EntriesHandler) GenerateToken(c echo.Context) error {
	var req generateTokenRequest
	if err := c.Bind(&req); err != nil {
		return errResponse(c, http.StatusBadRequest, "invalid request body")
	}

	// A blank laptop means none, same as the field being absent.
	laptop := req.Laptop
	if laptop != nil && *laptop == "" {
		laptop = nil
	}

	cred, err := h.issue.GenerateEntryToken(c.Request().Context(), req.Roll, laptop, req.Extra)
	if err != nil {
		return h.issueError(c, err)
	}

	return c.JSON(http.StatusCreated, generateTokenResponse{
		EntryID: cred.EntryID,
		Token:   cred.Token,
		Message: "Stored in db, token generated.",
	})
}

// GenerateEmergencyExit godoc
// @Summary      Issue an emergency exit credential
// @Description  Signs a short-lived exit token against the roll's latest open entry, for when the entry QR is not available at the gate.
// @ID           generate-emergency-exit
// @Tags         entries
// @Accept       json
// @Produce      json
// @Param        request  body  emergencyExitRequest  true  "Roll"
// @Success      201  {object}  emergencyExitResponse
// @Failure      400  {object}  errResp  "Validation Error"
// @Failure      404  {object}  errResp  "No open entry"
// @Failure      500  {object}  errResp  "Internal Error"
// @Router       /api/entries/generate/exit [post]
func (h *EntriesHandler) GenerateEmergencyExit(c echo.Context) error {
	var req emergencyExitRequest
	if err := c.Bind(&req); err != nil {
		return errResponse(c, http.StatusBadRequest, "invalid request body")
	}

	cred, err := h.issue.GenerateEmergencyExit(c.Request().Context(), req.Roll)
	if err != nil {
		return h.issueError(c, err)
	}

	return c.JSON(http.StatusCreated, emergencyExitResponse{
		EntryID:          cred.EntryID,
		Token:            cred.Token,
		ExpiresInSeconds: int(cred.TTL.Seconds()),
		Message:          "Emergency exit token - entry QR not available",
	})
}

// Summary godoc
// @Summary      Kiosk dashboard summary
// @Description  Returns today's entry/exit counts, the live inside count, and hourly/daily aggregates in the dashboard timezone.
// @ID           entries-summary
// @Tags         entries
// @Produce      json
// @Param        token  query  string  false  "Kiosk token (or X-Kiosk-Token header)"
// @Success      200  {object}  service.Summary
// @Failure      401  {object}  errResp  "Missing or wrong kiosk token"
// @Failure      500  {object}  errResp  "Internal Error"
// @Router       /api/entries/summary [get]
func (h *EntriesHandler) Summary(c echo.Context) error {
	summary, err := h.dashboard.Summary(c.Request().Context())
	if err != nil {
		h.logger.Error("dashboard summary failed", zap.Error(err))
		return errResponse(c, http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *EntriesHandler) issueError(c echo.Context, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return errResponse(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrNoOpenEntry):
		return errResponse(c, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("token issuance failed", zap.Error(err))
		return errResponse(c, http.StatusInternalServerError, "internal error")
	}
}
