// Package handler exposes the backend's HTTP surface: the gate sync
// endpoint, credential issuance, and the kiosk dashboard summary.
package handler

import (
	"github.com/labstack/echo/v4"
)

// ── Shared error response helper ─────────────────────────────────────────

type errResp struct {
	Error string `json:"error"`
}

func errResponse(c echo.Context, status int, msg string) error {
	return c.JSON(status, errResp{Error: msg})
}
