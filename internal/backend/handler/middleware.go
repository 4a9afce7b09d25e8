package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GateAPIKeyHeader carries the shared gate key on sync requests.
const GateAPIKeyHeader = "X-GATE-API-KEY"

// KioskTokenHeader is the header alternative to the ?token= query parameter
// on the kiosk summary endpoint.
const KioskTokenHeader = "X-Kiosk-Token"

// GateKeyMiddleware guards the sync surface with the shared gate key. An
// unset key fails closed with a 500 so a misconfigured backend never ingests
// unauthenticated events.
func GateKeyMiddleware(apiKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if apiKey == "" {
				return errResponse(c, http.StatusInternalServerError, "Server misconfigured: GATE_API_KEY is not set")
			}
			provided := c.Request().Header.Get(GateAPIKeyHeader)
			if provided == "" {
				return errResponse(c, http.StatusUnauthorized, "Unauthorized")
			}
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				return errResponse(c, http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}

// KioskTokenMiddleware guards the dashboard summary. The kiosk presents its
// token as ?token= or in the X-Kiosk-Token header; anything else, including
// an unconfigured token, answers 401.
func KioskTokenMiddleware(kioskToken string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			provided := c.QueryParam("token")
			if provided == "" {
				provided = c.Request().Header.Get(KioskTokenHeader)
			}
			if kioskToken == "" || provided == "" ||
				subtle.ConstantTimeCompare([]byte(provided), []byte(kioskToken)) != 1 {
				return errResponse(c, http.StatusUnauthorized, "Unauthorized")
			}
			return next(c)
		}
	}
}
