// Package render emits the API's uniform response envelope and maps the
// fault taxonomy onto HTTP statuses in one place.
package render

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Kashh99/closet-backend/util/fault"
)

var statusByKind = map[fault.Kind]int{
	fault.Validation: http.StatusBadRequest,
	fault.NotFound:   http.StatusNotFound,
	fault.Forbidden:  http.StatusForbidden,
	fault.Conflict:   http.StatusConflict,
	fault.Upstream:   http.StatusBadGateway,
	fault.Internal:   http.StatusInternalServerError,
}

func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}

func Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": data})
}

func Message(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": status < 400, "message": msg})
}

// List wraps collection responses, which additionally carry a count.
func List(c echo.Context, data any, count int) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": count, "data": data})
}

// Page wraps paginated collection responses.
func Page(c echo.Context, data any, count int, total int64, totalPages, currentPage int) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"count":       count,
		"total":       total,
		"totalPages":  totalPages,
		"currentPage": currentPage,
		"data":        data,
	})
}

// Err translates a service error into the envelope. Unexpected failures are
// logged with the request id and surfaced as a generic message.
func Err(c echo.Context, log *slog.Logger, err error) error {
	kind := fault.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= 500 && log != nil {
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		log.Error("request failed",
			"err", err,
			"req_id", rid,
			"path", c.Path(),
			"method", c.Request().Method,
		)
	}
	return c.JSON(status, echo.Map{"success": false, "message": fault.Message(err)})
}
