package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Kashh99/closet-backend/app/echoServer/render"
	"github.com/Kashh99/closet-backend/model"
	bookingrepo "github.com/Kashh99/closet-backend/repository/booking"
	bookingsvc "github.com/Kashh99/closet-backend/service/booking"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /api/bookings?role=renter|owner
func (ct *Controller) ListMine(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	var role bookingrepo.Role
	switch c.QueryParam("role") {
	case "renter":
		role = bookingrepo.RoleRenter
	case "owner":
		role = bookingrepo.RoleOwner
	case "":
		role = bookingrepo.RoleAny
	default:
		return render.Message(c, http.StatusBadRequest, "role must be renter or owner")
	}

	items, err := ct.Svc.ListMine(c.Request().Context(), uid, role)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.List(c, items, len(items))
}

// GET /api/bookings/:id
func (ct *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return render.Message(c, http.StatusBadRequest, "invalid id")
	}
	uid, _ := c.Get("user_id").(int64)
	b, err := ct.Svc.ByID(c.Request().Context(), uid, id)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.OK(c, b)
}

// POST /api/bookings
func (ct *Controller) Create(c echo.Context) error {
	var req model.CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return render.Message(c, http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return render.Message(c, http.StatusBadRequest, "validation error")
	}

	uid, _ := c.Get("user_id").(int64)
	b, err := ct.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.Created(c, b)
}

// PATCH /api/bookings/:id/status
func (ct *Controller) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return render.Message(c, http.StatusBadRequest, "invalid id")
	}
	var req model.UpdateBookingStatusReq
	if err := c.Bind(&req); err != nil {
		return render.Message(c, http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return render.Message(c, http.StatusBadRequest, "invalid status")
	}

	uid, _ := c.Get("user_id").(int64)
	b, err := ct.Svc.UpdateStatus(c.Request().Context(), uid, id, model.BookingStatus(req.Status))
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.OK(c, b)
}
