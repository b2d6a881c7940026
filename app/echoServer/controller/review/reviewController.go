package review

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Kashh99/closet-backend/app/echoServer/render"
	"github.com/Kashh99/closet-backend/model"
	reviewsvc "github.com/Kashh99/closet-backend/service/review"
)

type Controller struct {
	Svc reviewsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /api/reviews/user/:userId
func (ct *Controller) ForUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil || id <= 0 {
		return render.Message(c, http.StatusBadRequest, "invalid id")
	}
	items, err := ct.Svc.ForUser(c.Request().Context(), id)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.List(c, items, len(items))
}

// GET /api/reviews/listing/:listingId
func (ct *Controller) ForListing(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("listingId"), 10, 64)
	if err != nil || id <= 0 {
		return render.Message(c, http.StatusBadRequest, "invalid id")
	}
	items, err := ct.Svc.ForListing(c.Request().Context(), id)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.List(c, items, len(items))
}

// POST /api/reviews
func (ct *Controller) Create(c echo.Context) error {
	var req model.CreateReviewReq
	if err := c.Bind(&req); err != nil {
		return render.Message(c, http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return render.Message(c, http.StatusBadRequest, "validation error")
	}

	uid, _ := c.Get("user_id").(int64)
	rv, err := ct.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.Created(c, rv)
}

// PUT /api/reviews/:id
func (ct *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return render.Message(c, http.StatusBadRequest, "invalid id")
	}
	var req model.UpdateReviewReq
	if err := c.Bind(&req); err != nil {
		return render.Message(c, http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return render.Message(c, http.StatusBadRequest, "validation error")
	}

	uid, _ := c.Get("user_id").(int64)
	rv, err := ct.Svc.Update(c.Request().Context(), uid, id, req)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.OK(c, rv)
}

// DELETE /api/reviews/:id
func (ct *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return render.Message(c, http.StatusBadRequest, "invalid id")
	}
	uid, _ := c.Get("user_id").(int64)
	if err := ct.Svc.Delete(c.Request().Context(), uid, id); err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.OK(c, echo.Map{})
}
