package listing

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Kashh99/closet-backend/app/echoServer/render"
	"github.com/Kashh99/closet-backend/model"
	listingsvc "github.com/Kashh99/closet-backend/service/listing"
)

type Controller struct {
	Svc listingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /api/listings
// Supports allow-listed filters (`field[gt|gte|lt|lte|in]=`), sort, page and
// limit query parameters.
func (ct *Controller) Browse(c echo.Context) error {
	f, err := listingsvc.ParseQuery(c.QueryParams())
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	page, err := ct.Svc.Browse(c.Request().Context(), f)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.Page(c, page.Items, page.Count, page.Total, page.TotalPages, page.CurrentPage)
}

// GET /api/listings/:id
func (ct *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return render.Message(c, http.StatusBadRequest, "invalid id")
	}
	l, err := ct.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.OK(c, l)
}

// GET /api/listings/my/listings
func (ct *Controller) Mine(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	items, err := ct.Svc.Mine(c.Request().Context(), uid)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.List(c, items, len(items))
}

// POST /api/listings
func (ct *Controller) Create(c echo.Context) error {
	var req model.CreateListingReq
	if err := c.Bind(&req); err != nil {
		return render.Message(c, http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return render.Message(c, http.StatusBadRequest, "validation error")
	}

	uid, _ := c.Get("user_id").(int64)
	l, err := ct.Svc.Create(c.Request().Context(), uid, req)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.Created(c, l)
}

// PUT /api/listings/:id
func (ct *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return render.Message(c, http.StatusBadRequest, "invalid id")
	}
	var req model.UpdateListingReq
	if err := c.Bind(&req); err != nil {
		return render.Message(c, http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return render.Message(c, http.StatusBadRequest, "validation error")
	}

	uid, _ := c.Get("user_id").(int64)
	l, err := ct.Svc.Update(c.Request().Context(), uid, id, req)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.OK(c, l)
}

// DELETE /api/listings/:id
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
