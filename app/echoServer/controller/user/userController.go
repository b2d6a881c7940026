package user

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Kashh99/closet-backend/app/echoServer/render"
	"github.com/Kashh99/closet-backend/model"
	usersvc "github.com/Kashh99/closet-backend/service/user"
)

type Controller struct {
	Svc usersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /api/users/:id
func (ct *Controller) Profile(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return render.Message(c, http.StatusBadRequest, "invalid id")
	}
	p, err := ct.Svc.Profile(c.Request().Context(), id)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.OK(c, p)
}

// PUT /api/users/profile
func (ct *Controller) UpdateProfile(c echo.Context) error {
	var req model.UpdateProfileReq
	if err := c.Bind(&req); err != nil {
		return render.Message(c, http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return render.Message(c, http.StatusBadRequest, "validation error")
	}

	uid, _ := c.Get("user_id").(int64)
	u, err := ct.Svc.UpdateProfile(c.Request().Context(), uid, req)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.OK(c, u)
}

// PUT /api/users/password
func (ct *Controller) ChangePassword(c echo.Context) error {
	var req model.ChangePasswordReq
	if err := c.Bind(&req); err != nil {
		return render.Message(c, http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return render.Message(c, http.StatusBadRequest, "validation error")
	}

	uid, _ := c.Get("user_id").(int64)
	if err := ct.Svc.ChangePassword(c.Request().Context(), uid, req.CurrentPassword, req.NewPassword); err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.Message(c, http.StatusOK, "password updated successfully")
}
