package payment

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Kashh99/closet-backend/app/echoServer/render"
	paymentsvc "github.com/Kashh99/closet-backend/service/payment"
)

type Controller struct {
	Svc paymentsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type createIntentReq struct {
	BookingID int64 `json:"booking_id" validate:"required,gt=0"`
}

// POST /api/payments/create-payment-intent
func (ct *Controller) CreateIntent(c echo.Context) error {
	var req createIntentReq
	if err := c.Bind(&req); err != nil {
		return render.Message(c, http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return render.Message(c, http.StatusBadRequest, "validation error")
	}

	uid, _ := c.Get("user_id").(int64)
	out, err := ct.Svc.CreateIntent(c.Request().Context(), uid, req.BookingID)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.OK(c, out)
}

// GET /api/payments/status/:bookingId
func (ct *Controller) Status(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil || id <= 0 {
		return render.Message(c, http.StatusBadRequest, "invalid id")
	}
	uid, _ := c.Get("user_id").(int64)
	out, err := ct.Svc.Status(c.Request().Context(), uid, id)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return render.OK(c, out)
}

// POST /api/payments/webhook
// The signature is computed over the exact request bytes, so the body is
// passed through unparsed.
func (ct *Controller) HandleWebhook(c echo.Context) error {
	sig := c.Request().Header.Get("Stripe-Signature")
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return render.Message(c, http.StatusBadRequest, "unreadable body")
	}

	if err := ct.Svc.HandleWebhook(c.Request().Context(), sig, raw); err != nil {
		ct.Log.Error("payment webhook rejected", "err", err)
		return render.Message(c, http.StatusBadRequest, "webhook rejected")
	}
	return render.Message(c, http.StatusOK, "received")
}
