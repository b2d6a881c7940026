package upload

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Kashh99/closet-backend/app/echoServer/render"
	uploadsvc "github.com/Kashh99/closet-backend/service/upload"
)

type Controller struct {
	Svc uploadsvc.Service
	Log *slog.Logger
}

// POST /api/upload/single  (multipart field "image")
func (ct *Controller) Single(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return render.Message(c, http.StatusBadRequest, "image file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return render.Message(c, http.StatusBadRequest, "unreadable image file")
	}
	defer f.Close()

	url, err := ct.Svc.Single(c.Request().Context(), uploadsvc.File{Name: fh.Filename, Reader: f})
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "url": url})
}

// POST /api/upload/multiple  (multipart field "images", at most 5)
func (ct *Controller) Multiple(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return render.Message(c, http.StatusBadRequest, "multipart form is required")
	}
	fhs := form.File["images"]
	if len(fhs) == 0 {
		return render.Message(c, http.StatusBadRequest, "at least one image is required")
	}

	files := make([]uploadsvc.File, 0, len(fhs))
	closers := make([]func() error, 0, len(fhs))
	defer func() {
		for _, cl := range closers {
			_ = cl()
		}
	}()
	for _, fh := range fhs {
		f, err := fh.Open()
		if err != nil {
			return render.Message(c, http.StatusBadRequest, "unreadable image file")
		}
		closers = append(closers, f.Close)
		files = append(files, uploadsvc.File{Name: fh.Filename, Reader: f})
	}

	urls, err := ct.Svc.Multiple(c.Request().Context(), files)
	if err != nil {
		return render.Err(c, ct.Log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "urls": urls})
}
