package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evently/internal/errors"
	"evently/internal/service"
)

// UploadHandler handles image uploads to the blob store.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadResponse carries the public URL of the stored object.
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadImage godoc
// @Summary Upload an event image
// @Tags uploads
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "no file attached under field \"image\"",
			Code:  "MISSING_FILE",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "unreadable file",
			Code:  "INVALID_FILE",
		})
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.uploadService.UploadImage(c.Request().Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to store image",
			Code:  "UPLOAD_FAILED",
		})
	}

	return c.JSON(http.StatusOK, UploadResponse{URL: url})
}
