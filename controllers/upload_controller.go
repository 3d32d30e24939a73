package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"kuuslauk/libs"
	"kuuslauk/models"
	"kuuslauk/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ImageStore is implemented by libs.ImageStore.
type ImageStore interface {
	Upload(ctx context.Context, file any) (*libs.UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
	Sign(params map[string]string) (string, error)
}

type UploadController struct {
	images ImageStore
	logger zerolog.Logger
}

// NewUploadController accepts a nil store when image hosting is not
// configured; every endpoint then answers 503.
func NewUploadController(images ImageStore, logger zerolog.Logger) *UploadController {
	return &UploadController{
		images: images,
		logger: logger.With().Str("controller", "upload").Logger(),
	}
}

func (ctrl *UploadController) available(c *gin.Context) bool {
	if ctrl.images == nil {
		respondFail(c, http.StatusServiceUnavailable, models.ErrCodeUnavailable, "Image upload is not configured")
		return false
	}
	return true
}

// @Summary Upload image
// @Description JPEG, PNG, WebP or GIF up to 10MB. Stored resized to fit 1200x800.
// @Tags Admin - Upload
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image"
// @Success 201 {object} models.Response{data=models.UploadResponse}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/upload [post]
func (ctrl *UploadController) Upload(c *gin.Context) {
	if !ctrl.available(c) {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		respondFail(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "No file uploaded")
		return
	}
	if err := utils.ValidateImage(header); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, ctrl.logger, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer file.Close()

	image, err := ctrl.images.Upload(c.Request.Context(), file)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusCreated, "Image uploaded", models.UploadResponse{
		URL:      image.URL,
		PublicID: image.PublicID,
		Width:    image.Width,
		Height:   image.Height,
	})
}

// @Summary Delete image
// @Tags Admin - Upload
// @Security BearerAuth
// @Produce json
// @Param publicId query string true "Public ID"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/upload [delete]
func (ctrl *UploadController) Delete(c *gin.Context) {
	if !ctrl.available(c) {
		return
	}

	publicID := c.Query("publicId")
	if publicID == "" {
		respondFail(c, http.StatusBadRequest, models.ErrCodeInvalidInput, "publicId is required")
		return
	}

	if err := ctrl.images.Delete(c.Request.Context(), publicID); err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Image deleted", nil)
}

// @Summary Sign upload parameters
// @Description Signs the parameters of a direct browser upload.
// @Tags Admin - Upload
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.SignRequest true "Parameters to sign"
// @Success 200 {object} models.Response{data=models.SignResponse}
// @Router /admin/sign-cloudinary [post]
func (ctrl *UploadController) Sign(c *gin.Context) {
	if !ctrl.available(c) {
		return
	}

	var req models.SignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	params := make(map[string]string, len(req.ParamsToSign))
	for k, v := range req.ParamsToSign {
		params[k] = signValue(v)
	}

	signature, err := ctrl.images.Sign(params)
	if err != nil {
		respondError(c, ctrl.logger, err)
		return
	}

	respondOK(c, http.StatusOK, "Parameters signed", models.SignResponse{Signature: signature})
}

// signValue renders JSON numbers without exponent so timestamps sign the
// same way the upload widget sends them.
func signValue(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
