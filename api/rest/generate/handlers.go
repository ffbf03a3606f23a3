package generate

import (
	"errors"
	"io"
	"net/http"

	"codeberg.org/iamhere/server/internal/auth"
	resterrors "codeberg.org/iamhere/server/internal/errors"
	"codeberg.org/iamhere/server/internal/generation"
	"github.com/gin-gonic/gin"
)

// Handler godoc
// @Summary Generate a travel photo
// @Description Compose the uploaded selfie into an AI-generated photo at the chosen location
// @Tags generate
// @Accept mpfd
// @Produce json
// @Param image formData file true "Source photo (JPEG, PNG or WebP, max 10 MiB)"
// @Param location formData string true "Location JSON: {lat, lng, address, name?}"
// @Success 200 {object} Response
// @Failure 400 {object} resterrors.ErrorResponse
// @Failure 401 {object} resterrors.ErrorResponse
// @Failure 429 {object} resterrors.ErrorResponse
// @Failure 503 {object} resterrors.ErrorResponse
// @Router /api/v1/generate [post]
// @Security BearerAuth
func Handler(svc Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			resterrors.Unauthorized(c, "")
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			resterrors.BadRequest(c, "image and location are required", err)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			resterrors.BadRequest(c, "could not read uploaded image", err)
			return
		}

		imageData, err := io.ReadAll(file)
		file.Close() //nolint:errcheck

		if err != nil {
			resterrors.BadRequest(c, "could not read uploaded image", err)
			return
		}

		locationJSON := c.PostForm("location")
		if locationJSON == "" {
			resterrors.BadRequest(c, "image and location are required", nil)
			return
		}

		out, err := svc.Generate(c.Request.Context(), userID, generation.Input{
			Image:         imageData,
			ImageMIMEType: fileHeader.Header.Get("Content-Type"),
			LocationJSON:  locationJSON,
		})

		if err != nil {
			respondError(c, err)
			return
		}

		resp := Response{
			ImageURL:       out.ImageURL,
			Prompt:         out.Prompt,
			RemainingUsage: out.RemainingUsage,
			Fallback:       out.Fallback,
		}

		if out.Persisted {
			resp.ID = out.Image.ID
			resp.GeneratedImage = out.Image
		}

		c.JSON(http.StatusOK, resp)
	}
}

// maps pipeline errors to the HTTP error taxonomy
func respondError(c *gin.Context, err error) {
	var vErr *generation.ValidationError

	switch {
	case errors.As(err, &vErr):
		resterrors.ValidationError(c, vErr)
	case errors.Is(err, generation.ErrQuotaExceeded):
		resterrors.QuotaExceeded(c, "")
	case errors.Is(err, generation.ErrUpstreamUnavailable):
		resterrors.UpstreamUnavailable(c, "")
	default:
		resterrors.InternalError(c, "failed to generate image", err)
	}
}
