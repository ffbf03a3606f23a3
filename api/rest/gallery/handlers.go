package gallery

import (
	"net/http"

	"codeberg.org/iamhere/server/iamhere/images"
	"codeberg.org/iamhere/server/internal/auth"
	"codeberg.org/iamhere/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// ListHandler lists all generated images owned by the authenticated user
func ListHandler(imageRepo *images.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		imgs, err := imageRepo.List(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to load gallery", err)
			return
		}

		c.JSON(http.StatusOK, ListResponse{
			Images: imgs,
			Total:  len(imgs),
		})
	}
}

// GetHandler returns one image by ID, owner only
func GetHandler(imageRepo *images.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		imageID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		img, err := imageRepo.Get(c.Request.Context(), imageID, userID)
		if err != nil {
			errors.NotFound(c, "image")
			return
		}

		c.JSON(http.StatusOK, img)
	}
}

// DeleteHandler deletes one image, owner only
func DeleteHandler(imageRepo *images.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		imageID, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		if err := imageRepo.Delete(c.Request.Context(), imageID, userID); err != nil {
			errors.NotFound(c, "image")
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "image deleted"})
	}
}
