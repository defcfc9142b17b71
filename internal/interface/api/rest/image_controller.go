package rest

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"imageresizer/internal/application/ports"
	domain "imageresizer/internal/domain/image"
	"imageresizer/internal/infrastructure/jwt"
	"imageresizer/internal/interface/api/rest/dto/image"
	"imageresizer/internal/interface/api/rest/dto/response"
	"imageresizer/internal/interface/api/rest/middleware"
	"imageresizer/internal/interface/api/rest/validator"
)

const (
	formFieldImage = "image"

	// room for multipart boundaries and the width/height/quality fields
	multipartOverhead = int64(1 << 20)

	msgNoFile           = "No image file provided"
	msgNotAnImage       = "Only image files are allowed"
	msgTooLarge         = "Image exceeds the upload size limit"
	msgInvalidDimension = "Width and height must be integers between 1 and 10000"
	msgUploadFailed     = "Failed to upload image"
	msgResizeFailed     = "Failed to resize image"
	msgDeleteFailed     = "Failed to delete image"
)

type ImageController struct {
	imageService ports.ImageService
	logger       *zap.Logger
	maxBodyBytes int64
}

// NewImageController registers the image routes behind limiter and a
// valid token, in that order.
func NewImageController(
	r *gin.Engine,
	imageService ports.ImageService,
	logger *zap.Logger,
	jwtService *jwt.Service,
	limiter gin.HandlerFunc,
	maxUploadBytes int64,
) *ImageController {
	ic := &ImageController{
		imageService: imageService,
		logger:       logger,
		maxBodyBytes: maxUploadBytes + multipartOverhead,
	}

	authMW := middleware.AuthMiddleware(jwtService)
	r.POST(RouteImageUpload, limiter, authMW, ic.UploadHandler)
	r.POST(RouteImageResize, limiter, authMW, ic.ResizeHandler)
	r.DELETE(RouteImage, limiter, authMW, ic.DeleteHandler)

	return ic
}

func (ic *ImageController) UploadHandler(c *gin.Context) {
	fh, err := ic.formFile(c)
	if err != nil {
		ic.fail(c, err, msgUploadFailed)
		return
	}

	up, err := ic.imageService.Upload(c.Request.Context(), c.GetString(middleware.CtxUserID), fh)
	if err != nil {
		ic.fail(c, err, msgUploadFailed)
		return
	}

	c.JSON(http.StatusOK, response.OK("Image uploaded successfully", image.ToUploaded(*up)))
}

func (ic *ImageController) ResizeHandler(c *gin.Context) {
	fh, err := ic.formFile(c)
	if err != nil {
		ic.fail(c, err, msgResizeFailed)
		return
	}

	opts, err := validator.ParseResizeOptions(c.PostForm("width"), c.PostForm("height"), c.PostForm("quality"))
	if err != nil {
		ic.fail(c, err, msgResizeFailed)
		return
	}

	res, err := ic.imageService.Resize(c.Request.Context(), c.GetString(middleware.CtxUserID), fh, opts)
	if err != nil {
		ic.fail(c, err, msgResizeFailed)
		return
	}

	c.JSON(http.StatusOK, response.OK("Image resized successfully", image.ToResized(*res)))
}

func (ic *ImageController) DeleteHandler(c *gin.Context) {
	err := ic.imageService.Delete(c.Request.Context(), c.GetString(middleware.CtxUserID), c.Param("filename"))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, response.OK("Image deleted successfully", nil))
	case errors.Is(err, domain.ErrInvalidPath):
		c.JSON(http.StatusBadRequest, response.Fail(msgDeleteFailed))
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Fail(msgDeleteFailed))
	default:
		ic.logger.Error("Delete() error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.Internal(msgDeleteFailed, err))
	}
}

// formFile caps the request body and returns the "image" part.
func (ic *ImageController) formFile(c *gin.Context) (*multipart.FileHeader, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, ic.maxBodyBytes)

	fh, err := c.FormFile(formFieldImage)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.ErrTooLarge
		}
		return nil, domain.ErrNoFile
	}

	return fh, nil
}

func (ic *ImageController) fail(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, domain.ErrNoFile):
		c.JSON(http.StatusBadRequest, response.Fail(msgNoFile))
	case errors.Is(err, domain.ErrNotAnImage):
		c.JSON(http.StatusBadRequest, response.Fail(msgNotAnImage))
	case errors.Is(err, domain.ErrTooLarge):
		c.JSON(http.StatusBadRequest, response.Fail(msgTooLarge))
	case errors.Is(err, domain.ErrInvalidDimension):
		c.JSON(http.StatusBadRequest, response.Fail(msgInvalidDimension))
	default:
		ic.logger.Error("image request failed",
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, response.Internal(internalMsg, err))
	}
}
