package controller

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/krex38/subgate/common"
	"github.com/krex38/subgate/model"
)

// PostCheckSubscription handles the screenshot upload for an outstanding
// verification session.
func PostCheckSubscription(ctx *gin.Context) {
	userID := ctx.Query("userid")
	token := ctx.Query("token")
	if userID == "" || token == "" {
		common.ResponseError(ctx, 401, fmt.Errorf("missing authentication parameters"))
		return
	}

	// the pipeline decides whether a missing or oversized upload even
	// matters: auth runs first, then the blacklist, then the upload checks
	var imageBytes []byte
	var mimeType string
	if fh, err := ctx.FormFile("image"); err == nil {
		mimeType = fh.Header.Get("Content-Type")
		imageBytes, err = readUpload(fh)
		if err != nil {
			common.ResponseProcessingError(ctx, "Image processing failed", err)
			return
		}
	}

	result, err := verifier.CheckSubscription(ctx.Request.Context(), token, userID, imageBytes, mimeType)
	if err != nil {
		switch {
		case errors.Is(err, model.TokenNotFoundErr),
			errors.Is(err, model.UserMismatchErr),
			errors.Is(err, model.TokenExpiredErr):
			common.ResponseError(ctx, 401, err)
		case errors.Is(err, model.BlacklistedErr), errors.Is(err, model.KnownDecoyErr):
			common.ResponseFraud(ctx, err)
		case errors.Is(err, model.MissingFileErr), errors.Is(err, model.BadMimeTypeErr),
			errors.Is(err, model.TooLargeErr):
			common.ResponseError(ctx, 400, err)
		default:
			common.ResponseProcessingError(ctx, "Image processing failed", err)
		}
		return
	}
	ctx.JSON(200, result)
}

// readUpload stops one byte past the limit; the pipeline turns the excess
// into a validation error once the session is authenticated.
func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, MaxImageSize+1))
}
