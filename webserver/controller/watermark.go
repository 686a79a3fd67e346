package controller

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/krex38/subgate/common"
	"github.com/krex38/subgate/model"
	"github.com/krex38/subgate/pkg/log"
)

// PostAddWatermark registers a decoy fingerprint; guarded by the shared
// admin secret header.
func PostAddWatermark(ctx *gin.Context) {
	if adminKey == "" || ctx.GetHeader("X-Admin-Key") != adminKey {
		common.ResponseError(ctx, 401, fmt.Errorf("unauthorized"))
		return
	}
	fh, err := ctx.FormFile("image")
	if err != nil {
		common.ResponseError(ctx, 400, model.MissingFileErr)
		return
	}
	if fh.Size > MaxImageSize {
		common.ResponseError(ctx, 400, model.TooLargeErr)
		return
	}
	imageBytes, err := readUpload(fh)
	if err != nil {
		common.ResponseProcessingError(ctx, "Image processing failed", err)
		return
	}
	hash, err := decoys.RegisterDecoy(imageBytes)
	if err != nil {
		if errors.Is(err, model.DecodeErr) {
			common.ResponseError(ctx, 400, err)
		} else {
			common.ResponseProcessingError(ctx, "Image processing failed", err)
		}
		return
	}
	log.Info("watermark registered: %v", hash)
	common.ResponseSuccess(ctx, gin.H{
		"success": true,
		"hash":    hash,
	})
}
