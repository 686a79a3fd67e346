package common

import (
	"github.com/gin-gonic/gin"
)

// Response helpers shaped to the verification frontend contract.

func ResponseSuccess(ctx *gin.Context, data gin.H) {
	ctx.JSON(200, data)
}

func ResponseError(ctx *gin.Context, status int, err error) {
	ctx.JSON(status, gin.H{
		"error": err.Error(),
	})
}

// ResponseProcessingError reports an internal failure with its detail,
// keeping the session retryable on the caller's side.
func ResponseProcessingError(ctx *gin.Context, msg string, err error) {
	ctx.JSON(500, gin.H{
		"error":   msg,
		"details": err.Error(),
	})
}

// ResponseFraud terminates the session on the caller's side: the account is
// banned and the token has been consumed.
func ResponseFraud(ctx *gin.Context, err error) {
	ctx.JSON(403, gin.H{
		"error":             err.Error(),
		"banned":            true,
		"sessionTerminated": true,
	})
}
