package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/krex38/subgate/config"
	"github.com/krex38/subgate/pkg/log"
	"github.com/krex38/subgate/webserver/controller"
)

// Engine builds the HTTP boundary. Wiring (controller.Init) has to happen
// before requests are served; tests drive this engine through httptest.
func Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	engine.POST("/check-subscription", controller.PostCheckSubscription)
	admin := engine.Group("admin")
	{
		admin.POST("add-watermark", controller.PostAddWatermark)
	}
	return engine
}

func Run() error {
	return Engine().Run(config.GetConfig().Address)
}

func requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := uuid.New().String()
		ctx.Set("RequestID", id)
		start := time.Now()
		ctx.Next()
		log.Info("%v %v %v %v %v %v", id, ctx.ClientIP(), ctx.Request.Method, ctx.Request.URL.Path, ctx.Writer.Status(), time.Since(start))
	}
}
