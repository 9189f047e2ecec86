package api

import (
	"net/http"

	voiceCallHandler "callbridge/internal/voicecall/handler"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type API struct {
	router           *gin.RouterGroup
	voiceCallHandler voiceCallHandler.Handler
	callLimiter      gin.HandlerFunc
	gatherer         prometheus.Gatherer
}

func New(router *gin.RouterGroup, voiceCallHandler voiceCallHandler.Handler, callLimiter gin.HandlerFunc, gatherer prometheus.Gatherer) API {
	return API{
		router:           router,
		voiceCallHandler: voiceCallHandler,
		callLimiter:      callLimiter,
		gatherer:         gatherer,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	a.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{})))

	// Twilio media streams and webhooks
	a.router.GET("/twilio", a.voiceCallHandler.HandleTwilioStream)
	a.router.GET("/media/:variant", a.voiceCallHandler.HandleMediaStream)
	a.router.POST("/voice/:variant", a.voiceCallHandler.HandleAnswer)

	apiGroup := a.router.Group("/api")
	{
		apiGroup.POST("/calls", a.callLimiter, a.voiceCallHandler.HandlePlaceCall)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
