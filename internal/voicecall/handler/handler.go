package handler

import (
	"context"
	"net/http"

	"callbridge/internal/apierrors"
	"callbridge/internal/observability"
	"callbridge/internal/sessionconfig"
	"callbridge/internal/voice/pipeline"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// maxStreamMessageBytes bounds one media stream message. Media frames are
// well under 1 KB; start events carry custom parameters.
const maxStreamMessageBytes = 64 << 10

// VoiceCallService is the part of the voice call processor the HTTP layer uses
type VoiceCallService interface {
	ResolveVariant(variant string) (string, error)
	HandleStream(ctx context.Context, conn pipeline.Conn, sc sessionconfig.SessionContext) error
	AnswerTwiML(variant, host string) (string, error)
	PlaceCall(ctx context.Context, to, variant string) (string, error)
}

type Handler struct {
	voiceProcessor VoiceCallService
	logger         *observability.Logger
	upgrader       websocket.Upgrader
}

func New(voiceProcessor VoiceCallService, logger *observability.Logger) Handler {
	return Handler{
		voiceProcessor: voiceProcessor,
		logger:         logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Media streams come from Twilio's edge, not from browsers.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleTwilioStream handles GET /twilio with the default configuration
func (h *Handler) HandleTwilioStream(c *gin.Context) {
	h.serveStream(c, "")
}

// HandleMediaStream handles GET /media/:variant
func (h *Handler) HandleMediaStream(c *gin.Context) {
	h.serveStream(c, c.Param("variant"))
}

func (h *Handler) serveStream(c *gin.Context, requested string) {
	ctx := c.Request.Context()

	variant, err := h.voiceProcessor.ResolveVariant(requested)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error(ctx, "WebSocket upgrade failed", err)
		return
	}
	conn.SetReadLimit(maxStreamMessageBytes)

	query := c.Request.URL.Query()
	sc := sessionconfig.SessionContext{
		Variant: variant,
		CallSID: query.Get("CallSid"),
		From:    query.Get("From"),
		To:      query.Get("To"),
		Query:   query,
	}

	h.logger.Info(ctx, "Media stream connection established")
	if err := h.voiceProcessor.HandleStream(ctx, conn, sc); err != nil {
		h.logger.Error(ctx, "Media stream ended with error", err)
		return
	}
	h.logger.Info(ctx, "Media stream ended")
}

// HandleAnswer handles POST /voice/:variant, the Twilio voice webhook
func (h *Handler) HandleAnswer(c *gin.Context) {
	doc, err := h.voiceProcessor.AnswerTwiML(c.Param("variant"), c.Request.Host)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(doc))
}

// PlaceCallRequest represents the HTTP request for starting an outbound call
type PlaceCallRequest struct {
	To      string `json:"to" binding:"required,e164"`
	Variant string `json:"variant" binding:"omitempty,max=64"`
}

// PlaceCallResponse is returned once the telephony provider accepted the call
type PlaceCallResponse struct {
	CallSID string `json:"call_sid"`
	Variant string `json:"variant"`
}

// HandlePlaceCall handles POST /api/calls
func (h *Handler) HandlePlaceCall(c *gin.Context) {
	ctx := c.Request.Context()

	var req PlaceCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	variant, err := h.voiceProcessor.ResolveVariant(req.Variant)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "variant", Value: variant})
	sid, err := h.voiceProcessor.PlaceCall(ctx, req.To, variant)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	h.logger.Info(observability.WithFields(ctx, observability.Field{Key: "call_sid", Value: sid}), "Outbound call placed")
	c.JSON(http.StatusCreated, PlaceCallResponse{CallSID: sid, Variant: variant})
}
