package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Rorical/flightai/internal/core"
	"github.com/Rorical/flightai/internal/models"
	"github.com/Rorical/flightai/internal/store"
	"github.com/Rorical/flightai/internal/tools"
)

// Translator is the translation surface the HTTP layer needs
type Translator interface {
	core.HistoryTranslator
	Translate(ctx context.Context, text string) (string, error)
	Language() string
}

// BookingReader looks up recorded bookings
type BookingReader interface {
	List(ctx context.Context) ([]*models.Booking, error)
	Get(ctx context.Context, reference string) (*models.Booking, error)
}

// Handler serves the chat API. Each request carries its own History, so the
// handler holds no conversation state.
type Handler struct {
	turns      core.Turns
	translator Translator
	bookings   BookingReader
	registry   *tools.Registry
	log        logrus.FieldLogger
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"chat":        h.turns != nil,
		"translation": h.translator != nil,
	})
}

// Chat handles POST /v1/chat: one turn over the posted history
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(c, http.StatusBadRequest, CodeInvalidRequest, errors.New("message must not be empty"))
		return
	}
	if h.turns == nil {
		writeTurnError(c, core.ErrProviderUnavailable)
		return
	}

	history := req.History.Append(models.UserMessage(req.Message))
	result, err := h.turns.Run(c.Request.Context(), history)
	if err != nil {
		h.log.WithError(err).Error("turn failed")
		writeTurnError(c, err)
		return
	}

	resp := ChatResponse{History: result.History, Image: result.Image}
	// Translation runs only once the reply is part of the history
	if h.translator != nil {
		resp.Translation = h.translator.TranslateLatest(c.Request.Context(), result.History)
	}
	c.JSON(http.StatusOK, resp)
}

// Translate handles POST /v1/translate
func (h *Handler) Translate(c *gin.Context) {
	if h.translator == nil {
		writeError(c, http.StatusServiceUnavailable, CodeTranslationDisabled, errors.New("translation is disabled"))
		return
	}
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, CodeInvalidRequest, err)
		return
	}

	translated, err := h.translator.Translate(c.Request.Context(), req.Text)
	if err != nil {
		h.log.WithError(err).Warn("translation failed")
		writeError(c, http.StatusBadGateway, CodeModelError, err)
		return
	}
	c.JSON(http.StatusOK, TranslateResponse{
		Language:    h.translator.Language(),
		Translation: translated,
	})
}

// Bookings handles GET /v1/bookings
func (h *Handler) Bookings(c *gin.Context) {
	bookings, err := h.bookings.List(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// Booking handles GET /v1/bookings/:reference
func (h *Handler) Booking(c *gin.Context) {
	reference := strings.ToUpper(strings.TrimSpace(c.Param("reference")))
	booking, err := h.bookings.Get(c.Request.Context(), reference)
	switch {
	case errors.Is(err, store.ErrBookingNotFound):
		writeError(c, http.StatusNotFound, CodeNotFound, err)
		return
	case err != nil:
		writeError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Tools handles GET /v1/tools
func (h *Handler) Tools(c *gin.Context) {
	var out []ToolResponse
	for _, tool := range h.registry.ListTools() {
		out = append(out, ToolResponse{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
			Required:    tool.RequiredParameters(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"tools": out})
}
