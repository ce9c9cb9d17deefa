package handler

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/collector/service"
	"github.com/central-university-dev/go-Matthew11K-linkvault/internal/domain/models"
)

const (
	replyEmptyMessage = "Send me a link and I'll save it."
	replyNoURL        = "No valid URL found in your message."
	replyFailed       = "Oops! Something went wrong saving your link."
	replySavedPrefix  = "Saved!\n"
	replySavedDefault = "Link saved"

	xmlContentType = "text/xml; charset=utf-8"
)

type messagingResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// WebhookHandler принимает входящие сообщения чата. Ответ всегда 200:
// иначе платформа сочтёт доставку неудачной и повторит её.
type WebhookHandler struct {
	pipeline LinkPipeline
	logger   *slog.Logger
}

func NewWebhookHandler(pipeline LinkPipeline, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		pipeline: pipeline,
		logger:   logger,
	}
}

// HandleMessage обрабатывает POST /api/whatsapp.
func (h *WebhookHandler) HandleMessage(c *gin.Context) {
	message := c.PostForm("Body")
	if strings.TrimSpace(message) == "" {
		message = c.PostForm("message")
	}

	if strings.TrimSpace(message) == "" {
		h.reply(c, replyEmptyMessage)
		return
	}

	result, err := h.pipeline.Process(c.Request.Context(), service.Submission{
		Text:    message,
		Channel: models.ChannelWhatsApp,
	})
	if err != nil {
		_ = c.Error(err)

		h.reply(c, replyFailed)

		return
	}

	switch result.Outcome {
	case service.OutcomeNoURL:
		h.reply(c, replyNoURL)
	case service.OutcomeSaved, service.OutcomePartial:
		h.reply(c, savedReply(result.Record))
	default:
		h.reply(c, replyFailed)
	}
}

func savedReply(record *models.LinkRecord) string {
	if record == nil {
		return replySavedPrefix + replySavedDefault
	}

	for _, candidate := range []*string{record.Title, record.Summary} {
		if text := strings.TrimSpace(models.StringValue(candidate)); text != "" {
			return replySavedPrefix + text
		}
	}

	return replySavedPrefix + replySavedDefault
}

func (h *WebhookHandler) reply(c *gin.Context, message string) {
	body, err := xml.Marshal(messagingResponse{Message: message})
	if err != nil {
		h.logger.Error("Ошибка при формировании XML ответа", "error", err)

		body = []byte("<Response></Response>")
	}

	c.Data(http.StatusOK, xmlContentType, append([]byte(xml.Header), body...))
}
