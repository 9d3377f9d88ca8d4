package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/internal/notify"
	appErrors "github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/errors"
	"github.com/archiarchyveminsongiminwetbape-wq/R-P-TITION-CHEZ-TOI/pkg/response"
)

const defaultKeepAlive = 25 * time.Second

type eventSubscriber interface {
	Subscribe(ctx context.Context, userID string) (notify.Feed, error)
}

// EventHandler streams the caller's change events as server-sent events.
type EventHandler struct {
	subscriber eventSubscriber
	keepAlive  time.Duration
	logger     *zap.Logger
}

// NewEventHandler constructs the handler. A nil subscriber means change
// events are disabled.
func NewEventHandler(subscriber eventSubscriber, keepAlive time.Duration, logger *zap.Logger) *EventHandler {
	if keepAlive <= 0 {
		keepAlive = defaultKeepAlive
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventHandler{subscriber: subscriber, keepAlive: keepAlive, logger: logger}
}

// Stream godoc
// @Summary Stream my change events
// @Description Server-sent events carrying booking and message changes for the caller. Clients reload the affected booking on each event and reconnect when the stream ends.
// @Tags Events
// @Produce text/event-stream
// @Security BearerAuth
// @Param access_token query string false "Access token for clients that cannot set headers"
// @Success 200
// @Failure 503 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) Stream(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if h.subscriber == nil {
		response.Error(c, appErrors.ErrNotificationsDisabled)
		return
	}

	ctx := c.Request.Context()
	feed, err := h.subscriber.Subscribe(ctx, actor.ID)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "change events unavailable"))
		return
	}
	defer feed.Close()

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"user_id": actor.ID})
	c.Writer.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	c.Stream(func(io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case event, ok := <-feed.Events():
			if !ok {
				return false
			}
			c.SSEvent(string(event.Type), event)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
	h.logger.Debug("event stream closed", zap.String("user_id", actor.ID))
}
