package whatsapp

import (
	"context"
	"log/slog"

	"go.mau.fi/whatsmeow/types/events"

	connection "github.com/reshetovitsme/wa-capture-agent/internal/modules/connection/domain"
	"github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
)

// Submitter accepts content events for ordered handling.
type Submitter interface {
	Submit(evt domain.InboundEvent) error
}

// Supervisor receives lifecycle signals and deletion notifications.
type Supervisor interface {
	Notify(sig connection.Signal)
	HandleDeleted(ctx context.Context, records []domain.DeletionRecord)
}

// Router dispatches session events to the message pipeline and the
// connection supervisor.
type Router struct {
	messages   Submitter
	supervisor Supervisor
	logger     *slog.Logger
}

func NewRouter(messages Submitter, supervisor Supervisor, logger *slog.Logger) *Router {
	return &Router{
		messages:   messages,
		supervisor: supervisor,
		logger:     logger.With("component", "whatsapp_router"),
	}
}

// Handle is registered with the session as its event handler.
func (r *Router) Handle(evt any) {
	if records, ok := Deletions(evt); ok {
		r.supervisor.HandleDeleted(context.Background(), records)
		return
	}

	switch v := evt.(type) {
	case *events.Message:
		inbound, ok := InboundEvent(v)
		if !ok {
			r.logger.Debug("Skipping non-content message", "id", v.Info.ID, "from_me", v.Info.IsFromMe)
			return
		}
		if err := r.messages.Submit(inbound); err != nil {
			r.logger.Warn("Dropped message", "id", inbound.ID, "error", err)
		}
	default:
		if sig, ok := Signal(evt); ok {
			r.supervisor.Notify(sig)
		}
	}
}

// Signal maps lifecycle events onto supervisor signals.
func Signal(evt any) (connection.Signal, bool) {
	switch v := evt.(type) {
	case *events.Connected:
		return connection.Opened(), true
	case *events.PairSuccess:
		return connection.Paired(), true
	case *events.Disconnected:
		return connection.Closed(connection.DisconnectReasonConnectionLost), true
	case *events.LoggedOut:
		return connection.Closed(connection.DisconnectReasonLoggedOut), true
	case *events.StreamReplaced:
		return connection.Closed(connection.DisconnectReasonStreamReplaced), true
	case *events.TemporaryBan:
		return connection.Closed(connection.DisconnectReasonBanned), true
	case *events.ClientOutdated:
		return connection.Closed(connection.DisconnectReasonClientOutdated), true
	case *events.ConnectFailure:
		if v.Reason.IsLoggedOut() {
			return connection.Closed(connection.DisconnectReasonLoggedOut), true
		}
		return connection.Closed(connection.DisconnectReasonConnectFailure), true
	}
	return connection.Signal{}, false
}
