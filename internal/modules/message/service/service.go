package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	chatlog "github.com/reshetovitsme/wa-capture-agent/internal/modules/chatlog/repository"
	"github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
	"github.com/reshetovitsme/wa-capture-agent/internal/shared/metrics"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Downloader saves the media behind a classified attachment.
type Downloader interface {
	Download(ctx context.Context, desc domain.MediaDescriptor, ref domain.MediaRef, root string) (domain.StoredFile, error)
}

// Options configures a Handler.
type Options struct {
	MediaRoot string
	Location  *time.Location
	// EnabledKinds limits which kinds are downloaded. Empty means all.
	EnabledKinds []domain.MediaKind
}

// Handler turns each inbound message into exactly one chat-log line,
// saving its media on the way when it carries any.
type Handler struct {
	downloader Downloader
	logs       chatlog.Repository
	opts       Options
	enabled    map[domain.MediaKind]bool
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewHandler creates a new message handler
func NewHandler(downloader Downloader, logs chatlog.Repository, opts Options, m *metrics.Metrics, logger *slog.Logger) *Handler {
	kinds := opts.EnabledKinds
	if len(kinds) == 0 {
		kinds = lo.Map(domain.MediaKindNames(), func(name string, _ int) domain.MediaKind {
			return domain.MediaKind(name)
		})
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Handler{
		downloader: downloader,
		logs:       logs,
		opts:       opts,
		enabled:    lo.SliceToMap(kinds, func(k domain.MediaKind) (domain.MediaKind, bool) { return k, true }),
		metrics:    m,
		logger:     logger.With("component", "message_handler"),
	}
}

// Handle processes evt and appends its line to the chat log. It never
// fails: problems are logged and the event is dropped after its line.
func (h *Handler) Handle(ctx context.Context, evt domain.InboundEvent) {
	h.Commit(ctx, evt, h.Process(ctx, evt))
}

// Process produces the chat-log line for evt without writing it.
func (h *Handler) Process(ctx context.Context, evt domain.InboundEvent) (line domain.LogLine) {
	ts := FormatTimestamp(evt.Timestamp, h.opts.Location)
	trace := lo.CoalesceOrEmpty(evt.ID, uuid.NewString())
	logger := h.logger.With("event_id", trace)

	defer func() {
		if r := recover(); r != nil {
			err := oops.Trace(trace).Errorf("panic while handling message: %v", r)
			logger.Error("Recovered from panic", "error", err)
			h.metrics.ObserveEvent("failed")
			line = domain.LogLine{Target: domain.LogTargetChat, Text: errorLine(ts, err)}
		}
	}()

	sender := lo.CoalesceOrEmpty(evt.SenderID, evt.ChatID, unknownSender)
	name := lo.CoalesceOrEmpty(evt.DisplayName, unknownName)

	if text, ok := evt.Payload.(domain.Text); ok {
		h.metrics.ObserveEvent("text")
		return chatLine(textLine(ts, sender, name, text.Body))
	}

	desc, ref, ok := domain.Classify(evt.Payload)
	if !ok {
		logger.Debug("Unsupported message type", "sender", sender, "payload", fmt.Sprintf("%T", evt.Payload))
		h.metrics.ObserveEvent("unsupported")
		return chatLine(unsupportedLine(ts, sender, name))
	}

	if !h.enabled[desc.Kind] {
		logger.Debug("Media kind not enabled, skipping download", "kind", desc.Kind)
		h.metrics.ObserveEvent("skipped")
		return chatLine(mediaLine(ts, sender, name, desc, ""))
	}

	stored, err := h.downloader.Download(ctx, desc, ref, h.opts.MediaRoot)
	if err != nil {
		err = oops.Trace(trace).With("kind", desc.Kind, "sender", sender).Wrap(err)
		logger.Error("Error while processing message", "kind", desc.Kind, "sender", sender, "error", err)
		h.metrics.ObserveEvent("failed")
		return chatLine(errorLine(ts, err))
	}

	h.metrics.ObserveEvent("media")
	return chatLine(mediaLine(ts, sender, name, desc, stored.Name))
}

// Commit appends line to its log. A failed append is logged and the event
// is still considered seen.
func (h *Handler) Commit(ctx context.Context, evt domain.InboundEvent, line domain.LogLine) {
	if err := h.logs.Append(ctx, line.Target, line.Text); err != nil {
		h.metrics.ObserveAppendError(line.Target.String())
		h.logger.Error("Failed to append log line", "event_id", evt.ID, "target", line.Target, "error", err)
	}
}

func chatLine(text string) domain.LogLine {
	return domain.LogLine{Target: domain.LogTargetChat, Text: text}
}
