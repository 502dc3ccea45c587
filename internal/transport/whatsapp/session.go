package whatsapp

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mdp/qrterminal/v3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store/sqlstore"

	apperrors "github.com/reshetovitsme/wa-capture-agent/internal/shared/errors"

	_ "modernc.org/sqlite"
)

// Session owns the library client and its credential store.
type Session struct {
	container *sqlstore.Container
	client    *whatsmeow.Client
	logger    *slog.Logger
	qrOut     io.Writer
}

// NewSession opens the credential store at authDBPath and prepares a
// client for its first device. Nothing is connected yet.
func NewSession(ctx context.Context, authDBPath string, logger *slog.Logger) (*Session, error) {
	if err := os.MkdirAll(filepath.Dir(authDBPath), 0700); err != nil {
		return nil, apperrors.Session().With("path", authDBPath).Wrapf(err, "failed to create auth directory")
	}

	dsn := "file:" + authDBPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	container, err := sqlstore.New(ctx, "sqlite", dsn, NewLogger(logger, "database"))
	if err != nil {
		return nil, apperrors.Session().Wrapf(err, "failed to open credential store")
	}

	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		container.Close()
		return nil, apperrors.Session().Wrapf(err, "failed to load device")
	}

	client := whatsmeow.NewClient(device, NewLogger(logger, "client"))
	// The connection supervisor decides when to reconnect.
	client.EnableAutoReconnect = false

	return &Session{
		container: container,
		client:    client,
		logger:    logger.With("component", "whatsapp_session"),
		qrOut:     os.Stdout,
	}, nil
}

// Client exposes the underlying client for media downloads.
func (s *Session) Client() *whatsmeow.Client {
	return s.client
}

// AddHandler registers h for every session event.
func (s *Session) AddHandler(h func(evt any)) {
	s.client.AddEventHandler(h)
}

// Connect opens the connection. When no credentials are stored, pairing
// QR codes are printed until the device is linked.
func (s *Session) Connect(ctx context.Context) error {
	if s.client.Store.ID == nil {
		qr, err := s.client.GetQRChannel(ctx)
		if err != nil {
			return apperrors.Session().Wrapf(err, "failed to get QR channel")
		}
		go s.printQR(qr)
	}

	if err := s.client.Connect(); err != nil {
		return apperrors.Session().Wrapf(err, "failed to connect")
	}
	return nil
}

func (s *Session) printQR(qr <-chan whatsmeow.QRChannelItem) {
	for item := range qr {
		switch item.Event {
		case whatsmeow.QRChannelEventCode:
			s.logger.Info("Scan the QR code with WhatsApp > Linked devices")
			qrterminal.GenerateHalfBlock(item.Code, qrterminal.L, s.qrOut)
		case whatsmeow.QRChannelEventError:
			s.logger.Error("Pairing failed", "error", item.Error)
		default:
			s.logger.Info("Pairing status", "event", item.Event)
		}
	}
}

// Close disconnects and releases the credential store.
func (s *Session) Close() error {
	s.client.Disconnect()
	return s.container.Close()
}
