package whatsapp

import (
	"context"
	"errors"
	"io"
	"os"

	"go.mau.fi/whatsmeow"

	"github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
	apperrors "github.com/reshetovitsme/wa-capture-agent/internal/shared/errors"
)

// MediaClient downloads and decrypts attachments. *whatsmeow.Client
// satisfies it.
type MediaClient interface {
	DownloadToFile(ctx context.Context, msg whatsmeow.DownloadableMessage, file whatsmeow.File) error
}

// MediaSource opens decrypted attachment streams. The library verifies
// hashes against a seekable file, so content is spooled to a temporary
// file that is removed when the stream is closed.
type MediaSource struct {
	client   MediaClient
	spoolDir string
}

// NewMediaSource creates a source spooling into spoolDir. An empty
// spoolDir uses the system temp directory.
func NewMediaSource(client MediaClient, spoolDir string) *MediaSource {
	return &MediaSource{client: client, spoolDir: spoolDir}
}

func (s *MediaSource) Open(ctx context.Context, ref domain.MediaRef, kind domain.MediaKind) (io.ReadCloser, error) {
	msg, ok := ref.(whatsmeow.DownloadableMessage)
	if !ok || msg == nil {
		return nil, apperrors.Malformed().With("kind", kind).Errorf("media reference %T is not downloadable", ref)
	}

	f, err := os.CreateTemp(s.spoolDir, "wa-"+kind.String()+"-*")
	if err != nil {
		return nil, apperrors.Download().Wrapf(err, "failed to create spool file")
	}
	spool := &spoolFile{File: f}

	if err := s.client.DownloadToFile(ctx, msg, f); err != nil {
		spool.Close()
		return nil, apperrors.Download().With("kind", kind).Wrapf(err, "failed to download media")
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		spool.Close()
		return nil, apperrors.Download().Wrapf(err, "failed to rewind spool file")
	}
	return spool, nil
}

type spoolFile struct {
	*os.File
}

func (f *spoolFile) Close() error {
	return errors.Join(f.File.Close(), os.Remove(f.Name()))
}
