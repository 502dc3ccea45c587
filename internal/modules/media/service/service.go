package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
	"github.com/reshetovitsme/wa-capture-agent/internal/shared/clock"
	apperrors "github.com/reshetovitsme/wa-capture-agent/internal/shared/errors"
	"github.com/reshetovitsme/wa-capture-agent/internal/shared/metrics"
)

// Source opens the decrypted content of a media attachment. The returned
// stream is read once, to the end, and then closed.
type Source interface {
	Open(ctx context.Context, ref domain.MediaRef, kind domain.MediaKind) (io.ReadCloser, error)
}

// Service saves media attachments under a per-kind folder.
type Service struct {
	source  Source
	stamper *clock.Stamper
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a new media downloader
func New(source Source, stamper *clock.Stamper, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		source:  source,
		stamper: stamper,
		metrics: m,
		logger:  logger.With("component", "media"),
	}
}

// Download streams the attachment behind ref into root/<kind folder>/ and
// returns the stored file once it has been closed. Existing files are never
// overwritten.
func (s *Service) Download(ctx context.Context, desc domain.MediaDescriptor, ref domain.MediaRef, root string) (domain.StoredFile, error) {
	stored, err := s.download(ctx, desc, ref, root)
	if err != nil {
		s.metrics.ObserveDownload(desc.Kind.String(), "failed", 0)
		return domain.StoredFile{}, err
	}
	s.metrics.ObserveDownload(desc.Kind.String(), "saved", stored.Size)
	s.report(desc, stored)
	return stored, nil
}

func (s *Service) download(ctx context.Context, desc domain.MediaDescriptor, ref domain.MediaRef, root string) (domain.StoredFile, error) {
	if !desc.Kind.IsValid() {
		return domain.StoredFile{}, apperrors.Download().With("kind", desc.Kind).Wrap(apperrors.ErrNoMedia)
	}

	dir := filepath.Join(root, desc.Kind.Folder())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return domain.StoredFile{}, apperrors.Download().With("dir", dir).Wrapf(err, "failed to create media directory")
	}

	name := FileName(desc.Kind, desc.Mimetype, desc.DeclaredFileName, s.stamper.Next())
	path := filepath.Join(dir, name)

	s.logger.Debug("Downloading media", "kind", desc.Kind, "path", path)

	stream, err := s.source.Open(ctx, ref, desc.Kind)
	if err != nil {
		return domain.StoredFile{}, apperrors.Download().With("kind", desc.Kind).Wrapf(err, "failed to open media stream")
	}
	defer stream.Close()

	// O_EXCL: a name collision fails the download instead of clobbering a saved file.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return domain.StoredFile{}, apperrors.Download().With("path", path).Wrapf(err, "failed to create media file")
	}

	written, copyErr := io.Copy(f, stream)
	closeErr := f.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		os.Remove(path)
		return domain.StoredFile{}, apperrors.Download().With("path", path, "written", written).Wrapf(err, "failed to write media file")
	}

	info, err := os.Stat(path)
	if err != nil {
		return domain.StoredFile{}, apperrors.Download().With("path", path).Wrapf(err, "failed to stat media file")
	}
	if info.Size() == 0 {
		os.Remove(path)
		return domain.StoredFile{}, apperrors.Download().With("path", path).Wrap(apperrors.ErrEmptyStream)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return domain.StoredFile{
		Path: abs,
		Name: name,
		Size: info.Size(),
		Kind: desc.Kind,
	}, nil
}

// report logs what was saved along with the metadata of its kind.
func (s *Service) report(desc domain.MediaDescriptor, stored domain.StoredFile) {
	attrs := []any{
		"kind", stored.Kind,
		"path", stored.Path,
		"size", humanize.IBytes(uint64(stored.Size)),
	}

	switch desc.Kind {
	case domain.MediaKindImage:
		attrs = append(attrs, "width", desc.Width, "height", desc.Height)
	case domain.MediaKindSticker:
		attrs = append(attrs, "width", desc.Width, "height", desc.Height, "animated", desc.IsAnimated, "avatar", desc.IsAvatar)
	case domain.MediaKindVideo:
		attrs = append(attrs, "duration_seconds", desc.DurationSeconds, "width", desc.Width, "height", desc.Height)
	case domain.MediaKindAudio:
		attrs = append(attrs, "duration_seconds", desc.DurationSeconds, "ptt", desc.PTT)
	case domain.MediaKindDocument:
		attrs = append(attrs, "original_name", desc.DeclaredFileName)
		if desc.PageCount > 0 {
			attrs = append(attrs, "page_count", desc.PageCount)
		}
	}

	s.logger.Info("Media saved", attrs...)
}
