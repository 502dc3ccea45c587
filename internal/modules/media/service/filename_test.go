package service

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
)

func TestFileName(t *testing.T) {
	const stamp = 1738975201123
	tests := []struct {
		name     string
		kind     domain.MediaKind
		mimetype string
		declared string
		want     string
	}{
		{"image png", domain.MediaKindImage, "image/png", "", "1738975201123.png"},
		{"image without mimetype", domain.MediaKindImage, "", "", "1738975201123.unknown"},
		{"document with declared name", domain.MediaKindDocument, "", "report.pdf", "1738975201123_report.pdf"},
		{"document without declared name", domain.MediaKindDocument, "application/pdf", "", "1738975201123.pdf"},
		{"declared name ignored for non-documents", domain.MediaKindVideo, "video/mp4", "clip.mov", "1738975201123.mp4"},
		{"mimetype parameters dropped", domain.MediaKindAudio, "audio/ogg; codecs=opus", "", "1738975201123.ogg"},
		{"declared name with separators", domain.MediaKindDocument, "", "../etc/passwd", "1738975201123__etc_passwd"},
		{"mimetype without subtype", domain.MediaKindSticker, "webp", "", "1738975201123.unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FileName(tt.kind, tt.mimetype, tt.declared, stamp); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileName_Deterministic(t *testing.T) {
	a := FileName(domain.MediaKindImage, "image/jpeg", "", 42)
	b := FileName(domain.MediaKindImage, "image/jpeg", "", 42)
	if a != b {
		t.Fatalf("same inputs gave %q and %q", a, b)
	}
}

func TestFileName_DistinctStampsNeverCollide(t *testing.T) {
	seen := make(map[string]bool)
	for stamp := int64(1000); stamp < 1500; stamp++ {
		for _, kind := range []domain.MediaKind{domain.MediaKindImage, domain.MediaKindDocument} {
			name := FileName(kind, "image/jpeg", "a.pdf", stamp)
			key := kind.String() + "/" + name
			if seen[key] {
				t.Fatalf("collision at stamp %d: %s", stamp, name)
			}
			seen[key] = true
		}
	}
}

func TestSanitizeFilename_Truncates(t *testing.T) {
	long := strings.Repeat("a", 300) + ".pdf"
	got := sanitizeFilename(long)
	if len(got) != maxFilenameBytes {
		t.Fatalf("expected %d bytes, got %d", maxFilenameBytes, len(got))
	}
	if !strings.HasSuffix(got, ".pdf") {
		t.Fatalf("extension lost: %q", got[len(got)-8:])
	}
}

func TestFileName_MultiByteDeclaredNameFitsNameLimit(t *testing.T) {
	declared := strings.Repeat("報", 120) + ".pdf"
	got := FileName(domain.MediaKindDocument, "", declared, 1738975201123)
	if len(got) > 255 {
		t.Fatalf("name is %d bytes, over the 255 byte limit", len(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation split a rune: %q", got)
	}
	if !strings.HasPrefix(got, "1738975201123_報") || !strings.HasSuffix(got, "報.pdf") {
		t.Fatalf("unexpected name %q", got)
	}
}

func TestTruncateBytes_RuneBoundary(t *testing.T) {
	if got := truncateBytes("aé", 2); got != "a" {
		t.Fatalf("got %q, want %q", got, "a")
	}
	if got := truncateBytes("abc", 5); got != "abc" {
		t.Fatalf("got %q, want %q", got, "abc")
	}
}
