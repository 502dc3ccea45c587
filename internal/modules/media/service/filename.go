package service

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
)

// maxFilenameBytes leaves room for the "<stamp>_" prefix under the 255 byte
// name limit common to ext4, APFS and NTFS.
const maxFilenameBytes = 255 - len("-9223372036854775808_")

// FileName derives the stored filename for a media attachment. Documents
// with a declared name keep it behind the stamp; everything else is named
// by stamp and the mimetype subtype.
func FileName(kind domain.MediaKind, mimetype, declaredName string, stamp int64) string {
	if kind == domain.MediaKindDocument {
		if safe := sanitizeFilename(declaredName); safe != "" {
			return fmt.Sprintf("%d_%s", stamp, safe)
		}
	}
	if mimetype == "" {
		mimetype = kind.DefaultMimetype()
	}
	return fmt.Sprintf("%d.%s", stamp, extensionFromMimetype(mimetype))
}

// extensionFromMimetype returns the subtype of a mimetype, without parameters:
// "audio/ogg; codecs=opus" gives "ogg".
func extensionFromMimetype(mimetype string) string {
	_, sub, found := strings.Cut(mimetype, "/")
	if !found {
		return "unknown"
	}
	sub, _, _ = strings.Cut(sub, ";")
	sub = sanitizeFilename(strings.TrimSpace(sub))
	if sub == "" {
		return "unknown"
	}
	return sub
}

// sanitizeFilename strips path separators and other unsafe characters and
// bounds the length, keeping the extension when it has to truncate.
func sanitizeFilename(name string) string {
	if name == "" {
		return ""
	}

	var result []rune
	for _, r := range name {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			result = append(result, '_')
		case unicode.IsPrint(r):
			result = append(result, r)
		}
	}

	filename := strings.TrimLeft(string(result), ".")
	if len(filename) <= maxFilenameBytes {
		return filename
	}
	ext := filepath.Ext(filename)
	if len(ext) >= maxFilenameBytes {
		return truncateBytes(filename, maxFilenameBytes)
	}
	stem := strings.TrimSuffix(filename, ext)
	return truncateBytes(stem, maxFilenameBytes-len(ext)) + ext
}

// truncateBytes cuts s to at most n bytes without splitting a rune.
func truncateBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
