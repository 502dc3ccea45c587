package errors

import (
	"errors"

	"github.com/samber/oops"
)

var (
	ErrNoMedia            = errors.New("payload carries no media")
	ErrEmptyStream        = errors.New("media stream produced no bytes")
	ErrLoggedOut          = errors.New("session logged out")
	ErrReconnectExhausted = errors.New("reconnect attempts exhausted")
	ErrSessionClosed      = errors.New("session closed")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// Error codes attached with oops.Code.
const (
	CodeDownload  = "download_error"
	CodeIO        = "io_error"
	CodeMalformed = "malformed_event"
	CodeSession   = "session_error"
)

// Download starts an oops builder for stream open, decrypt or write failures.
func Download() oops.OopsErrorBuilder {
	return oops.In("media").Code(CodeDownload)
}

// IO starts an oops builder for log append and directory creation failures.
func IO() oops.OopsErrorBuilder {
	return oops.In("chatlog").Code(CodeIO)
}

// Malformed starts an oops builder for session events missing required fields.
func Malformed() oops.OopsErrorBuilder {
	return oops.In("whatsapp").Code(CodeMalformed)
}

// Session starts an oops builder for session bootstrap failures.
func Session() oops.OopsErrorBuilder {
	return oops.In("session").Code(CodeSession)
}

func IsDownloadError(err error) bool { return hasCode(err, CodeDownload) }

func IsIOError(err error) bool { return hasCode(err, CodeIO) }

func hasCode(err error, code string) bool {
	e, ok := oops.AsOops(err)
	return ok && e.Code() == code
}
