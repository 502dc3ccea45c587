package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
)

// e.g. "8 February 2025 at 6:10:01 am"
const timestampLayout = "2 January 2006 at 3:04:05 pm"

const (
	unknownSender = "unknown"
	unknownName   = "Unknown"
	unknownTime   = "unknown time"
)

// FormatTimestamp renders epoch seconds as the human timestamp used in the chat log.
func FormatTimestamp(epochSeconds int64, loc *time.Location) string {
	if epochSeconds <= 0 {
		return unknownTime
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(epochSeconds, 0).In(loc).Format(timestampLayout)
}

// lineEscaper keeps every logged message on one physical line.
var lineEscaper = strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\r`)

func textLine(ts, sender, name, body string) string {
	return fmt.Sprintf("[%s] %s %s: %s\n", ts, lineEscaper.Replace(sender), lineEscaper.Replace(name), lineEscaper.Replace(body))
}

func unsupportedLine(ts, sender, name string) string {
	return textLine(ts, sender, name, "Unsupported message type")
}

func mediaLine(ts, sender, name string, desc domain.MediaDescriptor, savedAs string) string {
	body := "Sent " + desc.Kind.String()
	if desc.Kind == domain.MediaKindDocument && desc.DeclaredFileName != "" {
		body += fmt.Sprintf(" (%s)", desc.DeclaredFileName)
	}
	if savedAs == "" {
		body += " [Not saved]"
	} else {
		body += fmt.Sprintf(" [Saved as: %s]", savedAs)
	}
	return textLine(ts, sender, name, body)
}

func errorLine(ts string, err error) string {
	return fmt.Sprintf("[%s] Error processing message: %s\n", ts, lineEscaper.Replace(fmt.Sprint(err)))
}
