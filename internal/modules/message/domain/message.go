package domain

import "time"

// InboundEvent is one live message notification taken from the session.
type InboundEvent struct {
	ID          string
	ChatID      string
	SenderID    string
	DisplayName string
	Timestamp   int64 // epoch seconds
	Payload     Payload
}

// Payload is the content of an InboundEvent. Exactly one of Text, Image,
// Video, Sticker, Document, Audio or Unsupported.
type Payload interface {
	payload()
}

// MediaRef is an opaque token the session library resolves into a
// decrypted content stream.
type MediaRef any

// Media carries the fields every attachment kind shares.
type Media struct {
	Mimetype   string
	FileLength uint64
	Ref        MediaRef
}

type Text struct {
	Body string
}

type Image struct {
	Media
	Width   uint32
	Height  uint32
	Caption string
}

type Video struct {
	Media
	Width   uint32
	Height  uint32
	Seconds uint32
	Caption string
}

type Sticker struct {
	Media
	Width      uint32
	Height     uint32
	IsAnimated bool
	IsAvatar   bool
}

type Document struct {
	Media
	FileName  string
	PageCount uint32
}

type Audio struct {
	Media
	Seconds uint32
	PTT     bool
}

// Unsupported is any content this agent does not capture (locations,
// contacts, polls, reactions and so on). Type is a short label for logs.
type Unsupported struct {
	Type string
}

func (Text) payload()        {}
func (Image) payload()       {}
func (Video) payload()       {}
func (Sticker) payload()     {}
func (Document) payload()    {}
func (Audio) payload()       {}
func (Unsupported) payload() {}

// LogLine is a formatted append-only record and the log it belongs to.
// Text carries its own trailing newline.
type LogLine struct {
	Target LogTarget
	Text   string
}

// DeletionRecord is written to the deletion log, one JSON object per line.
type DeletionRecord struct {
	Kind      DeletionKind `json:"kind"`
	MessageID string       `json:"message_id"`
	ChatID    string       `json:"chat_id"`
	SenderID  string       `json:"sender_id,omitempty"`
	FromMe    bool         `json:"from_me"`
	DeletedBy string       `json:"deleted_by,omitempty"`
	DeletedAt time.Time    `json:"deleted_at"`
}
