//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// MediaKind classifies a media attachment. Declaration order is the
// priority order used when a wire message could match more than one kind.
// ENUM(image,video,sticker,document,audio)
type MediaKind string

// LogTarget identifies one of the append-only logs
// ENUM(chat,deleted)
type LogTarget string

// DeletionKind tells how a message was removed
// ENUM(revoke,delete_for_me)
type DeletionKind string
