package repository

import (
	"context"

	"github.com/reshetovitsme/wa-capture-agent/internal/modules/message/domain"
)

// Repository appends formatted lines to the append-only logs.
// Lines are never rewritten or removed once appended.
type Repository interface {
	Append(ctx context.Context, target domain.LogTarget, line string) error
	Close() error
}
