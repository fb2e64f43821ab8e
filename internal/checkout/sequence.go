package checkout

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	pkgerrors "github.com/adorzia/adorzia-backend/pkg/errors"
)

// NumberReserver hands out unique external order numbers.
type NumberReserver interface {
	Next(ctx context.Context) (string, error)
}

// SequenceReserver backs order numbers with the single-row order_sequences
// counter. The increment commits outside the checkout flow, so an abandoned
// session burns its number; gaps are acceptable, reuse is not.
type SequenceReserver struct {
	db     *gorm.DB
	prefix string
}

// NewSequenceReserver builds a reserver with the configured prefix.
func NewSequenceReserver(db *gorm.DB, prefix string) (*SequenceReserver, error) {
	if db == nil {
		return nil, fmt.Errorf("db required")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, fmt.Errorf("order number prefix required")
	}
	return &SequenceReserver{db: db, prefix: prefix}, nil
}

// Next atomically increments the counter and formats the order number.
func (r *SequenceReserver) Next(ctx context.Context) (string, error) {
	var value int64
	err := r.db.WithContext(ctx).
		Raw("UPDATE order_sequences SET value = value + 1 WHERE id = 1 RETURNING value").
		Scan(&value).Error
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reserving order number")
	}
	if value == 0 {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "order sequence row is missing")
	}
	return fmt.Sprintf("%s-%d", r.prefix, value), nil
}
