package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adorzia/adorzia-backend/pkg/enums"
)

// Designer is the creator account whose products are sold on the marketplace.
// Ranks feed the display-only revenue-share calculator; the checkout pipeline
// only needs the id for the commission rows.
type Designer struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DisplayName    string               `gorm:"column:display_name;not null"`
	StandardRank   enums.StandardRank   `gorm:"column:standard_rank;type:text;not null;default:'apprentice'"`
	FoundationRank enums.FoundationRank `gorm:"column:foundation_rank;type:text;not null;default:'none'"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
