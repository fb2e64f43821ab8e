package models

// OrderSequence is the single-row counter backing external order numbers.
// It is incremented with UPDATE ... RETURNING before a checkout session is
// created, so the reserved number can ride in the provider metadata.
type OrderSequence struct {
	ID    int   `gorm:"column:id;primaryKey"`
	Value int64 `gorm:"column:value;not null"`
}
