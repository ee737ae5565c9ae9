package models

// Destination is a seeded reference row with center coordinates for
// the map payload builder.
type Destination struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Lat         float64 `gorm:"not null" json:"lat"`
	Lng         float64 `gorm:"not null" json:"lng"`
	Description string  `gorm:"size:255" json:"description,omitempty"`
}
