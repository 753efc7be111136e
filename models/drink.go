package models

import (
    "time"

    "gorm.io/gorm"
)

// One logged drink. Rows are append-only: drinks are never edited or
// deleted once committed.
type Drink struct {
    gorm.Model
    UserID string `gorm:"index;not null"` // FK → users.user_id

    Name         string    `gorm:"not null"`
    Quantity     float64
    DrankAt      time.Time // client-supplied timestamp
    AlcoholGrams float64
    SugarGrams   float64   // 0 when the client omits it
}
