package models

import (
    "time"

    "gorm.io/gorm"
)

type User struct {
    gorm.Model
    UserID   string `gorm:"uniqueIndex;not null"` // stable public identifier (uuid)
    Email    string `gorm:"uniqueIndex;not null"`
    Password string `gorm:"not null"`
    Username string

    // Health profile. Weight and Birthday must be set before drinks
    // can be logged against the account.
    Birthday        time.Time
    WeightKg        float64
    Smoker          bool
    ExercisePerWeek int

    // Cumulative impact metrics. Only the accrual commit writes these.
    NeuronsKilled float64
    LifeLost      float64 // days

    // Bumped on every accrual commit; guards against lost updates.
    Version int64 `gorm:"not null;default:0"`
}
