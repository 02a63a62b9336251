package entity

import (
	"time"
)

// Invocation is one journaled command call. It never carries credentials,
// signatures or request bodies.
type Invocation struct {
	Id           int64  `gorm:"primaryKey;autoIncrement"`
	Command      string `gorm:"index"`
	Method       string
	Path         string
	Succeeded    bool `gorm:"index"`
	StatusCode   int  // 0 when no HTTP response was received
	ErrorCode    string
	ErrorMessage string
	DurationMs   int64
	CreatedAt    time.Time `gorm:"index"`
}
