package models

import "time"

// IdempotencyKey remembers a mutating request by its Idempotency-Key header.
// A record with ResponseStatus 0 is still pending; once the handler succeeds the
// response is kept so a retried request gets the same answer.
type IdempotencyKey struct {
	ID          uint   `gorm:"primaryKey"`
	Key         string `gorm:"column:idempotency_key;size:128;uniqueIndex"`
	RequestHash string `gorm:"size:64;not null"`
	Method      string `gorm:"size:10"`
	Path        string `gorm:"size:255"`

	ResponseStatus int
	ContentType    string `gorm:"size:100"`
	ResponseBody   []byte
	Replays        int `gorm:"not null;default:0"`

	CreatedAt   time.Time
	CompletedAt *time.Time
}

// Completed reports whether a response has been stored.
func (k *IdempotencyKey) Completed() bool {
	return k.ResponseStatus != 0
}
