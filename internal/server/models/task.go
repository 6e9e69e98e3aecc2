package models

import "time"

// Task is a per-user todo record. UserID is set once at creation and never
// changes; every query against tasks filters by it.
type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"-"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}
