package models

import "time"

// Comment is a note attached to a task.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	TaskID    string    `json:"task"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
