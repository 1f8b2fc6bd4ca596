package journal

import "time"

type Entry struct {
	ID        int       `json:"id"`
	Date      string    `json:"date"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
