package tasks

import "time"

type Task struct {
	ID         int       `json:"id"`
	Text       string    `json:"text"`
	Completed  bool      `json:"completed"`
	Date       string    `json:"date,omitempty"`
	Time       string    `json:"time,omitempty"`
	Category   string    `json:"category"`
	CustomList *string   `json:"customList"`
	Difficulty string    `json:"difficulty,omitempty"`
	Link       string    `json:"link,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ValidCategory(c string) bool {
	switch c {
	case "work", "personal", "essential", "code":
		return true
	default:
		return false
	}
}
