package model

import "time"

type User struct {
	ID         int64     `json:"id"`
	TelegramID int64     `json:"telegram_id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	IsWorker   bool      `json:"is_worker"`
	CreatedAt  time.Time `json:"created_at"`
}
