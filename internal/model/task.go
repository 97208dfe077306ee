package model

import "time"

// Task задача, опубликованная заказчиком
type Task struct {
	ID        int64     `json:"id"`
	PosterID  int64     `json:"poster_id"`
	WorkerID  *int64    `json:"worker_id"` // указатель - nil, если исполнитель не назначен
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
