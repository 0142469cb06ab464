package models

import "time"

type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   *string   `json:"company"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewContact struct {
	Name    string
	Email   string
	Company *string
	Message string
}
