package model

import "time"

// Reminder is the payload handed to the notification collaborator for an
// overdue payment.
type Reminder struct {
	ID      string    `json:"id"`
	OrderID int64     `json:"order_id"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	DueDate time.Time `json:"due_date"`
	FireAt  time.Time `json:"fire_at"`
}
