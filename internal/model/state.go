package model

// State is the soft-delete flag carried by products and customers.
// Archived rows disappear from catalog listings but stay addressable
// from historical orders, GRN items and payments.
type State string

const (
	StateActive   State = "active"
	StateArchived State = "archived"
)
