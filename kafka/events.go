package kafka

import "time"

// BookBorrowedEvent is emitted after a loan has been committed.
type BookBorrowedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	RecordID  uint      `json:"record_id"`
	BookID    uint      `json:"book_id"`
	UserID    uint      `json:"user_id"`
	DueDate   time.Time `json:"due_date"`
	Timestamp time.Time `json:"timestamp"`
}

// BookReturnedEvent is emitted after a return has been committed. LateFee
// is the final amount charged, zero for on-time returns.
type BookReturnedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	RecordID   uint      `json:"record_id"`
	BookID     uint      `json:"book_id"`
	UserID     uint      `json:"user_id"`
	LateFee    int64     `json:"late_fee"`
	ReturnDate time.Time `json:"return_date"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeBookBorrowed = "book.borrowed"
	EventTypeBookReturned = "book.returned"
)

// Kafka topics
const (
	TopicBookBorrowed = "book-borrowed"
	TopicBookReturned = "book-returned"
)
