package model

import "time"

// BookRequest records that a user wants a book.
//
// At most one BookRequest exists per (UserID, BookID) pair. The database
// enforces this with a UNIQUE constraint, so asking for the same book twice
// returns the original request instead of creating a second one.
type BookRequest struct {
	ID        int64     `json:"id"        db:"id"`
	UserID    int64     `json:"userId"    db:"user_id"`
	BookID    int64     `json:"bookId"    db:"book_id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// RequestView is the shape every request endpoint returns to the client:
//
//	{"email":"fake@email.com","title":"Great Book Title 1","id":1,"timestamp":"2026-10-19T09:12:44.123456Z"}
//
// It flattens the request together with its user's email and its book's title,
// so clients never have to resolve the foreign keys themselves.
type RequestView struct {
	Email     string    `json:"email"`
	Title     string    `json:"title"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}
