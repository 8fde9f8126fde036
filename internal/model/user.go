// Package model defines the rows stored by the book request service and the
// shape returned to API clients.
package model

// User is someone who has requested at least one book.
//
// Users are identified by their email address and are created lazily the
// first time an unseen email asks for a book that exists in the catalog.
// There is no sign-up flow and no way to update or delete a user through the API.
type User struct {
	ID    int64  `json:"id"    db:"id"`
	Email string `json:"email" db:"email"` // UNIQUE in the users table
}
