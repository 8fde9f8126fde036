package model

// Book is a catalog entry, identified by its unique title.
//
// Books are added by an administrator (bookctl seed, or SEED_FILE at start-up)
// and never change afterwards. The request endpoints only read them.
type Book struct {
	ID    int64  `json:"id"    db:"id"`
	Title string `json:"title" db:"title"`
}
