package domain

// MovieRequest is a user's ask for a title the catalog does not carry.
// Requests are relayed by email to the catalog admin and are not stored.
type MovieRequest struct {
	Nickname string
	Email    string
	Title    string
	Year     string
	Info     string
}
