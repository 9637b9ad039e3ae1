package domain

// Location houses zero or more bookable rooms. Names are unique.
type Location struct {
	ID   int64
	Name string
}

// Room is a bookable room within a Location. Names are unique across all
// locations. Images is filled at read time by scanning the upload store for
// keys carrying the room's prefix; it is never persisted.
type Room struct {
	ID             int64
	Name           string
	Description    string
	Capacity       int
	BookingContact string
	BookingEmail   string
	LocationID     int64
	Images         []string
}

// User is a login account. Email is the primary key and login identifier.
// PwHash is the credential engine's digest of the password and Salt; the
// plaintext is never stored.
type User struct {
	Email     string
	FirstName string
	LastName  string
	PwHash    string
	Salt      string
}

// DisplayName returns the user's full name for messages and page headers.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// Authenticatable is anything a session can be established for. It exposes a
// stable identity string used to look the principal up on each request.
type Authenticatable interface {
	AuthID() string
}

// AuthID implements Authenticatable; users are identified by email.
func (u *User) AuthID() string {
	return u.Email
}
