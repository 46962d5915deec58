// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

// User represents an admin account for the village website.
//
// Field names follow the site's Indonesian schema: "nama" is the display
// name. Usernames are unique — the repository enforces this with a UNIQUE
// column and the service checks it before every insert/rename so the
// client gets a friendly message instead of a constraint error.
//
// WHY `json:"-"` ON Password?
// The password column holds a bcrypt hash, never plaintext. Tagging it
// with "-" means encoding/json can never serialize it, so every projection
// of a user (list, get, me) excludes the credential by construction rather
// than by each handler remembering to strip it.
type User struct {
	ID       int64  `json:"id"       db:"id"`
	Nama     string `json:"nama"     db:"nama"`
	Username string `json:"username" db:"username"`
	Password string `json:"-"        db:"password"` // bcrypt hash
}
