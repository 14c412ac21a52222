package models

// Domain models matching the database schema in db/migrations/0001_init.sql

// Role is the account type assigned at signup. It never changes afterwards.
type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

// ValidRole reports whether s is one of the two known roles.
func ValidRole(s string) bool {
	return s == string(RoleMentor) || s == string(RoleMentee)
}

// MatchStatus is the lifecycle state of a match request. Pending is the only
// state a request can leave; the other three are terminal.
type MatchStatus string

const (
	StatusPending   MatchStatus = "pending"
	StatusAccepted  MatchStatus = "accepted"
	StatusRejected  MatchStatus = "rejected"
	StatusCancelled MatchStatus = "cancelled"
)

type User struct {
	ID           int64   `json:"id" db:"id"`
	Email        string  `json:"email" db:"email"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Role         Role    `json:"role" db:"role"`
	Profile      Profile `json:"profile"`
	Created      int64   `json:"-" db:"created"`
	Updated      int64   `json:"-" db:"updated"`
}

// Profile carries the mutable presentation fields of a user. Skills is nil
// for mentees and non-nil (possibly empty) for mentors, so mentor responses
// always serialize a JSON array while mentee responses omit the field.
type Profile struct {
	Name     string    `json:"name" db:"name"`
	Bio      string    `json:"bio" db:"bio"`
	ImageURL string    `json:"imageUrl" db:"image_url"`
	Skills   *[]string `json:"skills,omitempty" db:"skills"`
}

type MatchRequest struct {
	ID       int64       `json:"id" db:"id"`
	MentorID int64       `json:"mentorId" db:"mentor_id"`
	MenteeID int64       `json:"menteeId" db:"mentee_id"`
	Message  string      `json:"message" db:"message"`
	Status   MatchStatus `json:"status" db:"status"`
	Created  int64       `json:"-" db:"created"`
}

// IncomingMatchRequest is a match request joined with the requesting
// mentee's identity, as shown in a mentor's incoming list.
type IncomingMatchRequest struct {
	MatchRequest
	MenteeName  string `json:"menteeName" db:"mentee_name"`
	MenteeEmail string `json:"menteeEmail" db:"mentee_email"`
}
