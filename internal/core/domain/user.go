package domain

import "time"

// User is a directory member. Records are created on first GitHub sign-in and
// belong to at most one cohort.
type User struct {
	ID         string    `json:"_id"`
	Username   string    `json:"username"`
	FullName   string    `json:"fullName,omitempty"`
	GitURL     string    `json:"gitUrl"`
	Email      string    `json:"email,omitempty"`
	LinkedIn   string    `json:"linkedIn,omitempty"`
	AboutMe    string    `json:"aboutMe,omitempty"`
	UserAvatar string    `json:"userAvatar"`
	LastLogin  time.Time `json:"lastLogin"`
	CohortID   string    `json:"cohort,omitempty"`
}

// InCohort reports whether the user currently references a cohort.
func (u *User) InCohort() bool {
	return u.CohortID != ""
}

// Profile is the set of user-editable fields. A profile update overwrites all
// of them, empty values included.
type Profile struct {
	FullName string
	GitURL   string
	Email    string
	LinkedIn string
	AboutMe  string
}
