package domain

import "time"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// RegistrationForm is what the register screen collects.
type RegistrationForm struct {
	FullName    string
	Email       string
	PhoneNumber string // as typed or display-formatted
	DateOfBirth time.Time
	Gender      Gender
}

// RegisterRequest is the POST /auth/register body.
type RegisterRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	DateOfBirth string `json:"dateOfBirth"` // YYYY-MM-DD
	Gender      Gender `json:"gender"`
}

type RegisterResult struct {
	Message     string `json:"message"`
	PhoneNumber string `json:"phoneNumber"`
}
