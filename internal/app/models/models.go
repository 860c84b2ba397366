package models

import "strings"

// Role defines the user role type
type Role string

const (
	RoleUser       Role = "USER"
	RoleInstructor Role = "INSTRUCTOR"
	RoleAdmin      Role = "ADMIN"
)

// Roles lists every known role
var Roles = []Role{RoleUser, RoleInstructor, RoleAdmin}

// ParseRole converts a raw value into a known role, ignoring case
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range Roles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// Sex of a user
type Sex string

const (
	SexMale   Sex = "MALE"
	SexFemale Sex = "FEMALE"
)

// ParseSex normalizes the value to upper case and checks it
func ParseSex(raw string) (Sex, bool) {
	s := Sex(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case SexMale, SexFemale:
		return s, true
	}
	return "", false
}

// EnrollmentStatus is the lifecycle state of an enrollment
type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "PENDING"
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentCancelled EnrollmentStatus = "CANCELLED"
)

// ParseEnrollmentStatus checks a raw status value
func ParseEnrollmentStatus(raw string) (EnrollmentStatus, bool) {
	s := EnrollmentStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case EnrollmentPending, EnrollmentActive, EnrollmentCompleted, EnrollmentCancelled:
		return s, true
	}
	return "", false
}
