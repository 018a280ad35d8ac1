package models

import "strings"

// Roles carried in access tokens.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// IsReviewerRole reports whether role may read and curate other students' work.
func IsReviewerRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleTeacher, RoleAdmin:
		return true
	default:
		return false
	}
}
