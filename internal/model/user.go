package model

import "time"

// Role is the user's capability level
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleStaff   Role = "STAFF"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleStaff
}

// UserStatus is the approval state of an account. Staff auto-approve on
// registration; managers stay pending until an admin approves them.
type UserStatus string

const (
	StatusPending  UserStatus = "PENDING"
	StatusApproved UserStatus = "APPROVED"
	StatusRejected UserStatus = "REJECTED"
)

func (s UserStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// User is an account with a role and an approval status
type User struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	Username  string     `json:"username" gorm:"type:varchar(100);unique;not null"`
	Email     string     `json:"email" gorm:"type:varchar(255);unique;not null"`
	Password  string     `json:"-" gorm:"type:varchar(255);not null"`
	Role      Role       `json:"role" gorm:"type:varchar(20);not null"`
	Status    UserStatus `json:"status" gorm:"type:varchar(20);not null;default:PENDING"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
