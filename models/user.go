package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. Role is never settable through the signup or
// profile-update paths; admins are promoted by direct data mutation.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User is the sole credential-bearing entity. Password always holds a
// bcrypt digest, never plaintext. The ResetPassword* and Otp* fields
// belong to the OTP password-reset subsystem.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	School   string             `bson:"school" json:"school"`
	Branch   string             `bson:"branch" json:"branch"`
	Semester string             `bson:"semester" json:"semester"`
	Phone    string             `bson:"phone" json:"phone"`
	Role     string             `bson:"role" json:"role"`

	ResetPasswordOTP     string     `bson:"resetPasswordOTP,omitempty" json:"-"`
	ResetPasswordExpires *time.Time `bson:"resetPasswordExpires,omitempty" json:"-"`
	OtpRequestCount      int        `bson:"otpRequestCount,omitempty" json:"-"`
	LastOtpRequest       *time.Time `bson:"lastOtpRequest,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
