package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user. ResetOTP and ResetOTPExpiration are
// either both set (an outstanding reset challenge) or both nil.
type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username           string             `bson:"username" json:"username"`
	Email              string             `bson:"email" json:"email"`
	PasswordHash       string             `bson:"passwordHash" json:"-"`
	ResetOTP           *string            `bson:"resetOtp,omitempty" json:"-"`
	ResetOTPExpiration *time.Time         `bson:"resetOtpExpiration,omitempty" json:"-"`
	CreatedAt          time.Time          `bson:"created_at" json:"created_at"`
}

// HasChallenge reports whether a reset code is outstanding.
func (u *User) HasChallenge() bool {
	return u.ResetOTP != nil && u.ResetOTPExpiration != nil
}

// Profile is the public view returned by the current-user endpoint.
type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
