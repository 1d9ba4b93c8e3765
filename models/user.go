package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultAvatarURL = "https://res.cloudinary.com/savora/image/upload/avatars/avatar_default.png"

// User is an end customer. Password is always the bcrypt hash; plaintext
// never reaches the document (hashed at registration and password change).
type User struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	PhoneNumber   string             `json:"phonenumber,omitempty" bson:"phonenumber,omitempty"`
	Password      string             `json:"-" bson:"password"`
	Gender        string             `json:"gender" bson:"gender"` // female | male | other
	Role          []string           `json:"role" bson:"role"`     // user | manager | admin | shipper
	Avatar        Image              `json:"avatar" bson:"avatar"`
	RefreshToken  string             `json:"-" bson:"refreshToken,omitempty"`
	RefreshExpiry time.Time          `json:"-" bson:"refreshExpiry,omitempty"`
	LastLogin     time.Time          `json:"-" bson:"lastLogin,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NewUser fills the defaults the schema used to apply implicitly.
func NewUser(name, email, phone, gender, passwordHash string) User {
	now := time.Now()
	if gender == "" {
		gender = "other"
	}
	return User{
		Name:        name,
		Email:       email,
		PhoneNumber: phone,
		Password:    passwordHash,
		Gender:      gender,
		Role:        []string{"user"},
		Avatar:      Image{URL: defaultAvatarURL},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Employee is back-office staff managed by admins.
type Employee struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	PhoneNumber string             `json:"phonenumber,omitempty" bson:"phonenumber,omitempty"`
	Password    string             `json:"-" bson:"password"`
	Gender      string             `json:"gender" bson:"gender"`
	Role        []string           `json:"role" bson:"role"`
	Avatar      Image              `json:"avatar" bson:"avatar"`
	Status      string             `json:"status" bson:"status"` // ACTIVE | BLOCKED
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
