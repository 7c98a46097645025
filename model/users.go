package model

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

type User struct {
	ID               int       `json:"id"`
	Name             string    `json:"name" validate:"required,min=1,max=64"`
	Email            string    `json:"email" validate:"required,email"`
	Password         string    `json:"password,omitempty" validate:"required,min=6"`
	ProfilePicture   string    `json:"profilePicture"`
	Bio              string    `json:"bio"`
	NativeLanguage   string    `json:"nativeLanguage"`
	LearningLanguage string    `json:"learningLanguage"`
	Location         string    `json:"location"`
	Onboarded        bool      `json:"onboarded"`
	CreatedAt        time.Time `json:"createdAt"`
}

type UserToken struct {
	UserID string `json:"id"`
	jwt.StandardClaims
}

type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Onboarding struct {
	Bio              string `json:"bio" validate:"required"`
	NativeLanguage   string `json:"nativeLanguage" validate:"required"`
	LearningLanguage string `json:"learningLanguage" validate:"required"`
	Location         string `json:"location" validate:"required"`
}

// UserSummary is the public slice of a profile shown next to friend
// requests and friend lists.
type UserSummary struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	ProfilePicture   string `json:"profilePicture"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
}
