package domain

import (
	"fmt"
	"strings"
)

type UserType string

const (
	UserTypeBrand      UserType = "brand"
	UserTypeInfluencer UserType = "influencer"
)

func ParseUserType(v string) (UserType, error) {
	switch t := UserType(strings.ToLower(strings.TrimSpace(v))); t {
	case UserTypeBrand, UserTypeInfluencer:
		return t, nil
	default:
		return "", fmt.Errorf("%w: user type must be brand or influencer", ErrInvalidInput)
	}
}

// InferUserType classifies an account by its e-mail when no type is given:
// addresses mentioning "brand" belong to brands.
func InferUserType(email string) UserType {
	if strings.Contains(strings.ToLower(email), "brand") {
		return UserTypeBrand
	}
	return UserTypeInfluencer
}

type User struct {
	UserID string   `json:"user_id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Type   UserType `json:"type"`
}
