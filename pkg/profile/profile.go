package profile

import (
	"encoding/json"
	"errors"
	"time"
)

// CreatorStatus is the review state of a creator application.
type CreatorStatus string

const (
	CreatorStatusPending  CreatorStatus = "pending"
	CreatorStatusApproved CreatorStatus = "approved"
	CreatorStatusRejected CreatorStatus = "rejected"
)

// SocialLink is a creator's public social media reference.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Legal records the creator's accepted agreements.
type Legal struct {
	TermsOfService bool `json:"termsOfService"`
	LegallyAnAdult bool `json:"legallyAnAdult"`
}

// CreatorProfile is the creator application attached to a user, if any.
type CreatorProfile struct {
	DisplayName string        `json:"displayName"`
	Username    string        `json:"username"`
	Bio         string        `json:"bio,omitempty"`
	Status      CreatorStatus `json:"status"`
	SocialMedia []SocialLink  `json:"socialMedia,omitempty"`
	Legal       *Legal        `json:"legal,omitempty"`
}

// User is the profile snapshot of a platform account. Field names follow the
// backend's wire format so the same JSON round-trips through the profile
// cookie and the profile endpoint.
type User struct {
	ID             string          `json:"id"`
	Email          string          `json:"email"`
	Name           string          `json:"name"`
	Provider       string          `json:"provider,omitempty"`
	ProviderID     string          `json:"providerId,omitempty"`
	Status         string          `json:"status,omitempty"`
	ReferralCode   string          `json:"referralCode,omitempty"`
	CreatorProfile *CreatorProfile `json:"creatorProfile,omitempty"`
	CreatedAt      time.Time       `json:"createdAt,omitzero"`
	UpdatedAt      time.Time       `json:"updatedAt,omitzero"`
}

// IsApprovedCreator reports whether the user carries an approved creator
// application. Nil users and users without an application are not creators.
func (u *User) IsApprovedCreator() bool {
	return u != nil && u.CreatorProfile != nil && u.CreatorProfile.Status == CreatorStatusApproved
}

// EncodeSnapshot serializes a user for the profile cookie.
func EncodeSnapshot(u *User) (string, error) {
	if u == nil {
		return "", ErrMissingUser
	}
	data, err := json.Marshal(u)
	if err != nil {
		return "", errors.Join(ErrMalformedSnapshot, err)
	}
	return string(data), nil
}

// DecodeSnapshot parses a serialized snapshot back into a user. It is the
// exact inverse of EncodeSnapshot: callers reading a cookie-escaped value
// unescape it first (the storage layer that escaped it owns that step).
func DecodeSnapshot(s string) (*User, error) {
	if s == "" {
		return nil, ErrMalformedSnapshot
	}

	var u User
	if err := json.Unmarshal([]byte(s), &u); err != nil {
		return nil, errors.Join(ErrMalformedSnapshot, err)
	}
	return &u, nil
}
