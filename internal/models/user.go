package models

import "time"

type User struct {
	ID          int           `json:"id"`
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	Email       string        `json:"email"`
	Username    string        `json:"username"`
	Password    string        `json:"-"` // argon2id hash, never serialized
	Image       Image         `json:"image"`
	KnownMedias []*KnownMedia `json:"knownMedias"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}
