package models

import (
	"shareit/src/types"
)

type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"size:512;not null;uniqueIndex:idx_users_email" json:"email"`

	types.Timestamps
}

func (u *User) ToResponse() types.APIResponseUser {
	return types.APIResponseUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
