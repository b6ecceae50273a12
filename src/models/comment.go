package models

import (
	"time"

	"shareit/src/types"
)

type Comment struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	Text     string    `gorm:"size:2048;not null" json:"text"`
	ItemID   uint      `gorm:"not null;index" json:"item_id"`
	AuthorID uint      `gorm:"not null;index" json:"author_id"`
	Created  time.Time `gorm:"not null" json:"created"`

	Item   *Item `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

// ToResponse expects Author to be loaded.
func (c *Comment) ToResponse() types.APIResponseComment {
	res := types.APIResponseComment{
		ID:      c.ID,
		Text:    c.Text,
		ItemID:  c.ItemID,
		Created: types.NewLocalDateTime(c.Created),
	}
	if c.Author != nil {
		res.AuthorName = c.Author.Name
	}
	return res
}
