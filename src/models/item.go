package models

import (
	"shareit/src/types"
)

type Item struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"size:1024;not null" json:"description"`
	Available   bool   `gorm:"not null" json:"available"`
	OwnerID     uint   `gorm:"not null;index" json:"owner_id"`
	RequestID   *uint  `gorm:"index" json:"request_id,omitempty"`

	Owner   *User        `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	Request *ItemRequest `gorm:"foreignKey:RequestID;constraint:OnDelete:SET NULL" json:"-"`

	types.Timestamps
}

// ToResponse renders the item without booking enrichment and with no comments.
func (i *Item) ToResponse() types.APIResponseItem {
	return types.APIResponseItem{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		OwnerID:     i.OwnerID,
		RequestID:   i.RequestID,
		Comments:    []types.APIResponseComment{},
	}
}

func (i *Item) ToRequestedItem() types.APIResponseRequestedItem {
	res := types.APIResponseRequestedItem{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		OwnerID:     i.OwnerID,
	}
	if i.RequestID != nil {
		res.RequestID = *i.RequestID
	}
	return res
}
