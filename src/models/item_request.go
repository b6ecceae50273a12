package models

import (
	"time"

	"shareit/src/types"
)

type ItemRequest struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Description string    `gorm:"size:2048;not null" json:"description"`
	RequestorID uint      `gorm:"not null;index" json:"requestor_id"`
	Created     time.Time `gorm:"not null;index" json:"created"`

	Requestor *User `gorm:"foreignKey:RequestorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *ItemRequest) ToResponse(items []Item) types.APIResponseItemRequest {
	res := types.APIResponseItemRequest{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.RequestorID,
		Created:     types.NewLocalDateTime(r.Created),
		Items:       make([]types.APIResponseRequestedItem, 0, len(items)),
	}
	for i := range items {
		res.Items = append(res.Items, items[i].ToRequestedItem())
	}
	return res
}
