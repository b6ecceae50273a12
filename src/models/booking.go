package models

import (
	"time"

	"shareit/src/types"
)

// Booking columns are start_date/end_date: "end" is reserved in Postgres.
type Booking struct {
	ID       uint                `gorm:"primarykey" json:"id"`
	Start    time.Time           `gorm:"column:start_date;not null;index" json:"start"`
	End      time.Time           `gorm:"column:end_date;not null;index" json:"end"`
	ItemID   uint                `gorm:"not null;index" json:"item_id"`
	BookerID uint                `gorm:"not null;index" json:"booker_id"`
	Status   types.BookingStatus `gorm:"size:16;not null;index" json:"status"`

	Item   *Item `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"item,omitempty"`
	Booker *User `gorm:"foreignKey:BookerID;constraint:OnDelete:CASCADE" json:"booker,omitempty"`
}

// ToResponse expects Item and Booker to be loaded.
func (b *Booking) ToResponse() types.APIResponseBooking {
	res := types.APIResponseBooking{
		ID:     b.ID,
		Start:  types.NewLocalDateTime(b.Start),
		End:    types.NewLocalDateTime(b.End),
		Status: b.Status,
	}
	if b.Item != nil {
		res.Item = b.Item.ToResponse()
	}
	if b.Booker != nil {
		res.Booker = b.Booker.ToResponse()
	}
	return res
}

func (b *Booking) ToShortResponse() *types.APIResponseBookingShort {
	return &types.APIResponseBookingShort{
		ID:       b.ID,
		BookerID: b.BookerID,
		Start:    types.NewLocalDateTime(b.Start),
		End:      types.NewLocalDateTime(b.End),
		Status:   b.Status,
	}
}
