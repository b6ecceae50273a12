package types

import (
	"strings"
	"time"
)

type Timestamps struct {
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

type BookingStatus string

const (
	BOOKING_WAITING  BookingStatus = "WAITING"
	BOOKING_APPROVED BookingStatus = "APPROVED"
	BOOKING_REJECTED BookingStatus = "REJECTED"
	// Never assigned by any operation.
	BOOKING_CANCELED BookingStatus = "CANCELED"
)

// BookingState selects a subset of bookings relative to the current time or status.
type BookingState string

const (
	BOOKING_STATE_ALL      BookingState = "ALL"
	BOOKING_STATE_CURRENT  BookingState = "CURRENT"
	BOOKING_STATE_PAST     BookingState = "PAST"
	BOOKING_STATE_FUTURE   BookingState = "FUTURE"
	BOOKING_STATE_WAITING  BookingState = "WAITING"
	BOOKING_STATE_REJECTED BookingState = "REJECTED"
)

// ParseBookingState is case-insensitive. An empty value means ALL.
func ParseBookingState(s string) (BookingState, error) {
	if strings.TrimSpace(s) == "" {
		return BOOKING_STATE_ALL, nil
	}
	switch state := BookingState(strings.ToUpper(strings.TrimSpace(s))); state {
	case BOOKING_STATE_ALL, BOOKING_STATE_CURRENT, BOOKING_STATE_PAST, BOOKING_STATE_FUTURE, BOOKING_STATE_WAITING, BOOKING_STATE_REJECTED:
		return state, nil
	}
	return "", NewIllegalArgumentError("Unknown state: %s", s)
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type CreateUserRequestBody struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateUserRequestBody struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ItemRequestBody is used for both creation and partial update of an item.
type ItemRequestBody struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
	RequestID   *uint   `json:"requestId,omitempty"`
}

type CreateCommentRequestBody struct {
	Text string `json:"text"`
}

type CreateBookingRequestBody struct {
	ItemID uint          `json:"itemId"`
	Start  LocalDateTime `json:"start"`
	End    LocalDateTime `json:"end"`
}

type CreateItemRequestRequestBody struct {
	Description string `json:"description"`
}

type BookingStateQuery struct {
	State string `form:"state"`
}

type ApproveBookingQuery struct {
	Approved *bool `form:"approved" binding:"required"`
}

type SearchItemsQuery struct {
	Text string `form:"text"`
}

type APIResponseUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type APIResponseBookingShort struct {
	ID       uint          `json:"id"`
	BookerID uint          `json:"bookerId"`
	Start    LocalDateTime `json:"start"`
	End      LocalDateTime `json:"end"`
	Status   BookingStatus `json:"status"`
}

type APIResponseComment struct {
	ID         uint          `json:"id"`
	Text       string        `json:"text"`
	ItemID     uint          `json:"itemId"`
	AuthorName string        `json:"authorName"`
	Created    LocalDateTime `json:"created"`
}

type APIResponseItem struct {
	ID          uint                     `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Available   bool                     `json:"available"`
	OwnerID     uint                     `json:"ownerId"`
	RequestID   *uint                    `json:"requestId"`
	LastBooking *APIResponseBookingShort `json:"lastBooking"`
	NextBooking *APIResponseBookingShort `json:"nextBooking"`
	Comments    []APIResponseComment     `json:"comments"`
}

type APIResponseBooking struct {
	ID     uint            `json:"id"`
	Start  LocalDateTime   `json:"start"`
	End    LocalDateTime   `json:"end"`
	Status BookingStatus   `json:"status"`
	Item   APIResponseItem `json:"item"`
	Booker APIResponseUser `json:"booker"`
}

// APIResponseRequestedItem is an item listed in answer to an item request.
type APIResponseRequestedItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     uint   `json:"ownerId"`
	RequestID   uint   `json:"requestId"`
}

type APIResponseItemRequest struct {
	ID          uint                       `json:"id"`
	Description string                     `json:"description"`
	RequestorID uint                       `json:"requestorId"`
	Created     LocalDateTime              `json:"created"`
	Items       []APIResponseRequestedItem `json:"items"`
}

type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"description"`
}
