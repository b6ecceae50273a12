package main

type CreateUserRequestBody struct {
	Name  string `json:"name" binding:"notblank"`
	Email string `json:"email" binding:"notblank,email"`
}

type UpdateUserRequestBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type CreateItemRequestBody struct {
	Name        *string `json:"name" binding:"required,notblank"`
	Description *string `json:"description" binding:"required,notblank"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *uint   `json:"requestId" binding:"omitempty,gt=0"`
}

type UpdateItemRequestBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentRequestBody struct {
	Text string `json:"text" binding:"notblank"`
}

type CreateBookingRequestBody struct {
	ItemID *uint  `json:"itemId" binding:"required,gt=0"`
	Start  string `json:"start" binding:"required,bookabledate"`
	End    string `json:"end" binding:"required,bookabledate,gtdate=Start"`
}

type CreateItemRequestRequestBody struct {
	Description string `json:"description" binding:"notblank"`
}
