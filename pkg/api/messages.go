package api

import "github.com/shopspring/decimal"

// UserService

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5,max=24"`
	Name     string `json:"name,omitempty" validate:"max=100"`
	Lastname string `json:"lastname,omitempty" validate:"max=100"`
}

type RegisterResponse struct {
	User *User `json:"user"`
}

type ActivateRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

type ActivateResponse struct {
	User *User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// UpdateUserRequest changes the caller's profile. Nil fields are unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Lastname *string `json:"lastname,omitempty" validate:"omitempty,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=5,max=24"`
}

type UpdateUserResponse struct {
	User *User `json:"user"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

// MeetingService

type CreateMeetingRequest struct {
	Name string `json:"name" validate:"required,max=200"`
	Date string `json:"date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type CreateMeetingResponse struct {
	Meeting *Meeting `json:"meeting"`
}

type ListMeetingsRequest struct{}

type ListMeetingsResponse struct {
	Meetings []*MeetingSummary `json:"meetings"`
}

type GetMeetingRequest struct {
	MeetingID string `json:"meeting_id" validate:"required"`
}

type GetMeetingResponse struct {
	Meeting *MeetingSummary `json:"meeting"`
}

type UpdateMeetingRequest struct {
	MeetingID string  `json:"meeting_id" validate:"required"`
	Name      *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Date      *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

type UpdateMeetingResponse struct {
	Meeting *Meeting `json:"meeting"`
}

type DeleteMeetingsRequest struct {
	MeetingIDs []string `json:"meeting_ids" validate:"required,min=1,dive,required"`
}

type DeleteMeetingsResponse struct {
	Deleted int `json:"deleted"`
}

// ParticipantService

type AddParticipantsRequest struct {
	MeetingID string   `json:"meeting_id" validate:"required"`
	UserIDs   []string `json:"user_ids" validate:"required,min=1,dive,required"`
}

type AddParticipantsResponse struct {
	Participants []*Participant `json:"participants"`
}

type JoinMeetingsRequest struct {
	MeetingIDs []string `json:"meeting_ids" validate:"required,min=1,dive,required"`
}

type JoinMeetingsResponse struct {
	Participants []*Participant `json:"participants"`
}

type LeaveMeetingsRequest struct {
	MeetingIDs []string `json:"meeting_ids" validate:"required,min=1,dive,required"`
}

type LeaveMeetingsResponse struct{}

type RemoveParticipantsRequest struct {
	MeetingID string   `json:"meeting_id" validate:"required"`
	UserIDs   []string `json:"user_ids" validate:"required,min=1,dive,required"`
}

type RemoveParticipantsResponse struct {
	Removed int64 `json:"removed"`
}

// FeedbackService

type CreateFeedbackRequest struct {
	MeetingID string `json:"meeting_id" validate:"required"`
	Comment   string `json:"comment" validate:"required,max=2000"`
}

type CreateFeedbackResponse struct {
	Feedback *Feedback `json:"feedback"`
}

type UpdateFeedbackRequest struct {
	FeedbackID string `json:"feedback_id" validate:"required"`
	Comment    string `json:"comment" validate:"required,max=2000"`
}

type UpdateFeedbackResponse struct {
	Feedback *Feedback `json:"feedback"`
}

type DeleteFeedbackRequest struct {
	FeedbackID string `json:"feedback_id" validate:"required"`
}

type DeleteFeedbackResponse struct{}

type ListMeetingFeedbackRequest struct {
	MeetingID string `json:"meeting_id" validate:"required"`
}

type ListMeetingFeedbackResponse struct {
	Entries []*FeedbackEntry `json:"entries"`
}

type ListMyFeedbackRequest struct{}

type ListMyFeedbackResponse struct {
	Entries []*FeedbackEntry `json:"entries"`
}

// CheckService

// CreatePurchaseRequest records an item and splits it. An empty
// ParticipantIDs splits across every participant of the meeting.
type CreatePurchaseRequest struct {
	MeetingID      string          `json:"meeting_id" validate:"required"`
	ItemName       string          `json:"item_name" validate:"required,max=200"`
	Price          decimal.Decimal `json:"price"`
	Quantity       decimal.Decimal `json:"quantity"`
	ParticipantIDs []string        `json:"participant_ids,omitempty" validate:"dive,required"`
}

type CreatePurchaseResponse struct {
	Item   *Item    `json:"item"`
	Checks []*Check `json:"checks"`
}

// UpdatePurchaseRequest edits an item. Nil fields are unchanged.
type UpdatePurchaseRequest struct {
	MeetingID string           `json:"meeting_id" validate:"required"`
	ItemID    string           `json:"item_id" validate:"required"`
	Name      *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Quantity  *decimal.Decimal `json:"quantity,omitempty"`
}

type UpdatePurchaseResponse struct {
	Item   *Item    `json:"item"`
	Checks []*Check `json:"checks"`
}

type DeletePurchaseRequest struct {
	MeetingID string `json:"meeting_id" validate:"required"`
	ItemID    string `json:"item_id" validate:"required"`
}

type DeletePurchaseResponse struct{}

type RemoveFromPurchaseRequest struct {
	MeetingID      string   `json:"meeting_id" validate:"required"`
	ItemID         string   `json:"item_id" validate:"required"`
	ParticipantIDs []string `json:"participant_ids" validate:"required,min=1,dive,required"`
}

type RemoveFromPurchaseResponse struct {
	// Dissolved is true when the last participants were removed and the
	// item deleted.
	Dissolved bool     `json:"dissolved"`
	Checks    []*Check `json:"checks"`
}

type GetPersonalStatementRequest struct {
	MeetingID string `json:"meeting_id" validate:"required"`
}

type GetPersonalStatementResponse struct {
	Statement *Statement `json:"statement"`
}

type GetMeetingStatementRequest struct {
	MeetingID string `json:"meeting_id" validate:"required"`
}

type GetMeetingStatementResponse struct {
	Statements []*Statement `json:"statements"`
}
