package model

import "time"

// Friend request lifecycle: pending -> accepted | declined.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

type FriendRequest struct {
	ID         int       `json:"id"`
	SenderID   int       `json:"senderID"`
	ReceiverID int       `json:"receiverID"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FriendRequestWithUser joins a request with the profile of the other
// party: the sender for incoming requests, the receiver for outgoing ones.
type FriendRequestWithUser struct {
	FriendRequest
	User UserSummary `json:"user"`
}
