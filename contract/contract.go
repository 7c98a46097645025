package contract

import (
	"context"
	"errors"

	"github.com/vmarinova/Lingua-Link/model"
)

// Conflict errors surfaced by the repositories; the REST layer maps them
// to 400 responses.
var (
	ErrDuplicateEmail   = errors.New("a user with this email already exists")
	ErrAlreadyFriends   = errors.New("users are already friends")
	ErrDuplicateRequest = errors.New("a friend request between these users already exists")
	ErrAlreadyResolved  = errors.New("friend request is no longer pending")
)

type UserRepo interface {
	Create(user *model.User) (*model.User, error)
	Delete(id int) error
	FindByID(id int) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	CompleteOnboarding(id int, data *model.Onboarding) error
	// FindRecommended returns onboarded users excluding the given user and
	// everyone already in their friend list.
	FindRecommended(userID int) ([]model.User, error)
	FindFriends(userID int) ([]model.User, error)
}

type FriendRequestRepo interface {
	Create(senderID, receiverID int) (*model.FriendRequest, error)
	FindByID(id int) (*model.FriendRequest, error)
	// Accept flips a pending request to accepted and inserts both symmetric
	// friend edges in a single transaction.
	Accept(requestID, senderID, receiverID int) error
	Decline(requestID int) error
	FindIncoming(userID int) ([]model.FriendRequestWithUser, error)
	FindAccepted(userID int) ([]model.FriendRequestWithUser, error)
	FindOutgoing(userID int) ([]model.FriendRequestWithUser, error)
}

// ChatProvider is the external chat service owning all messaging. It is
// constructor-injected so tests can substitute it.
type ChatProvider interface {
	UpsertUser(ctx context.Context, user model.ChatUser) error
	MintToken(userID int) (string, error)
}
