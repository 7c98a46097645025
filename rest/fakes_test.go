package rest

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/vmarinova/Lingua-Link/contract"
	"github.com/vmarinova/Lingua-Link/model"
)

// memStore is an in-memory stand-in for both repositories, mirroring the
// MySQL implementations' semantics.
type memStore struct {
	users    map[int]*model.User
	requests map[int]*model.FriendRequest
	friends  map[int]map[int]bool
	nextUser int
	nextReq  int
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int]*model.User{},
		requests: map[int]*model.FriendRequest{},
		friends:  map[int]map[int]bool{},
	}
}

func (s *memStore) Create(user *model.User) (*model.User, error) {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return nil, contract.ErrDuplicateEmail
		}
	}
	s.nextUser++
	stored := *user
	stored.ID = s.nextUser
	stored.CreatedAt = time.Now()
	s.users[stored.ID] = &stored

	result := stored
	return &result, nil
}

func (s *memStore) Delete(id int) error {
	delete(s.users, id)
	return nil
}

func (s *memStore) FindByID(id int) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	result := *user
	return &result, nil
}

func (s *memStore) FindByEmail(email string) (*model.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			result := *user
			return &result, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *memStore) CompleteOnboarding(id int, data *model.Onboarding) error {
	user, ok := s.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.Bio = data.Bio
	user.NativeLanguage = data.NativeLanguage
	user.LearningLanguage = data.LearningLanguage
	user.Location = data.Location
	user.Onboarded = true
	return nil
}

func (s *memStore) FindRecommended(userID int) ([]model.User, error) {
	users := []model.User{}
	for _, id := range s.sortedUserIDs() {
		user := s.users[id]
		if id == userID || !user.Onboarded || s.friends[userID][id] {
			continue
		}
		result := *user
		result.Password = ""
		users = append(users, result)
	}
	return users, nil
}

func (s *memStore) FindFriends(userID int) ([]model.User, error) {
	users := []model.User{}
	for _, id := range s.sortedUserIDs() {
		if !s.friends[userID][id] {
			continue
		}
		result := *s.users[id]
		result.Password = ""
		users = append(users, result)
	}
	return users, nil
}

func (s *memStore) sortedUserIDs() []int {
	ids := make([]int, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s *memStore) CreateRequest(senderID, receiverID int) (*model.FriendRequest, error) {
	if s.friends[senderID][receiverID] {
		return nil, contract.ErrAlreadyFriends
	}
	for _, request := range s.requests {
		samePair := (request.SenderID == senderID && request.ReceiverID == receiverID) ||
			(request.SenderID == receiverID && request.ReceiverID == senderID)
		if samePair && request.Status != model.StatusDeclined {
			return nil, contract.ErrDuplicateRequest
		}
	}
	s.nextReq++
	request := &model.FriendRequest{
		ID:         s.nextReq,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     model.StatusPending,
		CreatedAt:  time.Now(),
	}
	s.requests[request.ID] = request

	result := *request
	return &result, nil
}

func (s *memStore) FindRequestByID(id int) (*model.FriendRequest, error) {
	request, ok := s.requests[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	result := *request
	return &result, nil
}

func (s *memStore) Accept(requestID, senderID, receiverID int) error {
	request, ok := s.requests[requestID]
	if !ok || request.Status != model.StatusPending {
		return contract.ErrAlreadyResolved
	}
	request.Status = model.StatusAccepted
	s.addFriend(senderID, receiverID)
	s.addFriend(receiverID, senderID)
	return nil
}

func (s *memStore) Decline(requestID int) error {
	request, ok := s.requests[requestID]
	if !ok || request.Status != model.StatusPending {
		return contract.ErrAlreadyResolved
	}
	request.Status = model.StatusDeclined
	return nil
}

func (s *memStore) addFriend(userID, friendID int) {
	if s.friends[userID] == nil {
		s.friends[userID] = map[int]bool{}
	}
	s.friends[userID][friendID] = true
}

func (s *memStore) FindIncoming(userID int) ([]model.FriendRequestWithUser, error) {
	return s.collectRequests(func(r *model.FriendRequest) (bool, int) {
		return r.ReceiverID == userID && r.Status == model.StatusPending, r.SenderID
	})
}

func (s *memStore) FindAccepted(userID int) ([]model.FriendRequestWithUser, error) {
	return s.collectRequests(func(r *model.FriendRequest) (bool, int) {
		if r.Status != model.StatusAccepted {
			return false, 0
		}
		if r.SenderID == userID {
			return true, r.ReceiverID
		}
		if r.ReceiverID == userID {
			return true, r.SenderID
		}
		return false, 0
	})
}

func (s *memStore) FindOutgoing(userID int) ([]model.FriendRequestWithUser, error) {
	return s.collectRequests(func(r *model.FriendRequest) (bool, int) {
		return r.SenderID == userID && r.Status == model.StatusPending, r.ReceiverID
	})
}

func (s *memStore) collectRequests(match func(*model.FriendRequest) (bool, int)) ([]model.FriendRequestWithUser, error) {
	ids := make([]int, 0, len(s.requests))
	for id := range s.requests {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	requests := []model.FriendRequestWithUser{}
	for _, id := range ids {
		request := s.requests[id]
		ok, otherID := match(request)
		if !ok {
			continue
		}
		other := s.users[otherID]
		requests = append(requests, model.FriendRequestWithUser{
			FriendRequest: *request,
			User: model.UserSummary{
				ID:               other.ID,
				Name:             other.Name,
				ProfilePicture:   other.ProfilePicture,
				NativeLanguage:   other.NativeLanguage,
				LearningLanguage: other.LearningLanguage,
			},
		})
	}
	return requests, nil
}

// requestRepo adapts memStore to contract.FriendRequestRepo; the method
// names collide with the user repo ones otherwise.
type requestRepo struct {
	*memStore
}

func (r requestRepo) Create(senderID, receiverID int) (*model.FriendRequest, error) {
	return r.CreateRequest(senderID, receiverID)
}

func (r requestRepo) FindByID(id int) (*model.FriendRequest, error) {
	return r.FindRequestByID(id)
}

type fakeChat struct {
	upserts    []model.ChatUser
	failUpsert bool
	failMint   bool
}

func (f *fakeChat) UpsertUser(ctx context.Context, user model.ChatUser) error {
	if f.failUpsert {
		return errors.New("chat provider unavailable")
	}
	f.upserts = append(f.upserts, user)
	return nil
}

func (f *fakeChat) MintToken(userID int) (string, error) {
	if f.failMint {
		return "", errors.New("chat provider unavailable")
	}
	return "chat-token-" + strconv.Itoa(userID), nil
}
