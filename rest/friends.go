package rest

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vmarinova/Lingua-Link/contract"
	"github.com/vmarinova/Lingua-Link/model"
)

func (a *App) getRecommendedUsers(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	users, err := a.Users.FindRecommended(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(users),
		"users": users,
	})
}

func (a *App) getFriends(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	friends, err := a.Users.FindFriends(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"friends": friends})
}

func (a *App) sendFriendRequest(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	vars := mux.Vars(r)
	receiverID, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if receiverID == user.ID {
		respondWithError(w, http.StatusBadRequest, "You cannot send a friend request to yourself")
		return
	}

	if _, err := a.Users.FindByID(receiverID); err != nil {
		switch err {
		case sql.ErrNoRows:
			respondWithError(w, http.StatusNotFound, "User not found")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	request, err := a.FriendRequests.Create(user.ID, receiverID)
	if err != nil {
		switch {
		case errors.Is(err, contract.ErrAlreadyFriends):
			respondWithError(w, http.StatusBadRequest, "You are already friends with this user")
		case errors.Is(err, contract.ErrDuplicateRequest):
			respondWithError(w, http.StatusBadRequest, "Friend request already sent")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"friendRequest": request})
}

func (a *App) acceptFriendRequest(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	request, ok := a.loadOwnRequest(w, r, user, "accept")
	if !ok {
		return
	}

	if err := a.FriendRequests.Accept(request.ID, request.SenderID, request.ReceiverID); err != nil {
		if errors.Is(err, contract.ErrAlreadyResolved) {
			respondWithError(w, http.StatusBadRequest, "Friend request is no longer pending")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	request.Status = model.StatusAccepted

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"friendRequest": request})
}

func (a *App) declineFriendRequest(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	request, ok := a.loadOwnRequest(w, r, user, "decline")
	if !ok {
		return
	}

	if err := a.FriendRequests.Decline(request.ID); err != nil {
		if errors.Is(err, contract.ErrAlreadyResolved) {
			respondWithError(w, http.StatusBadRequest, "Friend request is no longer pending")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	request.Status = model.StatusDeclined

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"friendRequest": request})
}

// loadOwnRequest resolves the {id} route variable into a request the current
// user is the receiver of; only the receiver may resolve a request.
func (a *App) loadOwnRequest(w http.ResponseWriter, r *http.Request, user *model.User, action string) (*model.FriendRequest, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request ID")
		return nil, false
	}

	request, err := a.FriendRequests.FindByID(id)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			respondWithError(w, http.StatusNotFound, "Friend request not found")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return nil, false
	}

	if request.ReceiverID != user.ID {
		respondWithError(w, http.StatusForbidden, "You are not authorized to "+action+" this friend request")
		return nil, false
	}
	return request, true
}

func (a *App) getFriendRequests(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	incoming, err := a.FriendRequests.FindIncoming(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	accepted, err := a.FriendRequests.FindAccepted(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"incomingRequests": incoming,
		"acceptedRequests": accepted,
	})
}

func (a *App) getOutgoingFriendRequests(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	outgoing, err := a.FriendRequests.FindOutgoing(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"outgoingRequests": outgoing})
}

func (a *App) getChatToken(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	token, err := a.Chat.MintToken(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to generate chat token")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}
