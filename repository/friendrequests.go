package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vmarinova/Lingua-Link/contract"
	"github.com/vmarinova/Lingua-Link/model"
)

const requestColumns = "id, sender_id, receiver_id, status, created_at"

type FriendRequestRepoMysql struct {
	db *sql.DB
}

func NewFriendRequestRepoMysql(db *sql.DB) *FriendRequestRepoMysql {
	return &FriendRequestRepoMysql{db: db}
}

func (f *FriendRequestRepoMysql) Create(senderID, receiverID int) (*model.FriendRequest, error) {
	friends, err := f.areFriends(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, contract.ErrAlreadyFriends
	}

	exists, err := f.requestExists(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, contract.ErrDuplicateRequest
	}

	statement := "INSERT INTO friend_requests(sender_id, receiver_id, status) VALUES(?, ?, ?)"
	result, err := f.db.Exec(statement, senderID, receiverID, model.StatusPending)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &model.FriendRequest{
		ID:         int(id),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     model.StatusPending,
		CreatedAt:  time.Now(),
	}, nil
}

func (f *FriendRequestRepoMysql) areFriends(userOne, userTwo int) (bool, error) {
	var count int
	statement := "SELECT COUNT(*) FROM friends WHERE user_id = ? AND friend_id = ?"
	if err := f.db.QueryRow(statement, userOne, userTwo).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// requestExists reports whether an unresolved request covers the unordered
// pair, in either direction. Declined requests do not block a new one.
func (f *FriendRequestRepoMysql) requestExists(userOne, userTwo int) (bool, error) {
	var id int
	statement := `SELECT id FROM friend_requests
					WHERE ((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?))
					AND status IN (?, ?)`
	err := f.db.QueryRow(statement, userOne, userTwo, userTwo, userOne, model.StatusPending, model.StatusAccepted).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (f *FriendRequestRepoMysql) FindByID(id int) (*model.FriendRequest, error) {
	request := &model.FriendRequest{}
	row := f.db.QueryRow("SELECT "+requestColumns+" FROM friend_requests WHERE id = ?", id)
	err := row.Scan(&request.ID, &request.SenderID, &request.ReceiverID, &request.Status, &request.CreatedAt)
	if err != nil {
		return nil, err
	}
	return request, nil
}

// Accept flips the request to accepted and inserts both friend edges inside
// one transaction, so a crash cannot leave an accepted request without the
// symmetric friendship. The status guard makes the transition happen exactly
// once: a concurrent accept updates zero rows and reports a conflict.
func (f *FriendRequestRepoMysql) Accept(requestID, senderID, receiverID int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := f.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec("UPDATE friend_requests SET status = ? WHERE id = ? AND status = ?",
		model.StatusAccepted, requestID, model.StatusPending)
	if err != nil {
		return err
	}
	changed, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if changed == 0 {
		return contract.ErrAlreadyResolved
	}

	if _, err := tx.Exec("INSERT IGNORE INTO friends(user_id, friend_id) VALUES(?, ?)", receiverID, senderID); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT IGNORE INTO friends(user_id, friend_id) VALUES(?, ?)", senderID, receiverID); err != nil {
		return err
	}

	return tx.Commit()
}

func (f *FriendRequestRepoMysql) Decline(requestID int) error {
	result, err := f.db.Exec("UPDATE friend_requests SET status = ? WHERE id = ? AND status = ?",
		model.StatusDeclined, requestID, model.StatusPending)
	if err != nil {
		return err
	}
	changed, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if changed == 0 {
		return contract.ErrAlreadyResolved
	}
	return nil
}

func (f *FriendRequestRepoMysql) FindIncoming(userID int) ([]model.FriendRequestWithUser, error) {
	statement := `SELECT r.id, r.sender_id, r.receiver_id, r.status, r.created_at,
					u.id, u.name, u.profile_picture, u.native_language, u.learning_language
					FROM friend_requests r JOIN users u ON u.id = r.sender_id
					WHERE r.receiver_id = ? AND r.status = ?
					ORDER BY r.id`
	rows, err := f.db.Query(statement, userID, model.StatusPending)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

// FindAccepted returns accepted requests in both directions, joined with the
// other party's profile.
func (f *FriendRequestRepoMysql) FindAccepted(userID int) ([]model.FriendRequestWithUser, error) {
	statement := `SELECT r.id, r.sender_id, r.receiver_id, r.status, r.created_at,
					u.id, u.name, u.profile_picture, u.native_language, u.learning_language
					FROM friend_requests r JOIN users u ON u.id = IF(r.sender_id = ?, r.receiver_id, r.sender_id)
					WHERE (r.sender_id = ? OR r.receiver_id = ?) AND r.status = ?
					ORDER BY r.id`
	rows, err := f.db.Query(statement, userID, userID, userID, model.StatusAccepted)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (f *FriendRequestRepoMysql) FindOutgoing(userID int) ([]model.FriendRequestWithUser, error) {
	statement := `SELECT r.id, r.sender_id, r.receiver_id, r.status, r.created_at,
					u.id, u.name, u.profile_picture, u.native_language, u.learning_language
					FROM friend_requests r JOIN users u ON u.id = r.receiver_id
					WHERE r.sender_id = ? AND r.status = ?
					ORDER BY r.id`
	rows, err := f.db.Query(statement, userID, model.StatusPending)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func collectRequests(rows *sql.Rows) ([]model.FriendRequestWithUser, error) {
	defer rows.Close()

	requests := []model.FriendRequestWithUser{}
	for rows.Next() {
		var request model.FriendRequestWithUser
		err := rows.Scan(&request.ID, &request.SenderID, &request.ReceiverID, &request.Status, &request.CreatedAt,
			&request.User.ID, &request.User.Name, &request.User.ProfilePicture,
			&request.User.NativeLanguage, &request.User.LearningLanguage)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}
