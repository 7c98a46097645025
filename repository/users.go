package repository

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/vmarinova/Lingua-Link/contract"
	"github.com/vmarinova/Lingua-Link/model"
)

const duplicateEntryCode = 1062

const userColumns = "id, name, email, password, profile_picture, bio, native_language, learning_language, location, onboarded, created_at"

type UserRepoMysql struct {
	db *sql.DB
}

func NewUserRepoMysql(db *sql.DB) *UserRepoMysql {
	return &UserRepoMysql{db: db}
}

func (u *UserRepoMysql) Create(user *model.User) (*model.User, error) {
	statement := `INSERT INTO users(name, email, password, profile_picture, onboarded) VALUES(?, ?, ?, ?, FALSE)`
	result, err := u.db.Exec(statement, user.Name, user.Email, user.Password, user.ProfilePicture)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == duplicateEntryCode {
			return nil, contract.ErrDuplicateEmail
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	user.ID = int(id)
	return user, nil
}

func (u *UserRepoMysql) Delete(id int) error {
	_, err := u.db.Exec("DELETE FROM users WHERE id = ?", id)
	return err
}

func (u *UserRepoMysql) FindByID(id int) (*model.User, error) {
	row := u.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (u *UserRepoMysql) FindByEmail(email string) (*model.User, error) {
	row := u.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return scanUser(row)
}

func (u *UserRepoMysql) CompleteOnboarding(id int, data *model.Onboarding) error {
	statement := `UPDATE users SET bio = ?, native_language = ?, learning_language = ?, location = ?, onboarded = TRUE WHERE id = ?`
	_, err := u.db.Exec(statement, data.Bio, data.NativeLanguage, data.LearningLanguage, data.Location, id)
	return err
}

func (u *UserRepoMysql) FindRecommended(userID int) ([]model.User, error) {
	statement := `SELECT ` + userColumns + ` FROM users
					WHERE id != ? AND onboarded = TRUE
					AND id NOT IN (SELECT friend_id FROM friends WHERE user_id = ?)
					ORDER BY id`
	rows, err := u.db.Query(statement, userID, userID)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (u *UserRepoMysql) FindFriends(userID int) ([]model.User, error) {
	statement := `SELECT u.id, u.name, u.email, u.password, u.profile_picture, u.bio, u.native_language, u.learning_language, u.location, u.onboarded, u.created_at
					FROM users u JOIN friends f ON u.id = f.friend_id
					WHERE f.user_id = ?
					ORDER BY u.id`
	rows, err := u.db.Query(statement, userID)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*model.User, error) {
	user := &model.User{}
	var bio sql.NullString
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.ProfilePicture,
		&bio, &user.NativeLanguage, &user.LearningLanguage, &user.Location, &user.Onboarded, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	user.Bio = bio.String
	return user, nil
}

func collectUsers(rows *sql.Rows) ([]model.User, error) {
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		// listings never carry the credential hash
		user.Password = ""
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
