package repository

import (
	"database/sql"
	"errors"
	"log"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"

	"github.com/vmarinova/Lingua-Link/contract"
	"github.com/vmarinova/Lingua-Link/model"
)

func NewMock() (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}

	return db, mock
}

func userRows(users ...model.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password", "profile_picture", "bio",
		"native_language", "learning_language", "location", "onboarded", "created_at"})
	for _, u := range users {
		rows.AddRow(u.ID, u.Name, u.Email, u.Password, u.ProfilePicture, u.Bio,
			u.NativeLanguage, u.LearningLanguage, u.Location, u.Onboarded, time.Now())
	}
	return rows
}

func TestUserRepoMysql_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock := NewMock()
		repo := NewUserRepoMysql(db)

		mock.ExpectExec("INSERT INTO users").
			WithArgs("Ava", "ava@x.com", "hashed", "avatar.png").
			WillReturnResult(sqlmock.NewResult(1, 1))

		user, err := repo.Create(&model.User{Name: "Ava", Email: "ava@x.com", Password: "hashed", ProfilePicture: "avatar.png"})
		assert.NoError(t, err)
		assert.Equal(t, 1, user.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock := NewMock()
		repo := NewUserRepoMysql(db)

		mock.ExpectExec("INSERT INTO users").
			WithArgs("Ava", "ava@x.com", "hashed", "avatar.png").
			WillReturnError(&mysql.MySQLError{Number: duplicateEntryCode, Message: "Duplicate entry"})

		_, err := repo.Create(&model.User{Name: "Ava", Email: "ava@x.com", Password: "hashed", ProfilePicture: "avatar.png"})
		assert.True(t, errors.Is(err, contract.ErrDuplicateEmail))
	})
}

func TestUserRepoMysql_FindByEmail(t *testing.T) {
	t.Run("user exists", func(t *testing.T) {
		db, mock := NewMock()
		repo := NewUserRepoMysql(db)

		rows := userRows(model.User{ID: 1, Name: "Ava", Email: "ava@x.com", Password: "hashed"})
		mock.ExpectQuery("SELECT id, name, email").WithArgs("ava@x.com").WillReturnRows(rows)

		user, err := repo.FindByEmail("ava@x.com")
		assert.NoError(t, err)
		assert.Equal(t, "Ava", user.Name)
		assert.Equal(t, "hashed", user.Password)
	})

	t.Run("user missing", func(t *testing.T) {
		db, mock := NewMock()
		repo := NewUserRepoMysql(db)

		mock.ExpectQuery("SELECT id, name, email").WithArgs("ghost@x.com").WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail("ghost@x.com")
		assert.Equal(t, sql.ErrNoRows, err)
	})
}

func TestUserRepoMysql_CompleteOnboarding(t *testing.T) {
	db, mock := NewMock()
	repo := NewUserRepoMysql(db)

	mock.ExpectExec("UPDATE users").
		WithArgs("hi", "English", "Spanish", "NYC", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CompleteOnboarding(1, &model.Onboarding{
		Bio:              "hi",
		NativeLanguage:   "English",
		LearningLanguage: "Spanish",
		Location:         "NYC",
	})
	assert.NoError(t, err)
}

func TestUserRepoMysql_FindRecommended(t *testing.T) {
	db, mock := NewMock()
	repo := NewUserRepoMysql(db)

	rows := userRows(
		model.User{ID: 2, Name: "Ben", Email: "ben@x.com", Password: "hashed", Onboarded: true},
		model.User{ID: 3, Name: "Cara", Email: "cara@x.com", Password: "hashed", Onboarded: true},
	)
	mock.ExpectQuery("SELECT id, name, email").WithArgs(1, 1).WillReturnRows(rows)

	users, err := repo.FindRecommended(1)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
}

func TestUserRepoMysql_FindFriends(t *testing.T) {
	db, mock := NewMock()
	repo := NewUserRepoMysql(db)

	rows := userRows(model.User{ID: 2, Name: "Ben", Email: "ben@x.com", Password: "hashed", Onboarded: true})
	mock.ExpectQuery("SELECT u.id, u.name").WithArgs(1).WillReturnRows(rows)

	friends, err := repo.FindFriends(1)
	assert.NoError(t, err)
	assert.Len(t, friends, 1)
	assert.Equal(t, "Ben", friends[0].Name)
	assert.Empty(t, friends[0].Password)
}

func TestUserRepoMysql_Delete(t *testing.T) {
	db, mock := NewMock()
	repo := NewUserRepoMysql(db)

	mock.ExpectExec("DELETE FROM users").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(1))
}
