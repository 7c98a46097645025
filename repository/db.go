package repository

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open builds a MySQL connection pool. parseTime is required so that
// created_at columns scan into time.Time.
func Open(user, password, host, dbname string) (*sql.DB, error) {
	connectionString := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", user, password, host, dbname)
	db, err := sql.Open("mysql", connectionString)
	if err != nil {
		return nil, err
	}

	db.SetConnMaxLifetime(time.Minute * 5)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(time.Minute * 3)

	if err := db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

const usersSchema = `CREATE TABLE IF NOT EXISTS users (
	id INT NOT NULL AUTO_INCREMENT,
	name VARCHAR(64) NOT NULL,
	email VARCHAR(255) NOT NULL,
	password VARCHAR(255) NOT NULL,
	profile_picture VARCHAR(255) NOT NULL DEFAULT '',
	bio TEXT,
	native_language VARCHAR(64) NOT NULL DEFAULT '',
	learning_language VARCHAR(64) NOT NULL DEFAULT '',
	location VARCHAR(128) NOT NULL DEFAULT '',
	onboarded BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (id),
	UNIQUE KEY uq_users_email (email)
)`

const friendRequestsSchema = `CREATE TABLE IF NOT EXISTS friend_requests (
	id INT NOT NULL AUTO_INCREMENT,
	sender_id INT NOT NULL,
	receiver_id INT NOT NULL,
	status VARCHAR(16) NOT NULL DEFAULT 'pending',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (id),
	KEY idx_friend_requests_sender (sender_id),
	KEY idx_friend_requests_receiver (receiver_id)
)`

const friendsSchema = `CREATE TABLE IF NOT EXISTS friends (
	user_id INT NOT NULL,
	friend_id INT NOT NULL,
	PRIMARY KEY (user_id, friend_id)
)`

// EnsureSchema creates the tables if they are missing.
func EnsureSchema(db *sql.DB) error {
	for _, statement := range []string{usersSchema, friendRequestsSchema, friendsSchema} {
		if _, err := db.Exec(statement); err != nil {
			return err
		}
	}
	return nil
}
