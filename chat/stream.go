// Package chat implements the client for the external chat provider. The
// provider owns all messaging semantics; this service only mirrors user
// records to it and mints credentials for its browser SDK.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/vmarinova/Lingua-Link/model"
)

const defaultTimeout = 10 * time.Second

type Config struct {
	APIKey    string
	APISecret string
	BaseURL   string
	Timeout   time.Duration
}

type Client struct {
	apiKey     string
	apiSecret  []byte
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		apiKey:    cfg.APIKey,
		apiSecret: []byte(cfg.APISecret),
		baseURL:   cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// MintToken creates the credential the browser SDK presents to the provider
// to act as the given user.
func (c *Client) MintToken(userID int) (string, error) {
	if userID <= 0 {
		return "", errors.New("chat: user id is required for token generation")
	}

	claims := jwt.MapClaims{"user_id": strconv.Itoa(userID)}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.apiSecret)
}

// UpsertUser creates or updates the provider-side user record.
func (c *Client) UpsertUser(ctx context.Context, user model.ChatUser) error {
	if user.ID == "" {
		return errors.New("chat: user id is required for upsert")
	}

	payload := map[string]map[string]model.ChatUser{
		"users": {user.ID: user},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("chat: marshal upsert payload: %w", err)
	}

	url := c.baseURL + "/users?api_key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("chat: build upsert request: %w", err)
	}

	serverToken, err := c.serverToken()
	if err != nil {
		return fmt.Errorf("chat: sign server token: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", serverToken)
	req.Header.Set("Stream-Auth-Type", "jwt")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chat: upsert user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("chat: upsert user failed: %s: %s", resp.Status, detail)
	}
	return nil
}

// serverToken authenticates this backend (not an end user) to the provider.
func (c *Client) serverToken() (string, error) {
	claims := jwt.MapClaims{"server": true}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.apiSecret)
}
