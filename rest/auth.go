package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/vmarinova/Lingua-Link/model"
)

const (
	sessionCookie   = "token"
	sessionDuration = 7 * 24 * time.Hour
)

type contextKey string

const userKey contextKey = "user"

func (a *App) issueToken(userID int) (string, error) {
	claims := &model.UserToken{
		UserID: strconv.Itoa(userID),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(sessionDuration).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

func (a *App) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (a *App) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// jwtVerify resolves the session cookie into an account and stores it in the
// request context. The password hash never travels past this point.
func (a *App) jwtVerify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t, err := r.Cookie(sessionCookie)
		if err != nil || t.Value == "" {
			respondWithError(w, http.StatusUnauthorized, "Missing auth token")
			return
		}

		claims := &model.UserToken{}
		_, err = jwt.ParseWithClaims(t.Value, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return a.jwtSecret, nil
		})
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		id, err := strconv.Atoi(claims.UserID)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := a.Users.FindByID(id)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "User no longer exists")
			return
		}
		user.Password = ""

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) *model.User {
	user, _ := r.Context().Value(userKey).(*model.User)
	return user
}
