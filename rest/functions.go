package rest

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vmarinova/Lingua-Link/contract"
	"github.com/vmarinova/Lingua-Link/model"
)

const invalidCredentials = "Invalid email or password"

const avatarPoolSize = 100

func randomAvatar() string {
	idx := rand.Intn(avatarPoolSize) + 1
	return fmt.Sprintf("https://avatar.iran.liara.run/public/%d.png", idx)
}

func chatUserFor(user *model.User) model.ChatUser {
	return model.ChatUser{
		ID:               strconv.Itoa(user.ID),
		Name:             user.Name,
		Image:            user.ProfilePicture,
		Bio:              user.Bio,
		NativeLanguage:   user.NativeLanguage,
		LearningLanguage: user.LearningLanguage,
		Location:         user.Location,
	}
}

func (a *App) signup(w http.ResponseWriter, r *http.Request) {
	user := &model.User{}

	// r.Body: {"name":"Ava", "email":"ava@x.com", "password":"secret1"}
	if err := json.NewDecoder(r.Body).Decode(user); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(user); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	if _, err := a.Users.FindByEmail(user.Email); err == nil {
		respondWithError(w, http.StatusBadRequest, "User already exists")
		return
	} else if err != sql.ErrNoRows {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pass, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Password encryption failed")
		return
	}
	user.Password = string(pass)
	user.ProfilePicture = randomAvatar()

	if user, err = a.Users.Create(user); err != nil {
		if errors.Is(err, contract.ErrDuplicateEmail) {
			respondWithError(w, http.StatusBadRequest, "User already exists")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Mirror the identity to the chat provider. Single attempt: on failure
	// the just-created account is deleted again and the error surfaces.
	if err := a.Chat.UpsertUser(r.Context(), chatUserFor(user)); err != nil {
		logrus.WithError(err).Error("chat user upsert failed, rolling back signup")
		a.compensateSignup(user.ID)
		respondWithError(w, http.StatusInternalServerError, "Failed to register with chat provider. Please try again.")
		return
	}

	chatToken, err := a.Chat.MintToken(user.ID)
	if err != nil {
		logrus.WithError(err).Error("chat token generation failed, rolling back signup")
		a.compensateSignup(user.ID)
		respondWithError(w, http.StatusInternalServerError, "Failed to register with chat provider. Please try again.")
		return
	}

	token, err := a.issueToken(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.setSessionCookie(w, token)

	// remove user password
	user.Password = ""

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"user":      user,
		"token":     token,
		"chatToken": chatToken,
	})
}

func (a *App) compensateSignup(userID int) {
	if err := a.Users.Delete(userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("compensating delete failed")
	}
}

func (a *App) login(w http.ResponseWriter, r *http.Request) {
	userCredentials := &model.UserLogin{}
	if err := json.NewDecoder(r.Body).Decode(userCredentials); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if userCredentials.Email == "" || userCredentials.Password == "" {
		respondWithError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	// The same message covers unknown email and wrong password.
	user, err := a.Users.FindByEmail(userCredentials.Email)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, invalidCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(userCredentials.Password)); err != nil {
		respondWithError(w, http.StatusUnauthorized, invalidCredentials)
		return
	}

	token, err := a.issueToken(user.ID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	a.setSessionCookie(w, token)

	// remove user password
	user.Password = ""

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}

func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	a.clearSessionCookie(w)
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (a *App) me(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": currentUser(r)})
}

func (a *App) onboarding(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	data := &model.Onboarding{}
	if err := json.NewDecoder(r.Body).Decode(data); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := a.Validator.Struct(data); err != nil {
		errs := err.(validator.ValidationErrors)
		respondWithValidationError(errs.Translate(a.Translator), w)
		return
	}

	if err := a.Users.CompleteOnboarding(user.ID, data); err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	user.Bio = data.Bio
	user.NativeLanguage = data.NativeLanguage
	user.LearningLanguage = data.LearningLanguage
	user.Location = data.Location
	user.Onboarded = true

	// The local write stays even if the mirror fails; the provider upsert is
	// idempotent and runs again on the next onboarding call.
	if err := a.Chat.UpsertUser(r.Context(), chatUserFor(user)); err != nil {
		logrus.WithError(err).Error("chat profile mirror failed")
		respondWithError(w, http.StatusInternalServerError, "Failed to update chat profile. Please try again.")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}
