package rest

import (
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"

	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/vmarinova/Lingua-Link/contract"
)

type App struct {
	Router         *mux.Router
	Users          contract.UserRepo
	FriendRequests contract.FriendRequestRepo
	Chat           contract.ChatProvider

	Validator  *validator.Validate
	Translator ut.Translator

	jwtSecret []byte
}

func (a *App) Init(jwtSecret string, users contract.UserRepo, requests contract.FriendRequestRepo, chatProvider contract.ChatProvider) {
	a.Users = users
	a.FriendRequests = requests
	a.Chat = chatProvider
	a.jwtSecret = []byte(jwtSecret)

	a.Validator = validator.New()
	eng := en.New()
	uni := ut.New(eng, eng)

	var found bool
	a.Translator, found = uni.GetTranslator("en")
	if !found {
		logrus.Fatal("translator not found")
	}
	if err := en_translations.RegisterDefaultTranslations(a.Validator, a.Translator); err != nil {
		logrus.Fatal(err)
	}

	a.Router = mux.NewRouter()
	a.Router.Use(RequestLogger)
	a.initializeRoutes()
}

func (a *App) Run(addr string) {
	logrus.Fatal(http.ListenAndServe(addr, a.Router))
}

func (a *App) initializeRoutes() {
	a.Router.HandleFunc("/auth/signup", a.signup).Methods(http.MethodPost)
	a.Router.HandleFunc("/auth/login", a.login).Methods(http.MethodPost)
	a.Router.HandleFunc("/auth/logout", a.logout).Methods(http.MethodPost)

	// Session routes
	s := a.Router.PathPrefix("/").Subrouter()
	s.Use(a.jwtVerify)
	s.HandleFunc("/auth/me", a.me).Methods(http.MethodGet)
	s.HandleFunc("/auth/onboarding", a.onboarding).Methods(http.MethodPost)

	s.HandleFunc("/users", a.getRecommendedUsers).Methods(http.MethodGet)
	s.HandleFunc("/users/friends", a.getFriends).Methods(http.MethodGet)
	s.HandleFunc("/users/friend-request/{id:[0-9]+}", a.sendFriendRequest).Methods(http.MethodPost)
	s.HandleFunc("/users/friend-request/{id:[0-9]+}/accept", a.acceptFriendRequest).Methods(http.MethodPut)
	s.HandleFunc("/users/friend-request/{id:[0-9]+}/decline", a.declineFriendRequest).Methods(http.MethodPut)
	s.HandleFunc("/users/friend-requests", a.getFriendRequests).Methods(http.MethodGet)
	s.HandleFunc("/users/outgoing-friends-requests", a.getOutgoingFriendRequests).Methods(http.MethodGet)

	s.HandleFunc("/chat/token", a.getChatToken).Methods(http.MethodGet)
}
