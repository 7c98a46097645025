package main

import (
	"github.com/sirupsen/logrus"

	"github.com/vmarinova/Lingua-Link/chat"
	"github.com/vmarinova/Lingua-Link/config"
	"github.com/vmarinova/Lingua-Link/repository"
	"github.com/vmarinova/Lingua-Link/rest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	db, err := repository.Open(cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Name)
	if err != nil {
		logrus.Fatal(err)
	}
	if err := repository.EnsureSchema(db); err != nil {
		logrus.Fatal(err)
	}

	streamClient := chat.NewClient(chat.Config{
		APIKey:    cfg.Stream.APIKey,
		APISecret: cfg.Stream.APISecret,
		BaseURL:   cfg.Stream.BaseURL,
	})

	a := rest.App{}
	a.Init(cfg.JWTSecret, repository.NewUserRepoMysql(db), repository.NewFriendRequestRepoMysql(db), streamClient)

	logrus.Infof("Starting language exchange service on %s", cfg.Addr)
	a.Run(cfg.Addr)
}
