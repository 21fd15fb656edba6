package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ipdr-analysis/auth-server/config"
	app "github.com/ipdr-analysis/auth-server/internal/application"
	"github.com/ipdr-analysis/auth-server/internal/infrastructure/jsonfile"
	"github.com/ipdr-analysis/auth-server/pkg/helpers"
)

// seed registers a demo account through the normal registration path, so the
// stored record and its audit entry look exactly like a real sign-up.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	username := flag.String("username", "demo_analyst", "username for the demo account")
	email := flag.String("email", "demo@ipdr.local", "email for the demo account")
	password := flag.String("password", "Demo@12345", "password for the demo account")
	first := flag.String("first", "Demo", "first name")
	last := flag.String("last", "Analyst", "last name")
	flag.Parse()

	for _, p := range []string{cfg.UsersPath(), cfg.LoginsPath()} {
		if err := jsonfile.EnsureDocument(p); err != nil {
			logger.WithError(err).WithField("path", p).Fatal("failed to prepare data file")
		}
	}

	users := jsonfile.NewUserRepository(cfg.UsersPath())
	logs := jsonfile.NewLoginLogRepository(cfg.LoginsPath())
	jwt := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
	svc := app.NewAuthService(users, logs, app.NewTokenService(jwt, users), logger)

	res, err := svc.Register(context.Background(), app.RegisterInput{
		Username:  *username,
		Email:     *email,
		Password:  *password,
		FirstName: *first,
		LastName:  *last,
		IPAddress: "127.0.0.1",
		Location:  "seed",
	})
	var weak *app.WeakPasswordError
	switch {
	case errors.Is(err, app.ErrConflict):
		logger.WithField("username", *username).Info("demo account already exists")
		return
	case errors.As(err, &weak):
		logger.WithField("feedback", weak.Strength.Feedback).Error("password rejected by policy")
		os.Exit(1)
	case err != nil:
		logger.WithError(err).Fatal("failed to seed user")
	}

	logger.WithFields(logrus.Fields{"id": res.User.ID, "username": res.User.Username}).Info("seeded user")
	fmt.Printf("seeded user: id=%s username=%s email=%s password=%s\n", res.User.ID, res.User.Username, res.User.Email, *password)
}
