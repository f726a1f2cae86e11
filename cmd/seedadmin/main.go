// Command seedadmin creates (or resets) the initial administrator account.
//
//	go run ./cmd/seedadmin -username admin -password <secret>
package main

import (
	"flag"
	"os"

	"github.com/mnk3936/Highway-metals/internal/config"
	"github.com/mnk3936/Highway-metals/internal/infra"
	"github.com/mnk3936/Highway-metals/internal/model"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		log.Error().Msg("-password is required")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("password hash failed")
	}

	user := &model.User{
		Username:     *username,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "is_admin"}),
	}).Create(user).Error
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	log.Info().Str("username", *username).Msg("admin account ready")
}
