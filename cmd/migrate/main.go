// Command migrate applies the embedded MySQL schema and can seed the
// first staff account:
//
//	migrate -seed-admin admin@example.com:changeme123
package main

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/Edonabdullahu1/city-sub003/internal/config"
	"github.com/Edonabdullahu1/city-sub003/internal/database"
	"github.com/Edonabdullahu1/city-sub003/internal/logger"
	"github.com/Edonabdullahu1/city-sub003/internal/model"
	"github.com/Edonabdullahu1/city-sub003/internal/repository"
)

func main() {
	seed := flag.String("seed-admin", "", "create an ADMIN user, given as email:password")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.Env, cfg.LogLevel)

	db, err := database.Open(cfg)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}
	log.Info("schema applied")

	if *seed == "" {
		return
	}
	email, password, ok := strings.Cut(*seed, ":")
	if !ok || email == "" {
		log.Fatal("-seed-admin expects email:password")
	}
	id, err := repository.NewUserRepo(db).Create(ctx, strings.ToLower(email), password, model.RoleAdmin, cfg.BcryptCost)
	if err != nil {
		log.WithError(err).Fatal("seeding admin failed")
	}
	log.WithField("user_id", id).Info("admin created")
}
