package main

import (
	"log"
	"time"

	"github.com/nbouch/roombrowse/internal/auth"
	"github.com/nbouch/roombrowse/internal/config"
	"github.com/nbouch/roombrowse/internal/db"
	"github.com/nbouch/roombrowse/internal/imagestore/local"
	"github.com/nbouch/roombrowse/internal/logging"
	"github.com/nbouch/roombrowse/internal/service"
	"github.com/nbouch/roombrowse/internal/session"
	"github.com/nbouch/roombrowse/internal/store"
	"github.com/nbouch/roombrowse/internal/web"
	"github.com/nbouch/roombrowse/internal/web/templates"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	// The process must not serve requests without a signing secret.
	secret, err := auth.LoadOrCreateSecret(cfg.SecretKeyPath)
	if err != nil {
		logger.Error("failed to provision secret key", "error", err)
		return
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	imageStg, err := local.NewLocalImageStore(cfg.UploadPath)
	if err != nil {
		logger.Error("failed to initialize image store", "error", err)
		return
	}

	locationStore := store.NewLocationStore(database)
	roomStore := store.NewRoomStore(database)
	userStore := store.NewUserStore(database)

	directory := service.NewDirectoryService(locationStore, roomStore, imageStg, logger)
	accounts := service.NewAccountService(userStore, logger)
	sessions := session.NewManager(secret,
		time.Duration(cfg.SessionTTLHours)*time.Hour,
		time.Duration(cfg.RememberTTLDays)*24*time.Hour)

	server := web.NewServer(directory, accounts, sessions, imageStg, templates.FS, logger)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
