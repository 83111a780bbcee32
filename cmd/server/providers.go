package main

import (
	"vibewise_backend/internal/auth"
	"vibewise_backend/internal/config"
	"vibewise_backend/internal/firebase"
	"vibewise_backend/internal/localstore"
	"vibewise_backend/internal/platform/database"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// provideDatabase opens the device store database and migrates its schema.
func provideDatabase(cfg *config.Config, logger *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := localstore.Migrate(db); err != nil {
		database.CloseGORMDB(db, logger)
		return nil, nil, err
	}
	cleanup := func() {
		database.CloseGORMDB(db, logger)
		_ = logger.Sync()
	}
	return db, cleanup, nil
}

func provideFirestore(fs *firebase.FirebaseService) *firestore.Client {
	return fs.Firestore()
}

func providePendingRedirectStore(cfg *config.Config) auth.PendingRedirectStore {
	return auth.NewInMemoryPendingRedirectStore(cfg.OAuthStateTTL)
}
