package main

import (
	"context"
	"fmt"

	"vibewise_backend/internal/user"

	fbauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

type userLister interface {
	ForEachUser(ctx context.Context, fn func(*fbauth.UserRecord) error) error
}

type userBootstrapper interface {
	EnsureUserDocument(ctx context.Context, profile user.Profile) (bool, error)
}

type backfillStats struct {
	Scanned int
	Created int
	Failed  int
}

// runUserBackfill creates the Firestore documents for every Auth user that signed up
// before bootstrap existed. Per-user failures are counted and the scan continues.
func runUserBackfill(ctx context.Context, lister userLister, users userBootstrapper, logger *zap.Logger, batchSize int) (backfillStats, error) {
	if batchSize <= 0 {
		batchSize = 100
	}
	log := logger.Named("UserBackfill")
	log.Info("Starting user document backfill...", zap.Int("batchSize", batchSize))

	var stats backfillStats
	err := lister.ForEachUser(ctx, func(u *fbauth.UserRecord) error {
		if u == nil || u.UserInfo == nil {
			return nil
		}
		stats.Scanned++
		created, err := users.EnsureUserDocument(ctx, user.Profile{
			UID:         u.UID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			PhotoURL:    u.PhotoURL,
		})
		switch {
		case err != nil:
			stats.Failed++
			log.Error("Failed to ensure user document", zap.String("uid", u.UID), zap.Error(err))
		case created:
			stats.Created++
		}
		if stats.Scanned%batchSize == 0 {
			log.Info("Backfill progress",
				zap.Int("scanned", stats.Scanned),
				zap.Int("created", stats.Created),
				zap.Int("failed", stats.Failed),
			)
		}
		return ctx.Err()
	})
	if err != nil {
		return stats, fmt.Errorf("backfill aborted after %d users: %w", stats.Scanned, err)
	}

	log.Info("User document backfill finished.",
		zap.Int("scanned", stats.Scanned),
		zap.Int("created", stats.Created),
		zap.Int("failed", stats.Failed),
	)
	if stats.Failed > 0 {
		return stats, fmt.Errorf("%d users failed to backfill", stats.Failed)
	}
	return stats, nil
}
