// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"vibewise_backend/internal/analytics"
	"vibewise_backend/internal/app"
	"vibewise_backend/internal/auth"
	"vibewise_backend/internal/config"
	"vibewise_backend/internal/device"
	"vibewise_backend/internal/firebase"
	"vibewise_backend/internal/identity"
	"vibewise_backend/internal/jobs"
	"vibewise_backend/internal/localstore"
	"vibewise_backend/internal/middleware"
	"vibewise_backend/internal/platform/elasticsearch"
	"vibewise_backend/internal/platform/logger"
	"vibewise_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		provideDatabase,
		elasticsearch.NewClient,

		// Firebase Admin SDK
		firebase.NewFirebaseService,
		provideFirestore,
		wire.Bind(new(middleware.TokenVerifier), new(*firebase.FirebaseService)),
		wire.Bind(new(auth.TokenAdmin), new(*firebase.FirebaseService)),

		// Device store
		localstore.NewGORMRepository,
		localstore.NewService,
		wire.Bind(new(user.DeviceStore), new(localstore.Service)),
		wire.Bind(new(auth.DeviceStore), new(localstore.Service)),
		wire.Bind(new(jobs.Sweeper), new(localstore.Service)),

		analytics.NewRecorder,

		// Users
		user.NewFirestoreStore,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		wire.Bind(new(auth.UserBootstrapper), new(*user.ServiceImplementation)),
		user.NewHandler,

		// Sign-in
		identity.NewClient,
		wire.Bind(new(auth.IdentityClient), new(*identity.Client)),
		auth.NewGoogleOAuth,
		providePendingRedirectStore,
		auth.NewService,
		auth.NewHandler,

		device.NewHandler,
		jobs.NewLocalStoreSweepJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
