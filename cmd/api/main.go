package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"devconnect/internal/adapter/api"
	"devconnect/internal/adapter/api/handler"
	apimiddleware "devconnect/internal/adapter/api/middleware"
	"devconnect/internal/adapter/api/router"
	"devconnect/internal/adapter/repository"
	"devconnect/internal/infrastructure/firebase"
	"devconnect/internal/infrastructure/github"
	"devconnect/internal/infrastructure/ratelimit"
	"devconnect/internal/infrastructure/storage"
	"devconnect/internal/infrastructure/websocket"
	"devconnect/internal/usecase"
	"devconnect/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(serviceAccountJSON)))
		serviceAccountPath = ""
	} else if serviceAccountPath != "" {
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)
	postRepo := repository.NewFirestorePostRepository(firestoreClient)
	jobRepo := repository.NewFirestoreJobRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)
	githubClient := github.NewOAuthClient(cfg.GithubClientID, cfg.GithubClientSecret)

	limiter := ratelimit.NewRateLimiter()
	limiter.StartCleanupRoutine()

	wsManager := websocket.NewManager(websocket.NewMemoryRegistry())
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(firebaseAuthClient, githubClient, userRepo)
	userUseCase := usecase.NewUserUseCase(userRepo)
	chatUseCase := usecase.NewChatUseCase(chatRepo, userRepo, wsManager, limiter)
	postUseCase := usecase.NewPostUseCase(postRepo, userRepo)
	jobUseCase := usecase.NewJobUseCase(jobRepo, userRepo)

	wsManager.SetEventHandler(chatUseCase)

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)

	handler.Setup(authUseCase, userUseCase, chatUseCase, postUseCase, jobUseCase)
	handler.SetupFileHandler(storageClient)
	handler.SetupHealthHandler(firebaseAuthClient)
	handler.SetupWebSocketHandler(wsManager, authMiddleware, userRepo, cfg.AllowedOrigins)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	router.Setup(e, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
