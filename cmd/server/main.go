package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/movierental/backend/internal/config"
	"github.com/movierental/backend/internal/database"
	"github.com/movierental/backend/internal/handler"
	"github.com/movierental/backend/internal/queue"
	"github.com/movierental/backend/internal/repository"
	"github.com/movierental/backend/internal/router"
	"github.com/movierental/backend/internal/validator"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	applications := repository.NewApplicationRepo(db)
	chats := repository.NewChatRepo(db)

	e := echo.New()
	e.Validator = validator.New()

	authHandler := handler.NewAuthHandler(cfg, users)
	movieHandler := handler.NewMovieHandler(movies, cfg.UploadDir)
	applicationHandler := handler.NewApplicationHandler(applications, cfg.UploadDir)
	chatHandler := handler.NewChatHandler(chats)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, auth rate limiting disabled")
	}

	router.RegisterRoutes(e, movieHandler)
	router.RegisterAuth(e, authHandler, rdb, cfg.RateLimitMax, cfg.RateLimitWin, cfg.JWTSecret)
	router.RegisterMovies(e, movieHandler, cfg.JWTSecret)
	router.RegisterApplications(e, applicationHandler, cfg.JWTSecret)
	router.RegisterChats(e, chatHandler, cfg.JWTSecret)

	// Chat events are consumed in the background; the consumer keeps its
	// own reconnect loop and never takes the server down.
	go func() {
		if err := queue.StartChatConsumer(); err != nil {
			log.Printf("chat consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
