package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/booking"
	"github.com/iliyamo/room-reservation/internal/cache"
	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/database"
	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/middleware"
	"github.com/iliyamo/room-reservation/internal/queue"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional infrastructure: a nil client degrades the list cache,
	// response cache and rate limiter to no-ops instead of failing startup.
	rdb := config.NewRedisClient()
	var lists cache.ReservationLists
	if rdb != nil {
		lists = cache.NewRedis(rdb, cache.DefaultTTL)
	} else {
		log.Println("redis unavailable, using in-process reservation list cache")
		lists = cache.NewMemory(cache.DefaultTTL)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	companies := repository.NewCompanyRepo(db)
	rooms := repository.NewRoomRepo(db)
	members := repository.NewMemberRepo(db)
	reservations := repository.NewReservationRepo(db)

	svc := booking.NewService(reservations, rooms, companies, members, lists)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	resH := handler.NewReservationHandler(svc, reservations, lists)
	companyH := handler.NewCompanyHandler(companies, members, users)
	roomH := handler.NewRoomHandler(rooms, companies)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterReservations(e, resH, cfg.JWTSecret)
	router.RegisterRooms(e, roomH, cfg.JWTSecret,
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterAdmin(e, companyH, roomH, cfg.JWTSecret)

	// Background consumer that journals booked/cancelled events.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
