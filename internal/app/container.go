package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gearshare/gearshare-backend/internal/api"
	"github.com/gearshare/gearshare-backend/internal/auth"
	"github.com/gearshare/gearshare-backend/internal/booking"
	"github.com/gearshare/gearshare-backend/internal/item"
	"github.com/gearshare/gearshare-backend/internal/itemphoto"
	"github.com/gearshare/gearshare-backend/internal/itemrequest"
	"github.com/gearshare/gearshare-backend/internal/pkg/storage"
	"github.com/gearshare/gearshare-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction     bool
	ProdOrigins      string
	DBPool           *pgxpool.Pool
	JWTSecret        string
	JWTTTL           time.Duration
	BcryptCost       int
	PhotoStoragePath string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	photoStore, err := storage.NewLocalStorage(cfg.PhotoStoragePath)
	if err != nil {
		return nil, fmt.Errorf("init photo storage: %w", err)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Item Request Module
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	requestService := itemrequest.NewService(requestRepo, userService)

	// Item Module
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	itemService := item.NewService(itemRepo, userService, requestService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, itemService, userService)

	// Item Photo Module
	photoRepo := itemphoto.NewPgxRepository(cfg.DBPool)
	photoService := itemphoto.NewService(photoRepo, itemService, photoStore)

	// Router
	router := api.NewRouter(
		api.RouterConfig{
			IsProduction: cfg.IsProduction,
			ProdOrigins:  splitOrigins(cfg.ProdOrigins),
		},
		userService,
		itemService,
		bookingService,
		requestService,
		photoService,
		jwtManager,
	)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}

// splitOrigins parses a comma-separated origin list from the environment.
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
