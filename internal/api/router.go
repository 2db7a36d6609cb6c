package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gearshare/gearshare-backend/internal/auth"
	"github.com/gearshare/gearshare-backend/internal/booking"
	bookingHttp "github.com/gearshare/gearshare-backend/internal/booking/http"
	"github.com/gearshare/gearshare-backend/internal/item"
	itemHttp "github.com/gearshare/gearshare-backend/internal/item/http"
	"github.com/gearshare/gearshare-backend/internal/itemphoto"
	itemphotoHttp "github.com/gearshare/gearshare-backend/internal/itemphoto/http"
	"github.com/gearshare/gearshare-backend/internal/itemrequest"
	itemrequestHttp "github.com/gearshare/gearshare-backend/internal/itemrequest/http"
	"github.com/gearshare/gearshare-backend/internal/user"
	userHttp "github.com/gearshare/gearshare-backend/internal/user/http"
)

// RouterConfig carries the environment-dependent knobs the router needs.
type RouterConfig struct {
	IsProduction bool
	ProdOrigins  []string
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for every module.
func NewRouter(
	cfg RouterConfig,
	userService user.Service,
	itemService item.Service,
	bookingService booking.Service,
	requestService itemrequest.Service,
	photoService itemphoto.Service,
	jwtManager *auth.JWTManager,
) *gin.Engine {

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // local frontend
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates that the request carries a valid JWT.
	authMiddleware := auth.AuthRequired(jwtManager)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	authHandler := NewAuthHandler(userService, jwtManager)
	userHandler := userHttp.NewHandler(userService)
	itemHandler := itemHttp.NewHandler(itemService)
	bookingHandler := bookingHttp.NewHandler(bookingService)
	requestHandler := itemrequestHttp.NewHandler(requestService)
	photoHandler := itemphotoHttp.NewHandler(photoService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)
		v1.GET("/me", authMiddleware, authHandler.Me)

		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		itemHttp.RegisterRoutes(v1, itemHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		itemrequestHttp.RegisterRoutes(v1, requestHandler, authMiddleware)
		itemphotoHttp.RegisterRoutes(v1, photoHandler, authMiddleware)
	}

	return r
}
