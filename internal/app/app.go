package app

import (
	"net/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"home-inventory-go/internal/auth"
	"home-inventory-go/internal/config"
	"home-inventory-go/internal/db"
	categorydomain "home-inventory-go/internal/domain/category"
	housedomain "home-inventory-go/internal/domain/house"
	productdomain "home-inventory-go/internal/domain/product"
	shoppinglistdomain "home-inventory-go/internal/domain/shoppinglist"
	userdomain "home-inventory-go/internal/domain/user"
	"home-inventory-go/internal/repository/inmemory"
	categoryrepo "home-inventory-go/internal/repository/postgres/category"
	houserepo "home-inventory-go/internal/repository/postgres/house"
	productrepo "home-inventory-go/internal/repository/postgres/product"
	shoppinglistrepo "home-inventory-go/internal/repository/postgres/shoppinglist"
	userrepo "home-inventory-go/internal/repository/postgres/user"
	rediscache "home-inventory-go/internal/repository/redis"
	"home-inventory-go/internal/transport/httpserver"
	"home-inventory-go/internal/transport/httpserver/handler"
	authmw "home-inventory-go/internal/transport/httpserver/middleware"
	"home-inventory-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *redis.Client
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	var userCache userdomain.Cache = inmemory.NewUserCache()
	if cfg.Redis.Enabled {
		log.Info("app: initializing redis", "addr", cfg.Redis.Addr)
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		userCache = rediscache.NewUserCache(redisClient, log)
	}

	userSvc := userdomain.NewService(userrepo.NewPostgres(dbConn), userCache)
	houseSvc := housedomain.NewService(houserepo.NewPostgres(dbConn), userSvc)
	productSvc := productdomain.NewService(productrepo.NewPostgres(dbConn))
	categorySvc := categorydomain.NewService(categoryrepo.NewPostgres(dbConn), categorydomain.DeletePolicy(cfg.Policy.CategoryDelete))
	shoppingListSvc := shoppinglistdomain.NewService(shoppinglistrepo.NewPostgres(dbConn))

	tokens := auth.NewTokenService(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTL)

	handlers := handler.New(userSvc, houseSvc, productSvc, categorySvc, shoppingListSvc, tokens, cfg.Session, log)

	log.Info("app: initializing router")
	session := authmw.NewSessionAuth(tokens, userSvc, cfg.Session.CookieName, log)
	guard := authmw.NewHouseGuard(houseSvc, cfg.Policy, log)
	router := httpserver.NewRouter(cfg, handlers, session, guard, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		redis:      redisClient,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			return err
		}
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
