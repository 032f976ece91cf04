// Package httpserver manages server creation and api routing.
package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.etcd.io/bbolt"

	"github.com/go-petr/account-engine/internal/accountdelivery"
	"github.com/go-petr/account-engine/internal/accountrepo"
	"github.com/go-petr/account-engine/internal/accountservice"
	"github.com/go-petr/account-engine/internal/middleware"
	"github.com/go-petr/account-engine/pkg/configpkg"
	"github.com/go-petr/account-engine/pkg/dbpkg"
	"github.com/go-petr/account-engine/pkg/moneypkg"
)

func init() {
	// Balances are written as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Server holds the account service, handlers router and configuration.
type Server struct {
	Engine  *gin.Engine
	Service *accountservice.Service
	Config  configpkg.Config

	closeStore func() error
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Close releases the underlying store.
func (s *Server) Close() error {
	if s.closeStore == nil {
		return nil
	}

	return s.closeStore()
}

// OpenStore connects to the account store selected by config.StoreDriver.
// The returned function closes the connection.
func OpenStore(config configpkg.Config) (accountservice.Repo, func() error, error) {
	noop := func() error { return nil }

	switch config.StoreDriver {
	case configpkg.StorePostgres:
		db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot connect to database: %w", err)
		}

		return accountrepo.NewRepoPGS(db), db.Close, nil
	case configpkg.StoreBolt:
		db, err := bbolt.Open(config.BoltPath, 0o600, &bbolt.Options{Timeout: time.Second})
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open bolt file: %w", err)
		}

		repo, err := accountrepo.NewRepoBolt(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return repo, db.Close, nil
	case configpkg.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr: config.RedisAddr,
			DB:   config.RedisDB,
		})

		return accountrepo.NewRepoRedis(rdb), rdb.Close, nil
	case configpkg.StoreMemory:
		return accountrepo.NewRepoMemory(), noop, nil
	}

	return nil, nil, fmt.Errorf("unsupported store driver %q", config.StoreDriver)
}

// New creates Server type with the account domain wired to the given store.
func New(repo accountservice.Repo, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountService := accountservice.New(repo)
	accountHandler := accountdelivery.NewHandler(accountService)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := moneypkg.Register(v); err != nil {
			return nil, errors.New("cannot register amount validator")
		}
	}

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Metrics())
	engine.Use(gin.Recovery())

	accountHandler.RegisterRoutes(engine)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	server := &Server{
		Engine:  engine,
		Service: accountService,
		Config:  config,
	}

	return server, nil
}

// Open connects to the configured store and creates Server on top of it.
func Open(logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	repo, closeStore, err := OpenStore(config)
	if err != nil {
		return nil, err
	}

	server, err := New(repo, logger, config)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	server.closeStore = closeStore

	return server, nil
}
