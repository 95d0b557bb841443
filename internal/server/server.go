// Package server exposes the tracker over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/aquametric/aquatrack/internal/config"
	"github.com/aquametric/aquatrack/internal/observability/metrics"
	"github.com/aquametric/aquatrack/internal/oracle"
	trackerdomain "github.com/aquametric/aquatrack/internal/tracker/domain"
	treasurydomain "github.com/aquametric/aquatrack/internal/treasury/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ServerParams struct {
	fx.In

	Cfg         config.Config
	Log         *zap.Logger
	Engine      *gin.Engine
	TrackerSvc  trackerdomain.Service
	TreasurySvc treasurydomain.Service
	Oracles     oracle.Registry
	Metrics     *metrics.Metrics `optional:"true"`
}

type Server struct {
	cfg         config.Config
	log         *zap.Logger
	engine      *gin.Engine
	trackersvc  trackerdomain.Service
	treasurysvc treasurydomain.Service
	oracles     oracle.Registry
	metrics     *metrics.Metrics
}

func NewServer(p ServerParams) *Server {
	return &Server{
		cfg:         p.Cfg,
		log:         p.Log.Named("http.server"),
		engine:      p.Engine,
		trackersvc:  p.TrackerSvc,
		treasurysvc: p.TreasurySvc,
		oracles:     p.Oracles,
		metrics:     p.Metrics,
	}
}

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(log *zap.Logger, registry *prometheus.Registry) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(log))
	r.Use(CallerMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return r
}

// RegisterAPIRoutes mounts every tracker and treasury route under /v1.
func (s *Server) RegisterAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/oracle/contract", s.SetOracleContract)
	v1.GET("/oracle/verify/:principal", s.VerifyOracle)
	v1.PUT("/fees/logging", s.SetLoggingFee)

	v1.POST("/farms", s.RegisterFarm)
	v1.GET("/farms/count", s.GetFarmCount)
	v1.GET("/farms/:id", s.GetFarm)
	v1.GET("/farms/:id/remaining-quota", s.GetRemainingQuota)
	v1.GET("/farms/:id/last-update", s.GetFarmUpdate)
	v1.POST("/farms/:id/usage", s.LogUsage)
	v1.PATCH("/farms/:id", s.UpdateFarm)
	v1.GET("/owners/:principal/farm", s.CheckFarmExistence)

	v1.POST("/treasury/deposits", s.Deposit)
	v1.GET("/treasury/accounts/:principal", s.GetAccount)
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

// Module wires the HTTP server for the application.
var Module = fx.Module("http.server",
	fx.Provide(
		NewEngine,
		NewServer,
	),
	fx.Invoke(func(s *Server) { s.RegisterAPIRoutes() }),
	fx.Invoke(RunHTTP),
)
