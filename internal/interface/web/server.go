package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/sweeplabs/sweepd/internal/core/application"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

type Config struct {
	Port          uint32
	WebhookSecret string
	SentryEnabled bool
}

type service struct {
	cfg    Config
	server *http.Server
}

func NewService(cfg Config, appSvc *application.Service) (*service, error) {
	if cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("missing webhook secret")
	}

	router := gin.New()
	setupMiddleware(router, cfg.SentryEnabled)

	h := &handler{svc: appSvc}

	router.GET("/health", h.Health)

	triggers := router.Group("/", bearerAuth(cfg.WebhookSecret))
	triggers.POST("/webhook/trx-received", h.WebhookReceived)
	triggers.POST("/manual-sweep", h.ManualSweep)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	return &service{cfg, server}, nil
}

func (s *service) Start() error {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("web server exited")
		}
	}()
	log.Infof("started listening at %s", s.server.Addr)
	return nil
}

func (s *service) Stop() {
	// nolint:all
	s.server.Shutdown(context.Background())
	log.Info("stopped web server")
}
