package main

import (
	"os"
	"os/signal"
	"syscall"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"github.com/sweeplabs/sweepd/internal/config"
	"github.com/sweeplabs/sweepd/internal/core/application"
	"github.com/sweeplabs/sweepd/internal/core/domain"
	"github.com/sweeplabs/sweepd/internal/core/ports"
	"github.com/sweeplabs/sweepd/internal/infrastructure/signer"
	"github.com/sweeplabs/sweepd/internal/infrastructure/tron"
	"github.com/sweeplabs/sweepd/internal/interface/web"
)

// nolint:all
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	log.SetLevel(log.Level(cfg.LogLevel))

	log.Infof("starting sweepd %s (%s, %s)...", version, commit, date)

	sentryEnabled := cfg.SentryDSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN, Release: version}); err != nil {
			log.WithError(err).Fatal("failed to initialize sentry")
		}
	}

	var signerSvc ports.SignerService
	if cfg.Mnemonic != "" {
		signerSvc, err = signer.NewServiceFromMnemonic(cfg.Mnemonic)
	} else {
		signerSvc, err = signer.NewService(cfg.PrivateKey)
	}
	if err != nil {
		log.WithError(err).Fatal("failed to load signing key")
	}

	ledgerSvc := tron.NewService(cfg.NodeURL, cfg.APIKey)

	appSvc, err := application.NewService(
		signerSvc, ledgerSvc,
		cfg.MonitoredAddress, cfg.CollectionAddress,
		cfg.PermissionID,
		domain.SweepPolicy{ResidualSun: cfg.ResidualSun, FeeMarginSun: cfg.FeeMarginSun},
	)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize sweep engine")
	}

	svc, err := web.NewService(web.Config{
		Port:          cfg.HTTPPort,
		WebhookSecret: cfg.WebhookSecret,
		SentryEnabled: sentryEnabled,
	}, appSvc)
	if err != nil {
		log.Fatal(err)
	}

	log.RegisterExitHandler(svc.Stop)

	log.Info("starting service...")
	if err := svc.Start(); err != nil {
		log.Fatal(err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Info("shutting down service...")
	log.Exit(0)
}
