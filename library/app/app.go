package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/library-resource/library/config"
	"github.com/Astemirdum/library-resource/library/internal/handler"
	"github.com/Astemirdum/library-resource/library/internal/repository"
	"github.com/Astemirdum/library-resource/library/internal/server"
	"github.com/Astemirdum/library-resource/library/internal/service"
	"github.com/Astemirdum/library-resource/library/migrations"
	"github.com/Astemirdum/library-resource/pkg/circuit_breaker"
	"github.com/Astemirdum/library-resource/pkg/kafka"
	"github.com/Astemirdum/library-resource/pkg/logger"
	"github.com/Astemirdum/library-resource/pkg/postgres"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "library")
	defer log.Sync() //nolint:errcheck

	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %w", err)
	}
	defer db.Close()

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo %w", err)
	}

	publisher := kafka.NopPublisher()
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka.NewProducer %w", err)
		}
		defer producer.Close()
		cb := circuit_breaker.New(20, 30*time.Second, 0.5, 3)
		publisher = kafka.NewPublisher(producer, kafka.LibraryEventsTopic, cb, log)
	} else {
		log.Warn("kafka is not configured, library events are not published")
	}
	svc := service.NewService(repo, publisher, log)

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server start ON: ",
			zap.String("addr",
				net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
		return srv.Run()
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Debug("Graceful shutdown", zap.Error(context.Cause(gCtx)))

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server", zap.Error(err))
		return err
	}
	log.Info("Graceful shutdown finished")
	return nil
}
