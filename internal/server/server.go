// Package server boots the application: config, logging sinks, database,
// cache, storage, queue, event listeners, scheduled tasks, and the HTTP and
// gRPC listeners.
package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/anikasharma/greenbasket/app/jobs"
	"github.com/anikasharma/greenbasket/app/models"
	"github.com/anikasharma/greenbasket/app/routes"
	"github.com/anikasharma/greenbasket/app/services"
	"github.com/anikasharma/greenbasket/app/stream"
	"github.com/anikasharma/greenbasket/config"
	"github.com/anikasharma/greenbasket/pkg/cache"
	"github.com/anikasharma/greenbasket/pkg/database"
	"github.com/anikasharma/greenbasket/pkg/event"
	grpcserver "github.com/anikasharma/greenbasket/pkg/grpc"
	"github.com/anikasharma/greenbasket/pkg/logger"
	"github.com/anikasharma/greenbasket/pkg/metrics"
	"github.com/anikasharma/greenbasket/pkg/middleware"
	"github.com/anikasharma/greenbasket/pkg/notification"
	"github.com/anikasharma/greenbasket/pkg/queue"
	"github.com/anikasharma/greenbasket/pkg/reqid"
	"github.com/anikasharma/greenbasket/pkg/router"
	"github.com/anikasharma/greenbasket/pkg/schedule"
	"github.com/anikasharma/greenbasket/pkg/storage"
	"github.com/anikasharma/greenbasket/pkg/workerpool"
)

// Bootstrap wires everything that both the HTTP server and the worker
// processes need: config, logging sinks, connections, queue driver, job
// registry, event listeners and scheduled tasks.
func Bootstrap() error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.MongoLogURI(); uri != "" {
		h, err := logger.NewMongoHandler(uri, config.MongoLogDB(), "logs")
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		} else {
			logger.AttachHandler(h)
		}
	}

	if err := database.Connect(); err != nil {
		return err
	}
	storage.Connect()

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, queue falls back to memory", "error", err)
	} else {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}

	notification.SetSlackWebhook(config.Get("SLACK_WEBHOOK_URL", ""))

	jobs.Register()
	registerListeners()
	registerSchedule()
	return nil
}

// registerListeners connects the domain events to their side effects. The
// bounded pool keeps a checkout burst from spawning a goroutine per order.
func registerListeners() {
	pool := workerpool.New(16)

	event.Listen(services.EventOrderPlaced, func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		if err := pool.Submit(func() {
			stream.BroadcastNewOrder(order)
			if err := queue.Dispatch(&jobs.OrderPlacedJob{OrderID: order.ID}); err != nil {
				logger.Error("dispatch order placed job", "order_id", order.ID, "error", err)
			}
		}); err != nil {
			logger.Error("order placed listener", "order_id", order.ID, "error", err)
		}
	})
}

func registerSchedule() {
	schedule.Hourly().Name("catalog.featured.refresh").WithoutOverlapping().Run(func() {
		cache.Forget("catalog:featured")
	})

	schedule.Daily().Name("queue.failed.report").Run(func() {
		failed := queue.FailedJobs()
		if len(failed) > 0 {
			logger.Warn("failed queue jobs pending", "count", len(failed))
		}
	})
}

// Start boots the application and serves HTTP until SIGINT/SIGTERM, with
// the gRPC health sidecar, in-process queue workers and the scheduler
// running alongside.
func Start() error {
	if err := Bootstrap(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue.StartWorkers(ctx, 5)
	schedule.Start(ctx)

	grpcSrv, _, err := grpcserver.Start(config.GRPCPort())
	if err != nil {
		logger.Warn("grpc health server disabled", "error", err)
	} else {
		defer grpcserver.Stop(grpcSrv)
	}

	r := router.New()
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))
	routes.RegisterAPI(r)

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("http server listening", "addr", addr, "env", config.AppEnv())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
