package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MrJamesThe3rd/innkeeper/internal/audit"
	"github.com/MrJamesThe3rd/innkeeper/internal/calendar"
	"github.com/MrJamesThe3rd/innkeeper/internal/config"
	"github.com/MrJamesThe3rd/innkeeper/internal/database"
	"github.com/MrJamesThe3rd/innkeeper/internal/export"
	innkeeperHttp "github.com/MrJamesThe3rd/innkeeper/internal/http"
	exportHandler "github.com/MrJamesThe3rd/innkeeper/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/innkeeper/internal/http/importcsv"
	invoiceHandler "github.com/MrJamesThe3rd/innkeeper/internal/http/invoice"
	reservationHandler "github.com/MrJamesThe3rd/innkeeper/internal/http/reservation"
	roomHandler "github.com/MrJamesThe3rd/innkeeper/internal/http/room"
	stayHandler "github.com/MrJamesThe3rd/innkeeper/internal/http/stay"
	"github.com/MrJamesThe3rd/innkeeper/internal/importer"
	"github.com/MrJamesThe3rd/innkeeper/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/innkeeper/internal/invoice/store"
	"github.com/MrJamesThe3rd/innkeeper/internal/memstore"
	"github.com/MrJamesThe3rd/innkeeper/internal/metrics"
	"github.com/MrJamesThe3rd/innkeeper/internal/notify"
	"github.com/MrJamesThe3rd/innkeeper/internal/reservation"
	reservationStore "github.com/MrJamesThe3rd/innkeeper/internal/reservation/store"
	"github.com/MrJamesThe3rd/innkeeper/internal/room"
	roomStore "github.com/MrJamesThe3rd/innkeeper/internal/room/store"
	"github.com/MrJamesThe3rd/innkeeper/internal/stay"
	stayStore "github.com/MrJamesThe3rd/innkeeper/internal/stay/store"
)

const dispatchBuffer = 256

type repositories struct {
	rooms        room.Repository
	reservations reservation.Repository
	stays        stay.Repository
	invoices     invoice.Repository
	close        func() error
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.Backend() == config.BackendMemory {
		store := memstore.New()

		return &repositories{
			rooms:        store.Rooms(),
			reservations: store.Reservations(),
			stays:        store.Stays(),
			invoices:     store.Invoices(),
			close:        func() error { return nil },
		}, nil
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &repositories{
		rooms:        roomStore.New(db),
		reservations: reservationStore.New(db),
		stays:        stayStore.New(db),
		invoices:     invoiceStore.New(db),
		close:        db.Close,
	}, nil
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := metrics.New(registry)

	auditLog := audit.NewDispatcher(logger, dispatchBuffer, audit.NewLogSink(logger), m)
	defer auditLog.Close()

	var notifier notify.Notifier = notify.NewLogNotifier(logger)
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.Timeout)
	}

	notifications := notify.NewDispatcher(notifier, logger, dispatchBuffer, m)
	defer notifications.Close()

	cal := calendar.New(calendar.System(), loc)

	var (
		roomService        = room.NewService(repos.rooms, cal, auditLog)
		reservationService = reservation.NewService(repos.reservations, cal, auditLog,
			reservation.Config{HoldPolicy: cfg.HoldPolicy()})
		stayService    = stay.NewService(repos.stays, cal, auditLog, notifications)
		invoiceService = invoice.NewService(repos.invoices, cal, auditLog, notifications, invoice.Config{
			Prefix:      cfg.Invoice.Prefix,
			DueDays:     cfg.Invoice.DueDays,
			Overpayment: cfg.OverpaymentPolicy(),
		})
		importService = importer.NewService(roomService)
		exportService = export.NewService(invoiceService)
	)

	router := innkeeperHttp.New(innkeeperHttp.Handlers{
		Rooms:        roomHandler.NewHandler(roomService),
		Reservations: reservationHandler.NewHandler(reservationService),
		Stays:        stayHandler.NewHandler(stayService),
		Invoices:     invoiceHandler.NewHandler(invoiceService),
		Import:       importHandler.NewHandler(importService),
		Export:       exportHandler.NewHandler(exportService),
	}, innkeeperHttp.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		Gatherer:       registry,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "backend", cfg.Backend())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	return nil
}
