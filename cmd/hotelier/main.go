package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hotelier/internal/billing"
	"hotelier/internal/cli"
	"hotelier/internal/config"
	"hotelier/internal/events"
	"hotelier/internal/ledger"
	"hotelier/internal/logging"
	"hotelier/internal/metrics"
	"hotelier/internal/models"
	"hotelier/internal/registry"
	"hotelier/internal/report"
	"hotelier/internal/store"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewEventBus()
	subscribeObservers(eventBus, logger)

	rooms, guests, bookingLedger, billingService, err := buildServices(cfg, eventBus, logger)
	if err != nil {
		return err
	}

	reportService := report.NewService(rooms, guests, bookingLedger, billingService, cfg.Exports.Path, logger)

	if cfg.Backup.Enabled {
		backupService := store.NewBackupService(cfg.Storage.DataDir, cfg.Backup, logger)
		go backupService.Start(ctx)
	}

	metrics.Register()
	if cfg.Monitoring.PrometheusEnabled {
		go serveMetrics(cfg.Monitoring.PrometheusPort, logger)
	}

	app := cli.NewApp(os.Stdin, os.Stdout, rooms, guests, bookingLedger, billingService, reportService, logger)
	return app.Run(ctx)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := baseLogger.With().Str("component", "hotelier").Logger()

	return cfg, &logger, closer, nil
}

// buildServices opens the four document collections and wires the
// registries, ledger and billing on top of them. Any unreadable store
// aborts startup; there is no recovery path without the data.
func buildServices(cfg *config.Config, eventBus *events.EventBus, logger *zerolog.Logger) (*registry.RoomRegistry, *registry.GuestRegistry, *ledger.Ledger, *billing.Service, error) {
	dataDir := cfg.Storage.DataDir

	roomCol, err := store.NewCollection[models.Room](dataDir, "rooms")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	guestCol, err := store.NewCollection[models.Guest](dataDir, "guests")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	bookingCol, err := store.NewCollection[models.Booking](dataDir, "bookings")
	if err != nil {
		return nil, nil, nil, nil, err
	}
	billCol, err := store.NewCollection[models.Bill](dataDir, "bills")
	if err != nil {
		return nil, nil, nil, nil, err
	}

	rooms, err := registry.NewRoomRegistry(roomCol, logger)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := rooms.Seed(cfg.Rooms); err != nil {
		return nil, nil, nil, nil, err
	}

	guests, err := registry.NewGuestRegistry(guestCol, logger)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	bookingLedger, err := ledger.New(bookingCol, rooms, guests, eventBus, logger)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	policy := billing.Policy{CancellationFeePercent: *cfg.Billing.CancellationFeePercent}
	billingService, err := billing.NewService(billCol, bookingLedger, rooms, eventBus, policy, logger)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return rooms, guests, bookingLedger, billingService, nil
}

// subscribeObservers writes every domain event to the structured log
// and counts it.
func subscribeObservers(bus *events.EventBus, logger *zerolog.Logger) {
	eventTypes := []string{
		events.EventBookingCreated,
		events.EventBookingCheckedIn,
		events.EventBookingCheckedOut,
		events.EventBookingCancelled,
		events.EventBookingRescheduled,
		events.EventBillGenerated,
		events.EventBillPaid,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, func(event *events.Event) error {
			logger.Info().
				Str("event_type", event.Type).
				RawJSON("payload", event.Payload).
				Msg("domain event")
			metrics.IncEvent(event.Type)
			return nil
		})
	}
}

func serveMetrics(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info().Str("addr", addr).Msg("metrics listener started")
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error().Err(err).Msg("metrics listener error")
	}
}
