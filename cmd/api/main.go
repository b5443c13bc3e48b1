package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ovalles/cinehall/internal/app"
	"github.com/ovalles/cinehall/internal/clock"
	"github.com/ovalles/cinehall/internal/config"
	"github.com/ovalles/cinehall/internal/domain"
	"github.com/ovalles/cinehall/internal/snapshot"
	transporthttp "github.com/ovalles/cinehall/internal/transport/http"
)

func main() {
	logger := log.Default()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	clk := clock.NewSystem()
	venue := loadVenue(logger, cfg, clk)
	svc := app.NewInventoryService(venue, clk)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler)
	mux.Handle("/sessions", transporthttp.HandleSessions(svc))
	mux.Handle("/sessions/", transporthttp.HandleSessionByID(svc))
	mux.Handle("/tickets/", transporthttp.HandleTickets(svc))
	mux.Handle("/revenue", transporthttp.HandleRevenue(svc))
	mux.Handle("/admin/export", transporthttp.HandleSnapshotExport(svc))
	mux.Handle("/admin/import", transporthttp.HandleSnapshotImport(svc))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(mux, logger)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	log.Printf("api listening on %s", cfg.Addr)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}

	if cfg.SnapshotPath != "" {
		if err := svc.ExportSnapshot(cfg.SnapshotPath, snapshot.SortNone); err != nil {
			log.Printf("write snapshot: %v", err)
		} else {
			log.Printf("snapshot written to %s", cfg.SnapshotPath)
		}
	}
	log.Printf("server stopped")
}

func loadVenue(logger *log.Logger, cfg config.Config, clk clock.Clock) *domain.Venue {
	if cfg.SnapshotPath != "" {
		if _, err := os.Stat(cfg.SnapshotPath); err == nil {
			venue, err := snapshot.Import(cfg.SnapshotPath)
			if err != nil {
				log.Fatalf("import snapshot %s: %v", cfg.SnapshotPath, err)
			}
			logger.Printf("venue restored from %s (%d sessions)", cfg.SnapshotPath, len(venue.Sessions()))
			return venue
		}
		logger.Printf("WARN: snapshot %s not found, starting fresh", cfg.SnapshotPath)
	}

	venue := domain.NewVenue(cfg.VenueName, cfg.VenueAddress, cfg.VenueHalls)
	if cfg.SeedDemoData {
		seedSessions(logger, venue, clk)
	}
	return venue
}

func seedSessions(logger *log.Logger, venue *domain.Venue, clk clock.Clock) {
	now := clk.Now()
	seeds := []struct {
		title string
		start time.Time
		seats int
		price float64
	}{
		{"Inception", now.Add(24 * time.Hour), 100, 150.0},
		{"The Matrix", now.Add(48 * time.Hour), 80, 120.0},
	}
	for _, seed := range seeds {
		sess, err := domain.NewSession(seed.title, seed.start, seed.seats, seed.price)
		if err != nil {
			logger.Printf("WARN: seed session %q: %v", seed.title, err)
			continue
		}
		venue.AddSession(sess)
	}
	logger.Printf("seeded %d demo sessions", len(venue.Sessions()))
}
