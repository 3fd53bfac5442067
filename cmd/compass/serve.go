package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/courtneynewtocode/career-compass/internal/analytics"
	api "github.com/courtneynewtocode/career-compass/internal/api/http"
	"github.com/courtneynewtocode/career-compass/internal/assessment"
	auth "github.com/courtneynewtocode/career-compass/internal/auth/middleware"
	"github.com/courtneynewtocode/career-compass/internal/config"
	"github.com/courtneynewtocode/career-compass/internal/db"
	"github.com/courtneynewtocode/career-compass/internal/mailer"
	"github.com/courtneynewtocode/career-compass/internal/metrics"
	"github.com/courtneynewtocode/career-compass/internal/rbac"
	"github.com/courtneynewtocode/career-compass/internal/results"
	"github.com/courtneynewtocode/career-compass/internal/storage"
)

func newServeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, *cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "listen address")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	dbh, err := db.Open(openCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	cancel()
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer dbh.Close()

	defs, err := loader(&cfg)
	if err != nil {
		return err
	}
	store, err := resultStore(cfg, dbh)
	if err != nil {
		return err
	}
	events := analytics.NewRepo(dbh, string(cfg.Mode))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	mail := mailer.New(cfg.MailerAPIURL, cfg.MailerAccessKey, cfg.MailerFromName, cfg.GeneratePDF, cfg.MailerTimeout)
	if !mail.Enabled() {
		log.Printf("mailer: MAILER_API_URL or MAILER_ACCESS_KEY unset, report emails disabled")
	}

	svc := assessment.NewService(defs, store, mail, analytics.NewTracker(events), m,
		assessment.ShowResults(cfg.ShowResultsToUser),
		assessment.StoreResults(cfg.StoreResults),
		assessment.RejectSuspicious(cfg.RejectSuspicious),
		assessment.Backend(cfg.ResultsBackend),
	)

	router := api.NewRouter(api.Deps{
		Service:   svc,
		Tests:     defs,
		Results:   store,
		Events:    events,
		Auth:      auth.NewAuthService(cfg.AuthHMACSecret),
		Accounts:  []auth.Account{{Username: cfg.AdminUser, PassHash: cfg.AdminPassHash, Role: rbac.RoleAdmin}},
		AccessKey: cfg.StorageAccessKey,
		Origins:   cfg.CORSOrigins(),
		DB:        dbh,
		Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	s := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (mode=%s, db=%s, results=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, cfg.ResultsBackend)
		errc <- s.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Printf("shutting down")
	return s.Shutdown(shutdownCtx)
}

func resultStore(cfg config.Config, dbh *sql.DB) (results.Store, error) {
	switch cfg.ResultsBackend {
	case "sql":
		return results.NewSQLStore(dbh), nil
	case "fs", "":
		bs, err := storage.NewFSStore(cfg.BlobBasePath)
		if err != nil {
			return nil, fmt.Errorf("blob store: %w", err)
		}
		return results.NewFileStore(bs), nil
	}
	return nil, fmt.Errorf("unknown RESULTS_BACKEND %q (want fs or sql)", cfg.ResultsBackend)
}
