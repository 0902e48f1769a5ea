package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/cli/config"
	httpctrl "github.com/secmon-lab/aegis/pkg/controller/http"
	"github.com/secmon-lab/aegis/pkg/service/report"
	"github.com/secmon-lab/aegis/pkg/service/worker"
	"github.com/secmon-lab/aegis/pkg/usecase"
	"github.com/secmon-lab/aegis/pkg/utils/async"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var fileCfg config.File
	var repoCfg config.Repository
	var storageCfg config.Storage
	var notifyCfg config.Notify
	var serverCfg config.Server

	var flags []cli.Flag
	flags = append(flags, fileCfg.Flags()...)
	flags = append(flags, serverCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			appCfg, err := fileCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load configuration")
			}
			if appCfg.Company.Name == "" {
				logging.Default().Warn("No company configured, reports will carry an empty header")
			}
			interval, err := appCfg.ScanInterval()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			store, err := storageCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize object storage")
			}

			notifiers, err := notifyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize notifiers")
			}
			if len(notifiers) == 0 {
				logging.Default().Info("No notifier configured, events will only be logged")
			}

			uc := usecase.New(repo,
				usecase.WithNotifier(notifiers...),
				usecase.WithStorage(store),
				usecase.WithRenderer(report.New()),
				usecase.WithDispatcher(async.Dispatch),
				usecase.WithCompany(appCfg.ToCompany()),
				usecase.WithThresholds(appCfg.ToThresholds()),
				usecase.WithSessionTTL(serverCfg.SessionTTL()),
			)

			var alertWorker *worker.AlertWorker
			if interval > 0 {
				alertWorker = worker.NewAlertWorker(uc.Alert, interval)
				alertWorker.Start(ctx)
			} else {
				logging.Default().Info("Alert scan disabled")
			}

			server := &http.Server{
				Addr:              serverCfg.Addr(),
				Handler:           httpctrl.New(uc, httpctrl.WithMetrics(serverCfg.MetricsEnabled())),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"server", serverCfg,
					"repository", repoCfg,
					"storage", storageCfg,
					"notify", notifyCfg,
					"config", fileCfg,
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				if alertWorker != nil {
					alertWorker.Stop()
				}
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if alertWorker != nil {
					alertWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
