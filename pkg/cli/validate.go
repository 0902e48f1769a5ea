package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/cli/config"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("OK")
	ngMark   = color.New(color.FgRed).Sprint("NG")
	skipMark = color.New(color.FgYellow).Sprint("--")
)

func cmdValidate() *cli.Command {
	var fileCfg config.File
	var notifyCfg config.Notify
	var ping bool

	var flags []cli.Flag
	flags = append(flags, fileCfg.Flags()...)
	flags = append(flags, notifyCfg.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "ping",
		Usage:       "Check that every configured notifier endpoint answers",
		Destination: &ping,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the configuration file and notifier settings",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			w := output(c)

			if fileCfg.Path() == "" {
				fmt.Fprintf(w, "[%s] configuration: --config is required\n", ngMark)
				return goerr.Wrap(config.ErrMissingSetting, "configuration file is not specified",
					goerr.V(config.SettingKey, "config"))
			}

			appCfg, err := fileCfg.Configure()
			if err != nil {
				fmt.Fprintf(w, "[%s] configuration: %s\n", ngMark, err.Error())
				return goerr.Wrap(err, "configuration validation failed")
			}
			th := appCfg.ToThresholds()
			fmt.Fprintf(w, "[%s] configuration: %s (RUC %s)\n", okMark, appCfg.Company.Name, appCfg.Company.TaxID)
			fmt.Fprintf(w, "     labor hours %.0f, report window %d days, EPP window %d days, training reminder %d days\n",
				th.DefaultLaborHours, th.ReportWindowDays, th.EPPExpiryWindowDays, th.TrainingReminderDays)

			notifiers, err := notifyCfg.Configure()
			if err != nil {
				fmt.Fprintf(w, "[%s] notifiers: %s\n", ngMark, err.Error())
				return goerr.Wrap(err, "notifier validation failed")
			}
			fmt.Fprintf(w, "[%s] notifiers: %d configured\n", okMark, len(notifiers))

			if !ping {
				return nil
			}
			if err := pingNotifiers(ctx, w, notifiers); err != nil {
				return err
			}

			logging.From(ctx).Info("Validation passed", "config", fileCfg)
			return nil
		},
	}
}

func pingNotifiers(ctx context.Context, w io.Writer, notifiers []interfaces.Notifier) error {
	var failed int
	for _, n := range notifiers {
		name := fmt.Sprintf("%T", n)
		pinger, ok := n.(interfaces.Pinger)
		if !ok {
			fmt.Fprintf(w, "[%s] %s: ping not supported\n", skipMark, name)
			continue
		}
		if err := pinger.Ping(ctx); err != nil {
			failed++
			fmt.Fprintf(w, "[%s] %s: %s\n", ngMark, name, err.Error())
			continue
		}
		fmt.Fprintf(w, "[%s] %s: reachable\n", okMark, name)
	}

	if failed > 0 {
		return goerr.New("notifier ping failed", goerr.V("failed", failed))
	}
	return nil
}
