package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/cli/config"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/service/report"
	"github.com/secmon-lab/aegis/pkg/usecase"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdReport() *cli.Command {
	var fileCfg config.File
	var repoCfg config.Repository
	var from, to, format, outDir string
	var laborHours float64

	var flags []cli.Flag
	flags = append(flags, fileCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "from",
			Usage:       "First day of the period (YYYY-MM-DD), default is the configured window before --to",
			Destination: &from,
		},
		&cli.StringFlag{
			Name:        "to",
			Usage:       "Day after the last day of the period (YYYY-MM-DD), default is now",
			Destination: &to,
		},
		&cli.FloatFlag{
			Name:        "labor-hours",
			Usage:       "Worked hours in the period, default is the configured value",
			Destination: &laborHours,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format (xlsx or pdf)",
			Value:       string(types.ReportFormatXLSX),
			Destination: &format,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Directory the report is written to",
			Value:       ".",
			Destination: &outDir,
		},
	)

	return &cli.Command{
		Name:  "report",
		Usage: "Generate the legal safety report for a period",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := types.ParseReportFormat(format)
			if err != nil {
				return goerr.Wrap(config.ErrInvalidConfig, "invalid report format", goerr.V(config.ValueKey, format))
			}

			var period usecase.ReportPeriod
			if period.Start, err = parseDay("from", from); err != nil {
				return err
			}
			if period.End, err = parseDay("to", to); err != nil {
				return err
			}

			appCfg, err := fileCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load configuration")
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

			uc := usecase.New(repo,
				usecase.WithRenderer(report.New()),
				usecase.WithCompany(appCfg.ToCompany()),
				usecase.WithThresholds(appCfg.ToThresholds()),
			)

			result, err := uc.Report.LegalReport(ctx, usecase.LegalReportInput{
				Period:     period,
				LaborHours: laborHours,
				Format:     f,
			})
			if err != nil {
				return goerr.Wrap(err, "failed to generate legal report")
			}

			path := filepath.Join(outDir, usecase.ReportFilename(result.Report, f))
			if err := os.WriteFile(path, result.Data, 0o600); err != nil {
				return goerr.Wrap(err, "failed to write report", goerr.V("path", path))
			}

			logging.Default().Info("Legal report written",
				"path", path,
				"period_start", result.Report.PeriodStart,
				"period_end", result.Report.PeriodEnd,
				"frequency", result.Indices.Frequency,
				"severity", result.Indices.Severity,
				"accident", result.Indices.Accident,
			)
			fmt.Fprintln(output(c), path)
			return nil
		},
	}
}

func parseDay(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, goerr.Wrap(config.ErrInvalidConfig, "invalid date", goerr.V(config.SettingKey, name), goerr.V(config.ValueKey, value))
	}
	return t, nil
}
