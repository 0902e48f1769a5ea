package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/aegis/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// DefaultScanInterval is used when [alerts] leaves scan_interval out
const DefaultScanInterval = time.Hour

// AppConfig is the TOML configuration file
type AppConfig struct {
	Company Company `toml:"company"`
	Report  Report  `toml:"report"`
	Alerts  Alerts  `toml:"alerts"`
}

// Company is the employer printed on every report
type Company struct {
	Name             string `toml:"name"`
	TaxID            string `toml:"tax_id"`
	Address          string `toml:"address"`
	Sector           string `toml:"sector"`
	EconomicActivity string `toml:"economic_activity"`
}

// Validate checks the company profile. The tax ID is the 11 digit RUC.
func (c *Company) Validate() error {
	if c.Name == "" {
		return goerr.Wrap(ErrMissingName, "company name is required")
	}
	if c.TaxID != "" {
		if len(c.TaxID) != 11 {
			return goerr.Wrap(ErrInvalidTaxID, "invalid tax ID", goerr.V(ValueKey, c.TaxID))
		}
		for _, r := range c.TaxID {
			if r < '0' || r > '9' {
				return goerr.Wrap(ErrInvalidTaxID, "invalid tax ID", goerr.V(ValueKey, c.TaxID))
			}
		}
	}
	return nil
}

// Report holds the defaults of legal reports
type Report struct {
	DefaultLaborHours float64 `toml:"default_labor_hours"`
	WindowDays        int     `toml:"window_days"`
}

// Alerts tunes the periodic alert scan
type Alerts struct {
	EPPWindowDays        int    `toml:"epp_window_days"`
	TrainingReminderDays int    `toml:"training_reminder_days"`
	ScanInterval         string `toml:"scan_interval"`
}

// Validate checks every section. Zero values are allowed and mean the default.
func (a *AppConfig) Validate() error {
	if err := a.Company.Validate(); err != nil {
		return goerr.Wrap(err, "invalid [company]")
	}

	if a.Report.DefaultLaborHours < 0 {
		return goerr.Wrap(ErrInvalidConfig, "default_labor_hours must not be negative",
			goerr.V(ValueKey, a.Report.DefaultLaborHours))
	}
	if a.Report.WindowDays < 0 {
		return goerr.Wrap(ErrInvalidConfig, "window_days must not be negative", goerr.V(ValueKey, a.Report.WindowDays))
	}
	if a.Alerts.EPPWindowDays < 0 || a.Alerts.TrainingReminderDays < 0 {
		return goerr.Wrap(ErrInvalidConfig, "alert windows must not be negative",
			goerr.V("epp_window_days", a.Alerts.EPPWindowDays),
			goerr.V("training_reminder_days", a.Alerts.TrainingReminderDays))
	}
	if _, err := a.ScanInterval(); err != nil {
		return err
	}
	return nil
}

// ToCompany converts the [company] section into the domain profile
func (a *AppConfig) ToCompany() domainConfig.Company {
	return domainConfig.Company{
		Name:             a.Company.Name,
		TaxID:            a.Company.TaxID,
		Address:          a.Company.Address,
		Sector:           a.Company.Sector,
		EconomicActivity: a.Company.EconomicActivity,
	}
}

// ToThresholds merges the configured values over the defaults
func (a *AppConfig) ToThresholds() domainConfig.Thresholds {
	t := domainConfig.DefaultThresholds()
	if a.Report.DefaultLaborHours > 0 {
		t.DefaultLaborHours = a.Report.DefaultLaborHours
	}
	if a.Report.WindowDays > 0 {
		t.ReportWindowDays = a.Report.WindowDays
	}
	if a.Alerts.EPPWindowDays > 0 {
		t.EPPExpiryWindowDays = a.Alerts.EPPWindowDays
	}
	if a.Alerts.TrainingReminderDays > 0 {
		t.TrainingReminderDays = a.Alerts.TrainingReminderDays
	}
	return t
}

// ScanInterval parses [alerts] scan_interval. "0s" disables the scan.
func (a *AppConfig) ScanInterval() (time.Duration, error) {
	if a.Alerts.ScanInterval == "" {
		return DefaultScanInterval, nil
	}
	d, err := time.ParseDuration(a.Alerts.ScanInterval)
	if err != nil || d < 0 {
		return 0, goerr.Wrap(ErrInvalidConfig, "invalid scan_interval", goerr.V(ValueKey, a.Alerts.ScanInterval))
	}
	return d, nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// File points at the TOML configuration file
type File struct {
	path string
}

func (x *File) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the TOML configuration file",
			Sources:     cli.EnvVars("AEGIS_CONFIG"),
			Destination: &x.path,
		},
	}
}

// Path returns the configured file path
func (x *File) Path() string {
	return x.path
}

// Configure loads the file. Without a path it returns an empty configuration
// so that every threshold takes its default.
func (x *File) Configure() (*AppConfig, error) {
	if x.path == "" {
		return &AppConfig{}, nil
	}
	return LoadAppConfiguration(x.path)
}

func (x File) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}
