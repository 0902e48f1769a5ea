package cli_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/aegis/pkg/cli"
)

const validConfig = `
[company]
name = "Agroindustrial Norte S.A."
tax_id = "20456789123"
sector = "Agroindustria"

[report]
default_labor_hours = 120000
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestRun_ValidateCommand_ValidConfig(t *testing.T) {
	path := writeFile(t, "aegis.toml", validConfig)
	err := cli.Run(context.Background(), []string{"aegis", "validate", "--config", path}, "test")
	gt.NoError(t, err)
}

func TestRun_ValidateCommand_InvalidConfig(t *testing.T) {
	path := writeFile(t, "aegis.toml", "[company]\nname = \"X\"\ntax_id = \"123\"\n")
	err := cli.Run(context.Background(), []string{"aegis", "validate", "--config", path}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_ValidateCommand_MissingConfig(t *testing.T) {
	err := cli.Run(context.Background(), []string{
		"aegis", "validate", "--config", filepath.Join(t.TempDir(), "nonexistent.toml"),
	}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_ValidateCommand_NoConfigFlag(t *testing.T) {
	t.Setenv("AEGIS_CONFIG", "")
	err := cli.Run(context.Background(), []string{"aegis", "validate"}, "test")
	gt.Value(t, err).NotNil()
}

func TestRun_ValidateCommand_PingWebhook(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	path := writeFile(t, "aegis.toml", validConfig)
	err := cli.Run(context.Background(), []string{
		"aegis", "validate",
		"--config", path,
		"--webhook-url", srv.URL,
		"--ping",
	}, "test")
	gt.NoError(t, err)
	gt.True(t, hits.Load() > 0)
}

func TestRun_ValidateCommand_PingFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	path := writeFile(t, "aegis.toml", validConfig)
	err := cli.Run(context.Background(), []string{
		"aegis", "validate",
		"--config", path,
		"--webhook-url", srv.URL,
		"--ping",
	}, "test")
	gt.Value(t, err).NotNil()
}
