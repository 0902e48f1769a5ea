package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/domain/interfaces"
	"github.com/secmon-lab/aegis/pkg/domain/types"
	"github.com/secmon-lab/aegis/pkg/service/storage"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Storage selects where uploaded files go
type Storage struct {
	backend       string
	evidence      string
	documents     string
	trainings     string
	incidents     string
	publicBaseURL string
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-backend",
			Usage:       "Object storage backend (gcs or memory)",
			Category:    "Storage",
			Value:       "gcs",
			Sources:     cli.EnvVars("AEGIS_STORAGE_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "bucket-evidence",
			Usage:       "Bucket for risk evidence photos",
			Category:    "Storage",
			Sources:     cli.EnvVars("AEGIS_BUCKET_EVIDENCE"),
			Destination: &x.evidence,
		},
		&cli.StringFlag{
			Name:        "bucket-documents",
			Usage:       "Bucket for controlled documents",
			Category:    "Storage",
			Sources:     cli.EnvVars("AEGIS_BUCKET_DOCUMENTS"),
			Destination: &x.documents,
		},
		&cli.StringFlag{
			Name:        "bucket-trainings",
			Usage:       "Bucket for training material",
			Category:    "Storage",
			Sources:     cli.EnvVars("AEGIS_BUCKET_TRAININGS"),
			Destination: &x.trainings,
		},
		&cli.StringFlag{
			Name:        "bucket-incidents",
			Usage:       "Bucket for incident evidence",
			Category:    "Storage",
			Sources:     cli.EnvVars("AEGIS_BUCKET_INCIDENTS"),
			Destination: &x.incidents,
		},
		&cli.StringFlag{
			Name:        "storage-public-url",
			Usage:       "Base URL of returned file links (memory backend uses it as is)",
			Category:    "Storage",
			Sources:     cli.EnvVars("AEGIS_STORAGE_PUBLIC_URL"),
			Destination: &x.publicBaseURL,
		},
	}
}

func (x Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", x.backend),
		slog.String("evidence", x.evidence),
		slog.String("documents", x.documents),
		slog.String("trainings", x.trainings),
		slog.String("incidents", x.incidents),
	)
}

// Configure creates the object storage for the selected backend
func (x *Storage) Configure(ctx context.Context) (interfaces.ObjectStorage, error) {
	switch x.backend {
	case "gcs":
		buckets := storage.Buckets{
			types.BucketEvidence:  x.evidence,
			types.BucketDocuments: x.documents,
			types.BucketTrainings: x.trainings,
			types.BucketIncidents: x.incidents,
		}
		var opts []storage.Option
		if x.publicBaseURL != "" {
			opts = append(opts, storage.WithPublicBaseURL(x.publicBaseURL))
		}
		gcs, err := storage.NewGCS(ctx, buckets, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize Cloud Storage")
		}
		logging.From(ctx).Info("Using Cloud Storage", "storage", x)
		return gcs, nil

	case "memory":
		base := x.publicBaseURL
		if base == "" {
			base = "memory://aegis"
		}
		logging.From(ctx).Info("Using in-memory object storage (development mode)")
		return storage.NewMemory(base), nil

	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid storage backend", goerr.V(ValueKey, x.backend))
	}
}
