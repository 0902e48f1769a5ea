package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/aegis/pkg/cli/config"
	"github.com/secmon-lab/aegis/pkg/domain/model"
	"github.com/secmon-lab/aegis/pkg/usecase"
	"github.com/secmon-lab/aegis/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

func cmdUser() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "Manage accounts",
		Commands: []*cli.Command{
			cmdCreateAdmin(),
		},
	}
}

func cmdCreateAdmin() *cli.Command {
	var repoCfg config.Repository
	var reg model.Registration

	flags := append(repoCfg.Flags(),
		&cli.StringFlag{
			Name:        "email",
			Usage:       "Login email of the administrator",
			Required:    true,
			Destination: &reg.Email,
		},
		&cli.StringFlag{
			Name:        "name",
			Usage:       "Full name",
			Required:    true,
			Destination: &reg.FullName,
		},
		&cli.StringFlag{
			Name:        "job-title",
			Usage:       "Job title",
			Value:       "SST Administrator",
			Destination: &reg.JobTitle,
		},
		&cli.StringFlag{
			Name:        "area",
			Usage:       "Work area",
			Value:       "SST",
			Destination: &reg.Area,
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "Password, prompted for when empty and stdin is a terminal",
			Sources:     cli.EnvVars("AEGIS_ADMIN_PASSWORD"),
			Destination: &reg.Password,
		},
	)

	return &cli.Command{
		Name:  "create-admin",
		Usage: "Create an administrator account",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if reg.Password == "" {
				pw, err := promptPassword()
				if err != nil {
					return err
				}
				reg.Password = pw
			}
			reg.PasswordConfirm = reg.Password

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo)
			user, err := uc.Auth.CreateAdmin(ctx, &reg)
			if err != nil {
				return goerr.Wrap(err, "failed to create administrator")
			}

			fmt.Fprintf(output(c), "created administrator %s (id %s)\n", user.Email, user.ID)
			return nil
		},
	}
}

func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", goerr.Wrap(config.ErrMissingSetting, "password is required", goerr.V(config.SettingKey, "password"))
	}

	fmt.Fprint(os.Stderr, "Password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read password")
	}

	fmt.Fprint(os.Stderr, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read password")
	}

	if string(first) != string(second) {
		return "", goerr.New("passwords do not match")
	}
	return string(first), nil
}
