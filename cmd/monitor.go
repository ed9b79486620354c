package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/afero"
	"github.com/urfave/cli"

	"github.com/glidetop/glidetop/cmd/common"
	"github.com/glidetop/glidetop/internal/config"
	"github.com/glidetop/glidetop/internal/sched"
	"github.com/glidetop/glidetop/internal/tui"
	"github.com/glidetop/glidetop/pkg/credman"
	"github.com/glidetop/glidetop/pkg/logger"
	"github.com/glidetop/glidetop/pkg/usageapi"
)

var (
	cfgPath      string
	intervalSecs int
	logFilePath  string
	apiURL       string

	monitorFlags = []cli.Flag{
		cli.StringFlag{
			Name:        "config, c",
			Usage:       "load configuration from `FILE` instead of the default locations",
			EnvVar:      "GLIDETOP_CONFIG",
			Destination: &cfgPath,
		},
		cli.IntFlag{
			Name:        "interval, t",
			Usage:       "poll every `SECONDS` regardless of terminal focus",
			EnvVar:      "GLIDETOP_INTERVAL",
			Destination: &intervalSecs,
		},
		cli.StringFlag{
			Name:        "log-file, l",
			Usage:       "append diagnostics to `FILE` (logging is off without it)",
			EnvVar:      "GLIDETOP_LOG_FILE",
			Destination: &logFilePath,
		},
		cli.StringFlag{
			Name:        "api-url",
			Destination: &apiURL,
			Hidden:      true,
		},
	}
)

// runDashboard is swapped out in tests.
var runDashboard = tui.Run

func monitor(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	fs := afero.NewOsFs()
	cfg, err := config.Load(fs, cfgPath)
	if err != nil {
		common.PrintRuntimeErr(ctx, "monitor", "load_config", err)
		return nil
	}
	applyFlagOverrides(cfg)

	log, err := buildLogger(fs, cfg)
	if err != nil {
		common.PrintRuntimeErr(ctx, "monitor", "open_log", err)
		return nil
	}
	defer log.Close()

	creds, err := buildCredentials(fs, cfg, log)
	if err != nil {
		common.PrintRuntimeErr(ctx, "monitor", "credentials", err)
		return nil
	}

	client := usageapi.NewClient(
		&http.Client{Timeout: cfg.API.RequestTimeout()},
		creds,
		&usageapi.ClientOpts{BaseURL: cfg.API.BaseURL, Logger: log},
	)

	s := sched.New(cfg.Refresh.Focused(), cfg.Refresh.Unfocused())
	if d := cfg.Refresh.User(); d > 0 {
		if err := s.SetUserInterval(d); err != nil {
			common.PrintRuntimeErr(ctx, "monitor", "interval", err)
			return nil
		}
	}

	log.Info("glidetop %s starting", currentBuildArgs.Version)
	m := tui.New(client, &tui.Opts{Scheduler: s, Logger: log})
	if err := runDashboard(m); err != nil {
		common.PrintRuntimeErr(ctx, "monitor", "dashboard", err)
		return err
	}
	log.Info("dashboard closed")
	return nil
}

// applyFlagOverrides layers command-line flags on top of the loaded
// configuration. Flags win over both the file and the environment.
func applyFlagOverrides(cfg *config.Config) {
	if intervalSecs > 0 {
		cfg.Refresh.UserInterval = fmt.Sprintf("%ds", intervalSecs)
	}
	if logFilePath != "" {
		cfg.Log.File = logFilePath
	}
	if apiURL != "" {
		cfg.API.BaseURL = apiURL
	}
}

func buildLogger(fs afero.Fs, cfg *config.Config) (logger.Logger, error) {
	if cfg.Log.File == "" {
		return logger.NewNopLogger(), nil
	}
	return logger.NewFileLogger(fs, cfg.Log.File, "glidetop")
}

// buildCredentials assembles the token lookup chain: environment
// variable first, then the OS secret store, then the credentials file.
func buildCredentials(fs afero.Fs, cfg *config.Config, log logger.Logger) (credman.Provider, error) {
	path := cfg.Credentials.File
	if path == "" {
		p, err := credman.DefaultCredentialsPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	kr := credman.NewKeyringSource()
	if cfg.Credentials.Service != "" {
		kr.Service = cfg.Credentials.Service
	}
	return credman.NewChain(log,
		credman.NewEnvSource(),
		kr,
		credman.NewFileSource(fs, path),
	), nil
}
