// Package app is the process entry point shared by the tgrelay commands:
// it sets up logging, bootstraps, and runs the selected mode.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/flemzord/tgrelay/internal/bootstrap"
	"github.com/flemzord/tgrelay/internal/buildinfo"
	"github.com/flemzord/tgrelay/internal/config"
	"github.com/flemzord/tgrelay/internal/credential"
	"github.com/flemzord/tgrelay/internal/gateway"
	"github.com/flemzord/tgrelay/internal/logging"
	"github.com/flemzord/tgrelay/internal/mode"
	"github.com/flemzord/tgrelay/internal/prompt"
	"github.com/flemzord/tgrelay/internal/security"
	"github.com/flemzord/tgrelay/internal/telegram"
)

// DefaultLogDir holds the daily log files.
const DefaultLogDir = "logs"

const shutdownTimeout = 10 * time.Second

// RunParams configures Run.
type RunParams struct {
	ConfigPath  string
	SecretsPath string

	// LogDir holds daily log files. "-" disables the file sink.
	LogDir string

	// Args are the raw process arguments without the program name. Only
	// the first two are inspected for --token.
	Args []string

	// NoInput makes every prompt fail instead of waiting on stdin.
	NoInput bool

	// Version defaults to buildinfo.Version.
	Version string

	// Console defaults to os.Stdout.
	Console io.Writer

	// Prompter overrides the prompter chosen from NoInput and the terminal.
	Prompter prompt.Prompter

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Run bootstraps the bot and blocks in the selected mode until ctx is
// cancelled or SIGINT/SIGTERM arrives. Pass the result to ExitCode.
func Run(ctx context.Context, params RunParams) error {
	if params.LogDir == "" {
		params.LogDir = DefaultLogDir
	}
	if params.LogDir == "-" {
		params.LogDir = ""
	}
	if params.Version == "" {
		params.Version = buildinfo.Version
	}
	prompter := params.Prompter
	if prompter == nil {
		prompter = prompt.Default(params.NoInput)
	}

	redactor := security.NewRedactor()
	log, err := logging.New(logging.Options{
		Console:  params.Console,
		Level:    slog.LevelInfo,
		Dir:      params.LogDir,
		Redactor: redactor,
	})
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()
	logger := log.Logger

	logger.Log(ctx, logging.LevelTrace, "logging started")
	logger.Info("starting tgrelay", "version", params.Version, "commit", buildinfo.Commit)

	res, err := bootstrap.Run(bootstrap.Params{
		ConfigPath:  params.ConfigPath,
		SecretsPath: params.SecretsPath,
		Args:        params.Args,
		LookupEnv:   params.LookupEnv,
		Version:     params.Version,
		Prompter:    prompter,
		Logger:      logger,
		Redactor:    redactor,
	})
	if err != nil {
		if errors.Is(err, config.ErrReset) {
			return err
		}
		if errors.Is(err, credential.ErrUnresolved) {
			logger.Error("no bot token configured",
				"hint", "pass --token <token>, set KEY in the environment or .env, or set token in the config file")
		}
		logger.Error("startup failed", "error", err)
		waitForExit(prompter)
		return err
	}

	// Validated by the config loader.
	if level, err := logging.ParseLevel(res.Config.Log.Level); err == nil {
		log.SetLevel(level)
	}
	redactor.AddLiteral(res.Config.Web.AuthToken)

	switch res.Mode {
	case mode.Web:
		return runWeb(ctx, logger, res)
	default:
		logger.Info("cli (terminal) mode is not implemented yet")
		return nil
	}
}

// ExitCode maps a Run result to the process exit status. A config reset
// exits 0 so the operator can edit the new file and restart.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, config.ErrReset) {
		return 0
	}
	return 1
}

// waitForExit keeps the terminal open until the operator acknowledges the
// failure. Without input it returns at once.
func waitForExit(p prompt.Prompter) {
	_, _ = p.Ask("Press Enter to exit...")
}

// runWeb starts the HTTP relay and the update poller and stops both on
// shutdown.
func runWeb(ctx context.Context, logger *slog.Logger, res *bootstrap.Result) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := telegram.NewClient(res.Credential.Value(), res.Config.Telegram.APIURL)

	var botName string
	if me, err := client.GetMe(ctx); err != nil {
		logger.Warn("could not verify bot token", "error", err)
	} else {
		botName = me.Username
		logger.Info("bot started", "username", me.Username)
	}

	metrics := gateway.NewMetrics()
	gw := gateway.New(gateway.Config{
		Bind:      res.Config.Web.Bind,
		AuthToken: res.Config.Web.AuthToken,
		BotName:   botName,
	}, client, metrics, logger)
	if err := gw.Start(); err != nil {
		return err
	}

	poller := telegram.NewPoller(client, func(_ context.Context, u telegram.Update) {
		metrics.RecordUpdate()
		logger.Debug("update received", "update_id", u.UpdateID)
	}, logger, res.Config.Telegram.PollingTimeout)

	pollDone := make(chan error, 1)
	go func() { pollDone <- poller.Run(ctx) }()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	var errs []error
	errs = append(errs, gw.Stop(stopCtx))
	errs = append(errs, <-pollDone)
	logger.Info("shutdown complete")
	return errors.Join(errs...)
}

// Compile-time check that the bot client satisfies the relay route.
var _ gateway.Sender = (*telegram.Client)(nil)
