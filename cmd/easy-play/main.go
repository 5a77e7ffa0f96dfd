// Package main provides the easy-play entry point.
package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/chzyer/readline"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/gsteasy/internal/app/player"
	"github.com/osa030/gsteasy/internal/infra/config"
	"github.com/osa030/gsteasy/internal/infra/gstreamer"
	"github.com/osa030/gsteasy/internal/infra/logger"
)

const defaultConfigPath = "easy-play.yaml"

var (
	app         = kingpin.New("easy-play", "Build a GStreamer pipeline from a description and play it")
	configPath  = app.Flag("config", "Path to config file").Default(defaultConfigPath).String()
	verbose     = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile     = app.Flag("logfile", "Path to log file (default: stdout)").String()
	quiet       = app.Flag("quiet", "Do not print player progress").Short('q').Bool()
	interactive = app.Flag("interactive", "Read play/pause/quit commands from the console").Short('i').Bool()
	noInterrupt = app.Flag("no-interrupt", "Do not handle SIGINT").Bool()
	gstDebug    = app.Flag("gst-debug", "GStreamer debug levels, e.g. \"*:3\" (GST_DEBUG)").String()
	elements    = app.Arg("element", "Pipeline description").Strings()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	description := player.Description(*elements)
	if description == "" {
		return
	}

	if err := run(description); err != nil {
		zlog.Error().Msgf("easy-play: %v", err)
		os.Exit(1)
	}
}

// run executes the player. Using a separate function ensures deferred
// cleanup runs before the process exits.
func run(description string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.Init(logger.Config{
		Output: cfg.Log.Output,
		Level:  cfg.Log.Level,
	})
	if err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	if err := gstreamer.Init(cfg.Gst.Debug); err != nil {
		return errors.Wrap(err, "failed to initialize GStreamer")
	}

	playerCfg := player.Config{
		Description:     description,
		Quiet:           cfg.Player.Quiet,
		HandleInterrupt: cfg.InterruptEnabled(),
		Logger:          log,
	}
	if cfg.Player.Interactive {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          cfg.Player.Prompt,
			InterruptPrompt: "^C",
			EOFPrompt:       "quit",
		})
		if err != nil {
			return errors.Wrap(err, "failed to open console")
		}
		playerCfg.Console = rl
		playerCfg.ConsoleOut = rl.Stdout()
		playerCfg.Logger = consoleLogger(log, rl.Stdout(), cfg.Log)
	}

	engine := player.EngineFunc(func(description string) (player.Pipeline, error) {
		p, err := gstreamer.NewPipeline(description)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
	return player.New(engine, playerCfg).Run(context.Background())
}

// loadConfig reads the config file and applies command-line overrides.
// Only an explicitly given config file must exist.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath, *configPath == defaultConfigPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config from %s", *configPath)
	}

	var o config.Overrides
	if *verbose {
		level := "debug"
		o.LogLevel = &level
	}
	if *logfile != "" {
		o.LogOutput = logfile
	}
	if *quiet {
		o.Quiet = quiet
	}
	if *interactive {
		o.Interactive = interactive
	}
	if *noInterrupt {
		enabled := false
		o.HandleInterrupt = &enabled
	}
	if *gstDebug != "" {
		o.GstDebug = gstDebug
	}
	cfg.Apply(o)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// consoleLogger routes console logs through the readline writer so that
// the prompt is redrawn after each line. File loggers are left untouched.
func consoleLogger(log zerolog.Logger, w io.Writer, cfg config.LogConfig) zerolog.Logger {
	if cfg.Output != "stdout" && cfg.Output != "" {
		return log
	}
	return logger.New(w, logger.ParseLevel(cfg.Level), true)
}
