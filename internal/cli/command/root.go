package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/plainsight/plainsight-go/internal/cli/config"
	"github.com/plainsight/plainsight-go/internal/cli/output"
	"github.com/plainsight/plainsight-go/internal/cli/prompt"
	"github.com/plainsight/plainsight-go/internal/core/domain"
	"github.com/plainsight/plainsight-go/internal/core/service"
	"github.com/plainsight/plainsight-go/internal/imageio"
	"github.com/plainsight/plainsight-go/internal/infra/buildinfo"
	"github.com/plainsight/plainsight-go/internal/telemetry/logger"
	"github.com/plainsight/plainsight-go/internal/telemetry/metric"
)

// EnvPasskey supplies the passkey when neither a flag nor a prompt does.
const EnvPasskey = config.EnvPasskey

// EnvDebug forces debug logging when set to any non-empty value.
const EnvDebug = "DEBUG"

const stateKey = "state"

// Exit codes returned by ExitCode.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitInvalid  = 2
	ExitWrongKey = 3
	ExitNoSecret = 4
)

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "plainsight",
		Usage:   "Hide encrypted text in images",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			EncodeCommand(),
			DecodeCommand(),
			InspectCommand(),
			ServeCommand(),
			VersionCommand(),
		},
		Metadata: map[string]any{},
		Before:   before,
		Action:   chooseMode,
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "Log format: text, json",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, json, yaml",
		},
	}
}

// overrides maps the global flags the user actually set to config keys.
func overrides(c *cli.Context) map[string]any {
	values := map[string]any{}
	if c.IsSet("log-level") {
		values["log.level"] = c.String("log-level")
	}
	if os.Getenv(EnvDebug) != "" {
		values["log.level"] = "debug"
	}
	if c.IsSet("log-format") {
		values["log.format"] = c.String("log-format")
	}
	if c.IsSet("output") {
		values["output.format"] = c.String("output")
	}
	return values
}

// state is shared by every command of one invocation.
type state struct {
	cfg        *config.Config
	configPath string
	overrides  map[string]any

	log    logger.Logger
	svc    *service.SecretService
	prompt *prompt.Prompter

	format    output.Format
	formatter output.Formatter
	out       io.Writer
	errOut    io.Writer
}

func before(c *cli.Context) error {
	values := overrides(c)
	path := config.ResolvePath(c.String("config"))

	cfg, err := config.Load(path, values)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	deriver, err := cfg.Crypto.Deriver()
	if err != nil {
		return err
	}
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	log.Debug("configuration loaded", "path", path, "config", config.Sanitize(cfg))

	c.App.Metadata[stateKey] = &state{
		cfg:        cfg,
		configPath: path,
		overrides:  values,
		log:        log,
		svc: service.NewSecretService(&service.SecretServiceConfig{
			Deriver:  deriver,
			Recorder: metric.Global(),
		}),
		prompt:    prompt.New(c.App.Reader, c.App.ErrWriter),
		format:    format,
		formatter: output.NewFormatter(format),
		out:       c.App.Writer,
		errOut:    c.App.ErrWriter,
	}
	return nil
}

// getState retrieves the state installed by the Before hook.
func getState(c *cli.Context) (*state, error) {
	if st, ok := c.App.Metadata[stateKey].(*state); ok {
		return st, nil
	}
	return nil, errors.New("command: application not initialized")
}

// print writes a result in the selected output format.
func (st *state) print(data any) error {
	return st.formatter.Format(st.out, data)
}

// showProgress reports whether a spinner should be drawn.
func (st *state) showProgress() bool {
	return st.format == output.FormatText && st.prompt.Interactive()
}

// chooseMode runs when no command is given and asks which one to run.
func chooseMode(c *cli.Context) error {
	if c.Args().Present() {
		return fmt.Errorf("unknown command %q", c.Args().First())
	}
	st, err := getState(c)
	if err != nil {
		return err
	}

	mode, err := st.prompt.Choice("Choose mode", "encode", "decode")
	if err != nil {
		return err
	}
	if mode == "encode" {
		return runEncode(c, st, encodeOptions{})
	}
	return runDecode(c, st, decodeOptions{})
}

// Describe returns the message shown to the user for err.
func Describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrAuthentication):
		return "wrong passkey"
	case errors.Is(err, domain.ErrNoMessageFound):
		return "no encoded message in the image"
	case errors.Is(err, prompt.ErrAborted):
		return "aborted"
	}

	var de *domain.DomainError
	if errors.As(err, &de) {
		if de.Details != "" {
			return de.Message + ": " + de.Details
		}
		return de.Message
	}
	return err.Error()
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrAuthentication):
		return ExitWrongKey
	case errors.Is(err, domain.ErrNoMessageFound):
		return ExitNoSecret
	case domain.IsDomainError(err, ""):
		return ExitInvalid
	default:
		return ExitFailure
	}
}

// passkey resolves the passkey from the flag, the environment or a prompt.
func (st *state) passkey(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(EnvPasskey); env != "" {
		return env, nil
	}
	return st.prompt.Secret("Enter passkey")
}

// imagePath validates the flag value, or prompts until a valid path is given.
func (st *state) imagePath(flag string) (string, error) {
	if flag == "" {
		return st.prompt.ImagePath("Enter the path to the image")
	}
	if err := imageio.ValidImagePath(flag); err != nil {
		return "", err
	}
	return flag, nil
}
