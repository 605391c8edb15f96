package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/loopcontext/poproject"
)

const (
	verboseKey   = "verbose"
	configKey    = "config"
	logFormatKey = "log-format"
	outputKey    = "output"
	baseDirKey   = "base-dir"

	localeKey  = "locale"
	projectKey = "project"
	dryRunKey  = "dry-run"

	settingsName = "poproject.yaml"
)

// cli is the state shared by all subcommands of one invocation.
type cli struct {
	v      *viper.Viper
	out    io.Writer
	log    zerolog.Logger
	config poproject.Config
}

func newRootCommand(out io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), out: out}

	root := &cobra.Command{
		Use:   "poproject",
		Short: "Carve translation projects out of gettext catalogs and merge them back",
		Long: `Carve translation projects out of gettext catalogs and merge them back.

A project is a set of untranslated or fuzzy messages tagged with a
"#. project=<name>" comment. Tag them, extract them into a standalone
catalog for a translator, merge the translations back and clean the tags.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.log = newLogger(os.Stderr, c.v.GetString(logFormatKey), c.v.GetBool(verboseKey))

			path, err := c.settingsPath()
			if err != nil {
				return err
			}
			c.log.Debug().Str("file", path).Msg("loading settings")
			cfg, err := poproject.LoadConfig(path)
			if err != nil {
				return err
			}
			if c.v.IsSet(baseDirKey) {
				cfg.BaseDir = c.v.GetString(baseDirKey)
			}
			cfg.Logger = &c.log
			c.config = cfg
			return nil
		},
	}

	root.PersistentFlags().BoolP(verboseKey, "v", false, "Whether to enable verbose logging")
	root.PersistentFlags().StringP(configKey, "c", "", "Settings file to use (by default "+settingsName+" in the working directory, then in the XDG config directory)")
	root.PersistentFlags().String(logFormatKey, "console", "Log format (console or json)")
	root.PersistentFlags().StringP(outputKey, "o", "text", "Report format (text or yaml)")
	root.PersistentFlags().String(baseDirKey, "", "Project root overriding the settings file's base_dir")

	// Binding errors only occur for nil flags.
	_ = c.v.BindPFlags(root.PersistentFlags())
	c.v.SetEnvPrefix("poproject")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root.AddCommand(
		newTagCommand(c),
		newExtractCommand(c),
		newMergeCommand(c),
		newCleanCommand(c),
		newMakeMessagesCommand(c),
	)
	return root
}

// settingsPath resolves the settings file: the --config flag, then the
// working directory, then the XDG config directories.
func (c *cli) settingsPath() (string, error) {
	if c.v.IsSet(configKey) && c.v.GetString(configKey) != "" {
		return c.v.GetString(configKey), nil
	}
	if _, err := os.Stat(settingsName); err == nil {
		return settingsName, nil
	}
	path, err := xdg.SearchConfigFile("poproject/" + settingsName)
	if err != nil {
		return "", fmt.Errorf("no %s in the working directory or the XDG config directories, use --config", settingsName)
	}
	return path, nil
}

func (c *cli) workflow() (poproject.Workflow, error) {
	return poproject.NewWorkflow(c.config)
}

// bind makes the running subcommand's flags visible through viper, so
// POPROJECT_* environment variables can stand in for them.
func (c *cli) bind(cmd *cobra.Command) error {
	return c.v.BindPFlags(cmd.Flags())
}

func (c *cli) require(keys ...string) error {
	var missing []string
	for _, key := range keys {
		if c.v.GetString(key) == "" {
			missing = append(missing, "--"+key)
		}
	}
	if len(missing) > 0 {
		return errors.New("required flag(s) not set: " + strings.Join(missing, ", "))
	}
	return nil
}

func newLogger(w *os.File, format string, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	var out io.Writer = w
	if format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !isatty.IsTerminal(w.Fd()),
			TimeFormat: time.DateTime,
		}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("sys", "poproject").Logger()
}

// addTargetFlags adds the --locale and --project flags of the commands that
// work on one locale.
func addTargetFlags(fs *pflag.FlagSet, verb string, projectUsage string) {
	fs.StringP(localeKey, "l", "", "Locale to "+verb+", e.g. de")
	fs.StringP(projectKey, "p", "", projectUsage)
}
