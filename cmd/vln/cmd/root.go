// Package cmd implements the vln command line.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	vln "github.com/embodied-nav/vln-sdk"
	"github.com/embodied-nav/vln-sdk/application/config"
	"github.com/embodied-nav/vln-sdk/domain/entities"
	"github.com/embodied-nav/vln-sdk/host/registry"
	vlnlog "github.com/embodied-nav/vln-sdk/log"
)

// envPrefix namespaces environment overrides, e.g. VLN_DATASET_PATH.
const envPrefix = "VLN"

// cli carries the state shared by every command of one invocation.
type cli struct {
	v            *viper.Viper
	registry     *registry.Registry
	cfgFile      string
	outputFormat string
	cfg          entities.Config
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand(registry.Default).Execute()
}

// NewRootCommand builds the command tree over r.
func NewRootCommand(r *registry.Registry) *cobra.Command {
	c := &cli{v: viper.New(), registry: r}

	rootCmd := &cobra.Command{
		Use:     "vln",
		Short:   "Inspect VLN tasks and episode datasets",
		Long:    `vln lists registered tasks and sensors, prints their JSON schemas, validates episode datasets and dumps the observations a task produces at episode reset.`,
		Version: vln.Version,

		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.initConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.vln/config.yaml)")
	flags.StringVar(&c.outputFormat, "output", "table", "output format: table or json")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: text or json")
	flags.String("dataset", "", "episode file (.json or .json.gz)")
	flags.Bool("strict", true, "fail on the first invalid episode instead of skipping it")
	flags.Bool("schema-check", false, "validate raw episodes against the task's episode schema")
	flags.String("task", "", "registered task name")
	flags.Int("max-episode-steps", 0, "end episodes after this many steps (0 means unbounded)")

	for key, flag := range map[string]string{
		"log_level":              "log-level",
		"log_format":             "log-format",
		"dataset.path":           "dataset",
		"dataset.strict":         "strict",
		"dataset.schema_check":   "schema-check",
		"task.type":              "task",
		"task.max_episode_steps": "max-episode-steps",
	} {
		if err := c.v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			// Only reachable when the flag table above names an undefined flag.
			panic(fmt.Sprintf("bind flag %q to %q: %v", flag, key, err))
		}
	}

	rootCmd.AddCommand(
		newListCmd(c),
		newSchemaCmd(c),
		newValidateCmd(c),
		newObserveCmd(c),
	)
	return rootCmd
}

// initConfig resolves configuration from defaults, the config file, VLN_*
// environment variables and flags, in increasing precedence.
func (c *cli) initConfig(cmd *cobra.Command) error {
	v := c.v
	setDefaults(v, entities.DefaultConfig())

	if c.cfgFile != "" {
		v.SetConfigFile(c.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".vln"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg entities.Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
	}); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	restoreSensorConfigKeys(&cfg.Task)
	if err := config.Validate(&cfg); err != nil {
		return err
	}
	c.cfg = cfg

	level, _ := vlnlog.ParseLevel(cfg.LogLevel)
	slog.SetDefault(vlnlog.New(
		vlnlog.WithLevel(level),
		vlnlog.WithFormat(vlnlog.Format(cfg.LogFormat)),
		vlnlog.WithWriter(cmd.ErrOrStderr()),
	))
	slog.Debug("configuration loaded", "file", v.ConfigFileUsed(), "task", cfg.Task.Type)
	return nil
}

// setDefaults registers every leaf of cfg so environment variables can
// override keys that no config file mentions.
func setDefaults(v *viper.Viper, cfg entities.Config) {
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_format", cfg.LogFormat)
	v.SetDefault("task.type", cfg.Task.Type)
	v.SetDefault("task.sensors", cfg.Task.Sensors)
	v.SetDefault("task.max_episode_steps", cfg.Task.MaxEpisodeSteps)
	v.SetDefault("dataset.path", cfg.Dataset.Path)
	v.SetDefault("dataset.split", cfg.Dataset.Split)
	v.SetDefault("dataset.strict", cfg.Dataset.Strict)
	v.SetDefault("dataset.schema_check", cfg.Dataset.SchemaCheck)
}

// restoreSensorConfigKeys maps the lower-cased keys viper produces back to
// the sensor names listed in the task.
func restoreSensorConfigKeys(tc *entities.TaskConfig) {
	if len(tc.SensorConfigs) == 0 {
		return
	}
	for _, name := range tc.Sensors {
		lower := strings.ToLower(name)
		if kw, ok := tc.SensorConfigs[lower]; ok && lower != name {
			tc.SensorConfigs[name] = kw
			delete(tc.SensorConfigs, lower)
		}
	}
}

func (c *cli) isJSONOutput() bool {
	return c.outputFormat == "json"
}

func writeJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(output))
	return err
}
