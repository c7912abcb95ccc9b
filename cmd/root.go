// -- cmd/root.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/catr/internal/concat"
	"github.com/xkilldash9x/catr/internal/config"
	"github.com/xkilldash9x/catr/internal/observability"
	"github.com/xkilldash9x/catr/internal/render"
	"github.com/xkilldash9x/catr/internal/source"
)

type contextKey string

const configKey contextKey = "config"

// newFs is the filesystem files are opened from. Tests swap in a memory fs.
var newFs = afero.NewOsFs

// rootOptions holds the flag values of one command instance.
type rootOptions struct {
	cfgFile        string
	numberAll      bool
	numberNonblank bool
}

// NewRootCommand builds a fresh catr command. Each call gets its own flags
// and viper instance, so commands never share state.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "catr [FILE]...",
		Short: "catr concatenates files and prints them on standard output.",
		Long: `catr concatenates files and prints them on standard output.

With no FILE, or when FILE is -, read standard input. A file that cannot be
opened is reported on standard error and the remaining files are still
printed.`,
		Example: `  catr a.txt b.txt        Print a.txt, then b.txt
  catr -n a.txt - b.txt   Number every line of a.txt, stdin and b.txt
  catr -b notes.md        Number only the non-blank lines`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initializeConfig(v, opts.cfgFile)
			if err != nil {
				return err
			}
			logger := observability.Initialize(cfg.Logger, cmd.ErrOrStderr())
			logger.Debug("Starting catr", zap.String("version", Version))
			if used := v.ConfigFileUsed(); used != "" {
				logger.Debug("Loaded config file", zap.String("path", used))
			}

			cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ok := cmd.Context().Value(configKey).(*config.Config)
			if !ok {
				return errors.New("configuration was not initialized")
			}
			return runConcat(cmd, cfg, args)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file (default is ./catr.yaml, then ~/.config/catr/catr.yaml)")
	cmd.Flags().BoolVarP(&opts.numberAll, "number", "n", false, "Number all output lines")
	cmd.Flags().BoolVarP(&opts.numberNonblank, "number-nonblank", "b", false, "Number non-blank output lines, overrides -n")
	cmd.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)

	// Flags only override config and env when they were set explicitly.
	_ = v.BindPFlag("number.all", cmd.Flags().Lookup("number"))
	_ = v.BindPFlag("number.nonblank", cmd.Flags().Lookup("number-nonblank"))

	return cmd
}

// Execute runs the root command with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// initializeConfig reads the config file and CATR_ environment variables
// into v and returns the validated configuration.
func initializeConfig(v *viper.Viper, cfgFile string) (*config.Config, error) {
	config.SetDefaults(v)

	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("could not resolve config path '%s': %w", cfgFile, err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "catr"))
		}
		// No config type here: with one set, viper also matches an
		// extensionless "catr", which is the binary or a data file.
		v.SetConfigName("catr")
	}

	v.SetEnvPrefix("CATR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return config.NewConfigFromViper(v)
}

// runConcat wires the resolver, renderer and runner for one invocation.
func runConcat(cmd *cobra.Command, cfg *config.Config, args []string) error {
	logger := observability.GetLogger().With(zap.String("run_id", uuid.NewString()))

	format := render.Format{Width: cfg.Render.Width, Separator: cfg.Render.Separator}
	resolver := source.NewResolver(newFs(), cmd.InOrStdin())
	runner := concat.NewRunner(resolver, render.New(format), cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)

	summary, err := runner.Run(cmd.Context(), concat.NewConfig(args, cfg.Number.All, cfg.Number.Nonblank))
	if err != nil {
		return fmt.Errorf("concatenation aborted: %w", err)
	}
	if !summary.Succeeded() {
		logger.Warn("No source could be opened", zap.Int("tokens", len(summary.Results)))
	}
	return nil
}
