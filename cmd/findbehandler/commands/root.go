package commands

import (
	"context"
	"findbehandler/internal/components/telemetry"
	"findbehandler/lib/configutil"
	"findbehandler/lib/platforms/sundhed"
	"findbehandler/lib/restyutil"
	libtelemetry "findbehandler/lib/telemetry"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
)

const (
	defaultMunicipalityId = "751"
	defaultCategory       = "Tandlæge"
	defaultConfigPath     = "findbehandler.json5"
)

type Config struct {
	BaseUrl        string              `json:"base_url"`
	TimeoutSeconds float64             `json:"timeout_seconds"`
	UserAgent      string              `json:"user_agent"`
	Telemetry      libtelemetry.Config `json:"telemetry"`
}

func (c Config) clientOptions() sundhed.ClientOptions {
	return sundhed.ClientOptions{
		BaseUrl:   c.BaseUrl,
		Timeout:   time.Duration(c.TimeoutSeconds * float64(time.Second)),
		UserAgent: c.UserAgent,
	}
}

func defaultConfig() Config {
	return Config{
		BaseUrl:        sundhed.DefaultBaseUrl,
		TimeoutSeconds: sundhed.DefaultTimeout.Seconds(),
		UserAgent:      sundhed.DefaultUserAgent,
	}
}

func NewRootCommand() *cobra.Command {
	var configPath string
	var dumpDir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "findbehandler [municipality-id] [category]",
		Short: "findbehandler lists healthcare providers in a municipality from sundhed.dk.",
		Long: `findbehandler replays the find-behandler guide of sundhed.dk and prints the
raw JSON search result. municipality-id defaults to 751 and category to Tandlæge.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// dumps are only written while debug logging is enabled
			libtelemetry.InitSlogWriter(cmd.ErrOrStderr(), verbose || dumpDir != "")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			municipalityId := defaultMunicipalityId
			category := defaultCategory
			if len(args) > 0 {
				municipalityId = args[0]
			}
			if len(args) > 1 {
				category = args[1]
			}

			cfg, err := configutil.ReadConfigOr(configPath, defaultConfig())
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}

			tel, err := libtelemetry.Setup(cmd.Context(), "findbehandler", cfg.Telemetry)
			if err != nil {
				return fmt.Errorf("setup telemetry: %w", err)
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				err := tel.Shutdown(ctx)
				if err != nil {
					slog.Warn("failed to shutdown telemetry", "err", err)
				}
			}()

			opts := cfg.clientOptions()
			if dumpDir != "" {
				output, err := restyutil.NewFilesystemOutput(dumpDir)
				if err != nil {
					return fmt.Errorf("create dump dir: %w", err)
				}
				opts.InstrumentOutput = output
				slog.Info("writing http exchanges", "dir", output.Dir())
			}

			client, err := sundhed.NewClient(opts, telemetry.SlogAPI{})
			if err != nil {
				return err
			}

			slog.Debug("fetching providers", "municipality_id", municipalityId, "category", category)
			result, err := client.GetProviders(cmd.Context(), municipalityId, category)
			if err != nil {
				return err
			}

			return printResult(cmd, result)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath, "The json5 config file, a missing file is fine.")
	cmd.Flags().StringVar(&dumpDir, "dump-dir", "", "Write every http exchange to this directory, implies --verbose.")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")

	return cmd
}

// printResult writes the search result as indented JSON, keeping the key
// order and the non-ASCII text exactly as sundhed.dk sent them.
func printResult(cmd *cobra.Command, result sundhed.Result) error {
	out, err := indentJson(result)
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

func ExecuteContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
