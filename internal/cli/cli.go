package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"i18nextract/internal/catalog"
	"i18nextract/internal/config"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "i18nextract",
		Short: "Extract angular-translate keys from templates and scripts",
		Long: `Scans AngularJS templates and scripts for angular-translate usages
(filters, directives, $translate calls, marker comments) and writes one
translation document per language, merging documents already on disk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Log per-file and per-pattern details")

	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(patternsCmd())
	return rootCmd
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract translation keys and persist them per language",
		Long: `Loads the configuration (file, then I18NEXTRACT_* environment, then flags),
scans every file matched by src, imports labels from jsonSrc documents and
persists the result through the configured adapter (json, pot or postgres).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := setupContext()
			defer cancel()

			_, err = Run(ctx, cfg)
			return err
		},
	}

	cmd.Flags().StringSlice("lang", nil, "Target languages (overrides lang)")
	cmd.Flags().StringSlice("src", nil, "Source globs, !glob excludes (overrides src)")
	cmd.Flags().String("dest", "", "Output directory (overrides dest)")
	cmd.Flags().String("adapter", "", "Output adapter: json, pot or postgres")
	cmd.Flags().Int("workers", 0, "Files extracted concurrently")

	return cmd
}

func patternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the extraction patterns in run order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			exts, err := cfg.Extensions()
			if err != nil {
				return fmt.Errorf("load custom patterns: %w", err)
			}
			return printPatterns(cmd.OutOrStdout(), catalog.New(exts...))
		},
	}
}

// loadConfig reads the configuration and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Lang, _ = flags.GetStringSlice("lang")
	}
	if flags.Changed("src") {
		cfg.Src, _ = flags.GetStringSlice("src")
	}
	if flags.Changed("dest") {
		cfg.Dest, _ = flags.GetString("dest")
	}
	if flags.Changed("adapter") {
		cfg.Adapter, _ = flags.GetString("adapter")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	return cfg, nil
}

func printPatterns(w io.Writer, cat *catalog.Catalog) error {
	hooks := cat.Hooks()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tROLE\tMODE\tHOOK")
	for _, p := range cat.Patterns() {
		hook := "-"
		if hooks[p.Name] != nil {
			hook = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Role, p.Mode, hook)
	}
	for _, name := range cat.UnknownOverrides() {
		fmt.Fprintf(tw, "%s\t-\t-\tunused\n", name)
	}
	return tw.Flush()
}

// setupContext creates a cancellable context that listens for OS signals.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
