package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matthewjhunter/longbox"
	"github.com/matthewjhunter/longbox/internal/output"
)

var (
	configPath   string
	dbPath       string
	outputFormat string
	cfg          *longbox.Config
	formatter    *output.Formatter
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		reportError(root, err)
		os.Exit(1)
	}
}

// reportError writes err to the command's error stream. Failures before the
// config is loaded fall back to a text formatter.
func reportError(cmd *cobra.Command, err error) {
	f := formatter
	if f == nil {
		f = output.NewFormatterWithWriters(output.FormatText, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	f.Error("Error: %v", err)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "longbox",
		Short:         "Catalog a comic collection: numbered runs, collected editions and story logs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path, .yaml or .toml (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "output format: json, text, human (default: from config)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file to open instead of the configured one")

	rootCmd.AddCommand(sequencedCmd())
	rootCmd.AddCommand(categorizedCmd())
	rootCmd.AddCommand(narrativeCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(backupCmd())
	rootCmd.AddCommand(resetCmd())
	rootCmd.AddCommand(queryCmd())
	rootCmd.AddCommand(initConfigCmd())

	return rootCmd
}

// loadConfig resolves the config file, environment and flags, in that
// order of increasing precedence, and builds the formatter.
func loadConfig(cmd *cobra.Command) error {
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	var err error
	cfg, err = longbox.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if outputFormat == "" {
		outputFormat = cfg.Output.Format
	}

	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	formatter = output.NewFormatterWithWriters(format, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return nil
}

// withCollection opens the configured collection for the duration of fn.
func withCollection(fn func(c *longbox.Collection) error) error {
	c, err := longbox.Open(cfg)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show record counts per kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCollection(func(c *longbox.Collection) error {
				st, err := c.Stats()
				if err != nil {
					return err
				}
				return formatter.OutputStats(c.Path(), st)
			})
		},
	}
}

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [dest]",
		Short: "Write a consistent copy of the database",
		Long: `Write a consistent copy of the open database to dest. Without dest, a
timestamped file is written to database.backup_dir, or next to the database.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := ""
			if len(args) == 1 {
				dest = args[0]
			}
			return withCollection(func(c *longbox.Collection) error {
				written, err := c.Backup(dest)
				if err != nil {
					return err
				}
				formatter.OutputEvent("backup", "Backed up to "+written, map[string]any{"path": written})
				return nil
			})
		},
	}
}

func resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every record by recreating the database file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("reset deletes %s; pass --yes to confirm", cfg.Database.Path)
			}
			return withCollection(func(c *longbox.Collection) error {
				if err := c.Reset(); err != nil {
					return err
				}
				formatter.OutputEvent("reset", "Reset "+c.Path(), map[string]any{"path": c.Path()})
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")
	return cmd
}

func queryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <sql> [args...]",
		Short: "Run an arbitrary SQL statement",
		Long: `Run an arbitrary SQL statement against the database and print any rows
it returns. Extra arguments are bound to ? placeholders as text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := make([]any, 0, len(args)-1)
			for _, a := range args[1:] {
				params = append(params, a)
			}
			return withCollection(func(c *longbox.Collection) error {
				res, err := c.RawQuery(args[0], params...)
				if err != nil {
					return err
				}
				return formatter.OutputQueryResult(res)
			})
		},
	}
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Create a default config file",
		Args:  cobra.NoArgs,
		// Runs before any config exists, so skip the root loader.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				configPath = "./config/config.yaml"
			}

			dir := filepath.Dir(configPath)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}

			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config file already exists: %s", configPath)
			}

			data, err := longbox.DefaultConfig().Marshal(configPath)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			if err := os.WriteFile(configPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created default config at %s\n", configPath)
			return nil
		},
	}
}
