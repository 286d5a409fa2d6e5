package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"blogstore/app/canister"
	"blogstore/app/repositories"
	"blogstore/config"

	"github.com/spf13/cobra"
)

// ErrCancelled is returned when the user declines a confirmation prompt.
var ErrCancelled = errors.New("operation cancelled")

// NewRootCommand builds the blogstore CLI.
func NewRootCommand(version string) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "blogstore",
		Short:         "Single-tenant blog content store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	load := func() (config.Config, error) {
		return config.Load(configPath)
	}

	root.AddCommand(
		newServeCommand(load),
		newInitCommand(load),
		newCleanCommand(load),
		newBackupCommand(load),
		newRestoreCommand(load),
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "blogstore version %s\n", version)
			},
		},
	)
	return root
}

type configLoader func() (config.Config, error)

func newServeCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the blog service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			logger, err := NewLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			srv, err := NewServer(cfg, logger)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
}

func newInitCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new database seeded with the configured store settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := diskConfig(load)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfg.Storage.DataDir); err == nil {
				fmt.Fprintln(out, "Database already exists. Use 'clean' first if you want to reinitialize.")
				return nil
			}

			db, err := repositories.OpenBadger(cfg.Storage.DataDir, false)
			if err != nil {
				return err
			}
			defer db.Close()

			c := canister.New(canister.Options{
				Config:                  cfg.Store.Config,
				EnforceCommentOwnership: cfg.Store.EnforceCommentOwnership,
			})
			if err := repositories.NewBadgerCheckpoint(db).Save(c.Snapshot()); err != nil {
				return err
			}
			fmt.Fprintln(out, "Database initialized successfully")
			return nil
		},
	}
}

func newCleanCommand(load configLoader) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := diskConfig(load)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := os.Stat(cfg.Storage.DataDir); os.IsNotExist(err) {
				fmt.Fprintln(out, "Database is already clean (does not exist)")
				return nil
			}

			if !yes && !confirm(cmd, "Are you sure you want to clean the database? This cannot be undone.") {
				return ErrCancelled
			}
			if err := os.RemoveAll(cfg.Storage.DataDir); err != nil {
				return fmt.Errorf("failed to clean database: %w", err)
			}
			fmt.Fprintln(out, "Database cleaned successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newBackupCommand(load configLoader) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := diskConfig(load)
			if err != nil {
				return err
			}
			if _, err := os.Stat(cfg.Storage.DataDir); os.IsNotExist(err) {
				return fmt.Errorf("no database exists to backup at %s", cfg.Storage.DataDir)
			}
			if dir == "" {
				dir = cfg.Storage.BackupDir
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create backup directory: %w", err)
			}

			db, err := repositories.OpenBadger(cfg.Storage.DataDir, false)
			if err != nil {
				return err
			}
			defer db.Close()

			backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
			f, err := os.Create(backupFile)
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer f.Close()

			if err := repositories.NewBadgerCheckpoint(db).Backup(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database backed up successfully to %s\n", backupFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "backup directory (defaults to storage.backup_dir)")
	return cmd
}

func newRestoreCommand(load configLoader) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := diskConfig(load)
			if err != nil {
				return err
			}
			return restoreBackup(cmd, cfg.Storage.DataDir, args[0], yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace an existing database without asking")
	return cmd
}

func restoreBackup(cmd *cobra.Command, dataDir, backupFile string, yes bool) (err error) {
	fi, err := os.Stat(backupFile)
	if err != nil {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	if _, err := os.Stat(dataDir); err == nil {
		if !yes && !confirm(cmd, "Existing database found. Do you want to replace it?") {
			return ErrCancelled
		}
		if err := os.RemoveAll(dataDir); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	db, err := repositories.OpenBadger(dataDir, false)
	if err != nil {
		return err
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred during restore: %v", r)
		}
	}()
	if err := repositories.NewBadgerCheckpoint(db).Restore(f); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Database restored successfully")
	return nil
}

// diskConfig loads the config and rejects in-memory storage, which the
// maintenance commands cannot act on.
func diskConfig(load configLoader) (config.Config, error) {
	cfg, err := load()
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Storage.InMemory {
		return config.Config{}, errors.New("storage is in-memory; nothing on disk to manage")
	}
	return cfg, nil
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y"
}

// Execute runs the CLI with a background context and returns the process exit
// code.
func Execute(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}
