// Package cmd wires configuration, storage, the git backend, and the
// TUI together behind the stax command line.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/stax/internal/config"
	"github.com/zjrosen/stax/internal/infrastructure/sqlite"
	"github.com/zjrosen/stax/internal/log"
	"github.com/zjrosen/stax/internal/stacks/application"
	"github.com/zjrosen/stax/internal/stacks/domain"
	"github.com/zjrosen/stax/internal/stacks/drop"
	"github.com/zjrosen/stax/internal/trace"
	"github.com/zjrosen/stax/internal/ui/graph"
	"github.com/zjrosen/stax/internal/vcs/gitexec"
	"github.com/zjrosen/stax/internal/watch"
)

var (
	cfgFile     string
	repoDirFlag string
	cfg         config.Config
)

var rootCmd = &cobra.Command{
	Use:          "stax",
	Short:        "Terminal client for stack-based git workflows",
	Long:         `Stax shows your branches as stacks of commit cards and lets you edit history by dragging changes between them: drop a file or hunk on a commit to amend it, drop a commit on another commit to squash them.`,
	RunE:         runRoot,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initCliConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/stax/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&repoDirFlag, "repo-dir", "", "repository to operate on (default: current directory)")
}

func initCliConfig() {
	cfg = config.Defaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "stax"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("STAX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if err := viper.Unmarshal(&cfg); err != nil {
			fmt.Fprintf(os.Stderr, "stax: invalid config: %v\n", err)
			os.Exit(1)
		}
	}

	if repoDirFlag != "" {
		cfg.RepoDir = repoDirFlag
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	repoDir := cfg.RepoDir
	if repoDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		repoDir = cwd
	}

	if err := log.Init(logPath(), cfg.Log.Level); err != nil {
		return fmt.Errorf("initializing log: %w", err)
	}
	defer func() { _ = log.Close() }()

	ctx := context.Background()
	shutdownTracing, err := trace.Setup(ctx, trace.Config{
		Enabled:  cfg.Tracing.Enabled,
		Endpoint: cfg.Tracing.Endpoint,
		FilePath: cfg.Tracing.File,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = shutdownTracing(ctx) }()

	executor, err := gitexec.New(repoDir,
		gitexec.WithUpstream(cfg.Upstream),
		gitexec.WithLogLimit(cfg.LogLimit),
	)
	if err != nil {
		return err
	}

	db, err := sqlite.NewDB(journalPath())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	dispatcher := application.NewDispatcher(executor, db.JournalRepository())
	defer dispatcher.Close()

	project := domain.Project{
		Title:            filepath.Base(repoDir),
		Path:             repoDir,
		ForcePushAllowed: cfg.ForcePushAllowed,
	}
	factory := drop.NewFactory(dispatcher, project)

	zones := zone.New()
	defer zones.Close()

	model := graph.New(executor, executor, factory, zones,
		graph.WithStatusBar(cfg.UI.ShowStatusBar),
		graph.WithAuthors(cfg.UI.ShowAuthors),
	)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if cfg.AutoRefresh {
		watcher, err := watch.New(repoDir, cfg.AutoRefreshDebounce)
		if err != nil {
			log.ErrorErr(log.CatVCS, "Repository watcher unavailable", err)
		} else {
			defer func() { _ = watcher.Close() }()
			go func() {
				for range watcher.Events() {
					executor.InvalidateFlags()
					program.Send(graph.RefreshMsg{})
				}
			}()
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// staxDir is the per-user state directory for logs and the journal.
func staxDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stax"
	}
	return filepath.Join(home, ".stax")
}

func logPath() string {
	if cfg.Log.File != "" {
		return cfg.Log.File
	}
	return filepath.Join(staxDir(), "stax.log")
}

func journalPath() string {
	if cfg.JournalPath != "" {
		return cfg.JournalPath
	}
	return filepath.Join(staxDir(), "stax.db")
}
