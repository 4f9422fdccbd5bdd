package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/stax/internal/vcs/gitexec"
)

var stacksCmd = &cobra.Command{
	Use:   "stacks",
	Short: "List stacks and their commits",
	Long:  `Print every local branch with its commits, including the remote, integrated, and conflicted markers the graph view shows.`,
	RunE:  runStacks,
}

func init() {
	rootCmd.AddCommand(stacksCmd)
}

func runStacks(cmd *cobra.Command, args []string) error {
	repoDir := cfg.RepoDir
	if repoDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		repoDir = cwd
	}

	executor, err := gitexec.New(repoDir,
		gitexec.WithUpstream(cfg.Upstream),
		gitexec.WithLogLimit(cfg.LogLimit),
	)
	if err != nil {
		return err
	}

	stacks, err := executor.ListStacks(context.Background())
	if err != nil {
		return fmt.Errorf("loading stacks: %w", err)
	}

	for _, stack := range stacks {
		fmt.Printf("%s (%d commits)\n", stack.Name, len(stack.Commits))
		for _, commit := range stack.Commits {
			marks := ""
			if commit.IsRemote {
				marks += " [remote]"
			}
			if commit.IsIntegrated {
				marks += " [integrated]"
			}
			if commit.Conflicted {
				marks += " [conflicted]"
			}
			fmt.Printf("  %s  %s%s\n", commit.ID.Short(), commit.Subject, marks)
		}
		fmt.Println()
	}
	return nil
}
