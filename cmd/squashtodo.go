package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/stax/internal/stacks/domain"
	"github.com/zjrosen/stax/internal/vcs/gitexec"
)

// squashTodoCmd is the sequence editor stax passes to git during a
// squash rebase: git invokes `stax squash-todo <source> <dest> <file>`
// and the command rewrites the todo list in place.
var squashTodoCmd = &cobra.Command{
	Use:    "squash-todo <source> <dest> <todo-file>",
	Hidden: true,
	Args:   cobra.ExactArgs(3),
	RunE:   runSquashTodo,
}

func init() {
	rootCmd.AddCommand(squashTodoCmd)
}

func runSquashTodo(cmd *cobra.Command, args []string) error {
	source, dest, todoPath := domain.CommitID(args[0]), domain.CommitID(args[1]), args[2]

	data, err := os.ReadFile(todoPath) //nolint:gosec // G304: path is provided by git
	if err != nil {
		return fmt.Errorf("reading todo list: %w", err)
	}

	rewritten, err := gitexec.RewriteSquashTodo(string(data), source, dest)
	if err != nil {
		return err
	}

	if err := os.WriteFile(todoPath, []byte(rewritten), 0o600); err != nil {
		return fmt.Errorf("writing todo list: %w", err)
	}
	return nil
}
