package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunSquashTodo_RewritesFile(t *testing.T) {
	todoPath := filepath.Join(t.TempDir(), "git-rebase-todo")
	todo := "pick aaa1111 First\npick bbb2222 Second\npick ccc3333 Third\n"
	require.NoError(t, os.WriteFile(todoPath, []byte(todo), 0o600))

	err := runSquashTodo(squashTodoCmd, []string{"ccc3333", "aaa1111", todoPath})
	require.NoError(t, err)

	data, err := os.ReadFile(todoPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "pick aaa1111 First\nfixup ccc3333 Third")
}

func TestRunSquashTodo_MissingCommitLeavesFileUntouched(t *testing.T) {
	todoPath := filepath.Join(t.TempDir(), "git-rebase-todo")
	todo := "pick aaa1111 First\n"
	require.NoError(t, os.WriteFile(todoPath, []byte(todo), 0o600))

	err := runSquashTodo(squashTodoCmd, []string{"ddd4444", "aaa1111", todoPath})
	require.Error(t, err)

	data, err := os.ReadFile(todoPath)
	require.NoError(t, err)
	require.Equal(t, todo, string(data))
}

func TestRunSquashTodo_MissingFile(t *testing.T) {
	err := runSquashTodo(squashTodoCmd, []string{"a", "b", filepath.Join(t.TempDir(), "nope")})
	require.Error(t, err)
}
