package cli_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricewatch/internal/cli"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAddListRemove(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := runCommand(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No items currently being tracked")

	out, err = runCommand(t, "add", "https://example.com/p/1", "--name", "Widget")
	require.NoError(t, err)
	assert.Contains(t, out, "Now tracking: Widget (https://example.com/p/1)")

	out, err = runCommand(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Tracked Items:")
	assert.Contains(t, out, "1. Widget")
	assert.Contains(t, out, "URL: https://example.com/p/1")
	assert.Contains(t, out, "Current Price: Not checked yet")
	assert.Contains(t, out, "Last Checked: Never")

	out, err = runCommand(t, "remove", "https://example.com/p/1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed: Widget (https://example.com/p/1)")

	out, err = runCommand(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No items currently being tracked")
}

func TestAddDuplicateURL(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runCommand(t, "add", "https://example.com/p/1")
	require.NoError(t, err)

	_, err = runCommand(t, "add", "https://example.com/p/1")
	assert.ErrorContains(t, err, "already being tracked")
}

func TestCheckEmptyStore(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := runCommand(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "No price or URL changes detected")
}

func TestVersion(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pricewatch")
}

func TestInvalidStoreFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runCommand(t, "list", "--store", "redis")
	require.Error(t, err)

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
