package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/treasurehunt/experiment"
	"github.com/samuelfneumann/treasurehunt/experiment/tracker"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestConfigCommand(t *testing.T) {
	out := run(t, ConfigCommand(), "--grid-size", "5", "--trap", "6",
		"--trap", "8", "--trap-penalty", "-4", "--seed", "3")

	var c experiment.Config
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, 5, c.Env.GridSize)
	require.Len(t, c.Env.Traps, 2)
	assert.Equal(t, 6, c.Env.Traps[0].Position)
	assert.Equal(t, -4.0, c.Env.Traps[1].Penalty)
	assert.Equal(t, uint64(3), c.Seed)
}

func TestConfigCommandReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"episodes": 20, "agent": {"alpha": 0.3}}`), 0o644))

	out := run(t, ConfigCommand(), "--config", path, "--alpha", "0.5")
	var c experiment.Config
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, 20, c.Episodes)
	assert.Equal(t, 0.5, c.Agent.Alpha)
}

func TestConfigCommandRejectsInvalidFlags(t *testing.T) {
	cmd := ConfigCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--epsilon", "1.5"})
	assert.Error(t, cmd.Execute())
}

func TestTrainCommandSavesResults(t *testing.T) {
	dir := t.TempDir()
	out := run(t, TrainCommand(), "--trap", "5", "--episodes", "200",
		"--seed", "1", "--save-dir", dir, "--checkpoint-every", "100",
		"--no-color")

	assert.Contains(t, out, "Final Success Rate")
	assert.Contains(t, out, "Greedy path")
	for _, name := range []string{"config.json", "qtable.gob", "grid.png",
		"curves_reward.png", "curves_success.png", "report.html",
		"returns.bin", "lengths.bin", "qtable_1.gob", "qtable_2.gob"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "missing %s", name)
	}

	returns, err := tracker.LoadData(filepath.Join(dir, "returns.bin"))
	require.NoError(t, err)
	assert.Len(t, returns, 200)
}

func TestPathCommand(t *testing.T) {
	image := filepath.Join(t.TempDir(), "path.png")
	out := run(t, PathCommand(), "--trap", "5", "--episodes", "100",
		"--no-color", "--image", image)

	assert.Contains(t, out, "Greedy path [0")
	_, err := os.Stat(image)
	assert.NoError(t, err)
}
