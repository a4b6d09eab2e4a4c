package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/game"
	"github.com/pitfigu/GuardianSurvivor/parameter"
)

func quiet() game.Option {
	return game.WithLogger(slog.New(slog.DiscardHandler))
}

func TestPilotKitesAwayFromEnemies(t *testing.T) {
	snap := &game.Snapshot{
		ArenaW: 1000, ArenaH: 800,
		Player:  game.PlayerView{X: 500, Y: 400},
		Enemies: []game.EnemyView{{X: 510, Y: 400}, {X: 500, Y: 700}},
	}
	v := pilot(snap)
	assert.Less(t, v.X, 0.0)
	assert.Less(t, v.Y, 0.0, "far enemy below still pushes up")
	assert.Less(t, -v.Y, -v.X*0.1, "near enemy dominates")
}

func TestPilotStaysOffWalls(t *testing.T) {
	snap := &game.Snapshot{ArenaW: 1000, ArenaH: 800, Player: game.PlayerView{X: 10, Y: 790}}
	v := pilot(snap)
	assert.Equal(t, 1.0, v.X)
	assert.Equal(t, -1.0, v.Y)

	snap.Player = game.PlayerView{X: 500, Y: 400}
	assert.True(t, pilot(snap).IsZero())
}

func TestSimulateIsDeterministic(t *testing.T) {
	a, err := simulate(parameter.Default(), 11, 20*time.Second, quiet())
	require.NoError(t, err)
	b, err := simulate(parameter.Default(), 11, 20*time.Second, quiet())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Greater(t, a.Survival, time.Duration(0))
	assert.LessOrEqual(t, a.Survival, 20*time.Second+parameter.TickInterval)
}

func TestSimulateRejectsBadSettings(t *testing.T) {
	s := parameter.Default()
	s.Arena.Width = -1
	_, err := simulate(s, 1, time.Second, quiet())
	assert.ErrorIs(t, err, parameter.ErrInvalidSettings)
}

func TestRunAllKeepsSeedOrder(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	records, err := runAll(parameter.Default(), 5, 3, 2, 5*time.Second, logger)
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i, rec := range records {
		assert.Equal(t, uint64(5+i), rec.Seed)
		want, err := simulate(parameter.Default(), rec.Seed, 5*time.Second, quiet())
		require.NoError(t, err)
		assert.Equal(t, want, rec.Result)
	}

	none, err := runAll(parameter.Default(), 1, 0, 4, time.Second, logger)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReportAndRecords(t *testing.T) {
	records := []record{
		{Seed: 1, Result: engine.Result{Score: 100, Kills: 10, Level: 2, Survival: 60 * time.Second, Difficulty: 2}},
		{Seed: 2, Result: engine.Result{Score: 300, Kills: 30, Level: 4, Survival: 120 * time.Second, Difficulty: 3}},
	}

	var out bytes.Buffer
	report(&out, records, 120*time.Second)
	assert.Contains(t, out.String(), "mean survival 1m30s  mean score 200  reached limit 1/2")

	path := filepath.Join(t.TempDir(), "runs.msgpack")
	require.NoError(t, writeRecords(path, records))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []record
	require.NoError(t, msgpack.Unmarshal(data, &got))
	assert.Equal(t, records, got)
}
