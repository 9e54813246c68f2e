package cmd

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vln "github.com/embodied-nav/vln-sdk"
	"github.com/embodied-nav/vln-sdk/domain/errors"
	"github.com/embodied-nav/vln-sdk/host/registry"
	"github.com/embodied-nav/vln-sdk/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	r := registry.New()
	require.NoError(t, vln.Register(r))

	root := NewRootCommand(r)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func kitchenDataset(t *testing.T) string {
	return writeFile(t, "val_seen.json", `{"episodes": [`+testutil.KitchenJSON+`]}`)
}

func TestList_JSON(t *testing.T) {
	out, err := run(t, "list", "--output", "json")
	require.NoError(t, err)

	var regs []registration
	require.NoError(t, json.Unmarshal([]byte(out), &regs))
	require.Len(t, regs, 3)

	assert.Equal(t, registration{Kind: "task", Name: "Nav-v0", Schema: true}, regs[0])
	assert.Equal(t, registration{Kind: "task", Name: "VLN-v0", Schema: true}, regs[1])
	assert.Equal(t, "sensor", regs[2].Kind)
	assert.Equal(t, "instruction", regs[2].UUID)
	assert.Equal(t, "Box(0, 5000, [200], float32)", regs[2].Space)
}

func TestList_Table(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "VLN-v0")
	assert.Contains(t, out, "InstructionSensor")
}

func TestSchema(t *testing.T) {
	out, err := run(t, "schema", "task", "VLN-v0")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	testutil.AssertKeys(t, doc["properties"].(map[string]any), "instruction", "path", "trajectory_id", "goals")

	out, err = run(t, "schema", "sensor", "InstructionSensor")
	require.NoError(t, err)
	assert.Contains(t, out, "trajectory_id")
}

func TestSchema_Unknown(t *testing.T) {
	_, err := run(t, "schema", "task", "ObjectNav-v1")
	assert.True(t, stdErrors.Is(err, errors.ErrNotFound))

	_, err = run(t, "schema", "simulator", "habitat")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	out, err := run(t, "validate", kitchenDataset(t), "--output", "json")
	require.NoError(t, err)

	var stats datasetStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 1, stats.Episodes)
	assert.Equal(t, 1, stats.Scenes)
	assert.Equal(t, 1, stats.Trajectories)
	assert.InDelta(t, 4.0, stats.MeanTokens, 1e-9)
	assert.InDelta(t, 3.0, stats.MeanPathLength, 1e-9)
	assert.InDelta(t, 6.42, stats.MeanGeodesicDist, 1e-9)
}

func TestValidate_Table(t *testing.T) {
	out, err := run(t, "validate", kitchenDataset(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Mean geodesic distance")
	assert.Contains(t, out, "6.42")
}

func TestNewRootCommand_BindsFlags(t *testing.T) {
	require.NotPanics(t, func() {
		root := NewRootCommand(registry.New())
		for _, name := range []string{"log-level", "log-format", "dataset", "strict", "schema-check", "task", "max-episode-steps"} {
			assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
		}
	})
}

func TestValidate_DatasetFromEnv(t *testing.T) {
	path := kitchenDataset(t)
	t.Setenv("VLN_DATASET_PATH", path)

	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "val_seen.json")
}

func TestValidate_InvalidEpisode(t *testing.T) {
	bad := strings.Replace(testutil.KitchenJSON, `"trajectory_id": 42`, `"trajectory_id": null`, 1)
	path := writeFile(t, "bad.json", `{"episodes": [`+bad+`]}`)

	_, err := run(t, "validate", path)
	require.Error(t, err)
	assert.True(t, stdErrors.Is(err, errors.ErrNullField))

	out, err := run(t, "validate", path, "--strict=false", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"episodes": 0`)
}

func TestValidate_NoDataset(t *testing.T) {
	_, err := run(t, "validate")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	cfg := writeFile(t, "vln.yaml", "log_level: debug\ndataset:\n  path: "+kitchenDataset(t)+"\n  schema_check: true\n")

	out, err := run(t, "validate", "--config", cfg, "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"episodes": 1`)
}

func TestConfigFile_Invalid(t *testing.T) {
	cfg := writeFile(t, "vln.yaml", "log_level: loud\n")

	_, err := run(t, "list", "--config", cfg)
	var ce *errors.ConfigError
	require.True(t, stdErrors.As(err, &ce))
	assert.Equal(t, "log_level", ce.Field)

	_, err = run(t, "list", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestObserve_JSONLines(t *testing.T) {
	out, err := run(t, "observe", kitchenDataset(t), "--output", "json", "--steps", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)

	for i, line := range lines {
		var rec struct {
			EpisodeID    string `json:"episode_id"`
			Step         int    `json:"step"`
			Observations map[string]struct {
				Text         string   `json:"text"`
				Tokens       []string `json:"tokens"`
				TrajectoryID int      `json:"trajectory_id"`
			} `json:"observations"`
		}
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		assert.Equal(t, "1", rec.EpisodeID)
		assert.Equal(t, i, rec.Step)
		assert.Equal(t, testutil.KitchenText, rec.Observations["instruction"].Text)
		assert.Equal(t, testutil.KitchenTokens(), rec.Observations["instruction"].Tokens)
		assert.Equal(t, testutil.KitchenTrajectoryID, rec.Observations["instruction"].TrajectoryID)
	}
}

func TestObserve_MaxEpisodeSteps(t *testing.T) {
	out, err := run(t, "observe", kitchenDataset(t), "--output", "json", "--steps", "5", "--max-episode-steps", "2")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
}

func TestObserve_UnknownEpisode(t *testing.T) {
	_, err := run(t, "observe", kitchenDataset(t), "--episode", "99")
	assert.Error(t, err)
}

func TestObserve_Table(t *testing.T) {
	out, err := run(t, "observe", kitchenDataset(t), "--episode", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "go to the kitchen")
}
