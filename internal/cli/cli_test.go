package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/lvqap/internal/cli"
	"github.com/katalvlaran/lvqap/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// run executes the command tree with logging silenced and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()

	return out.String(), err
}

const lineCSV = "id,lat,lon,risk\nA,0,0,1\nB,0,2,1\nC,0,1,1\nD,0,3,1\n"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestGenerate_Stdout(t *testing.T) {
	out, err := run(t, "generate", "--n", "4", "--seed", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "id,lat,lon,risk", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Dep0,"))
}

func TestGenerateThenSolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inst.csv")
	_, err := run(t, "generate", "--n", "5", "--seed", "8", "--out", path)
	require.NoError(t, err)

	out, err := run(t, "-o", "json", "solve", path)
	require.NoError(t, err)
	var exact map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &exact), out)
	assert.Equal(t, "bb", exact["algo"])
	assert.Equal(t, true, exact["optimal"])
	assert.EqualValues(t, 5, exact["n"])

	out, err = run(t, "-o", "json", "solve", "--algo", "brute", path)
	require.NoError(t, err)
	var brute map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &brute), out)
	assert.Equal(t, exact["scaled_cost"], brute["scaled_cost"])
}

func TestSolve_TextAndJSONInstance(t *testing.T) {
	path := writeFile(t, "line.csv", lineCSV)
	out, err := run(t, "solve", "--distance", "euclidean", "--workers", "2", path)
	require.NoError(t, err)
	assert.Contains(t, out, "route:")
	assert.Contains(t, out, "optimal:  true")

	js := writeFile(t, "line.json", `{"facilities":[
		{"id":"A","lat":0,"lon":0,"risk":1},
		{"id":"B","lat":0,"lon":2,"risk":1},
		{"id":"C","lat":0,"lon":1,"risk":1}]}`)
	out, err = run(t, "-o", "yaml", "solve", "--distance", "euclidean", js)
	require.NoError(t, err)
	var rep map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	route := rep["route"]
	assert.Contains(t, []any{"A -> C -> B", "B -> C -> A"}, route)
}

func TestSolve_ConfigFileAndEnv(t *testing.T) {
	path := writeFile(t, "line.csv", lineCSV)
	cfg := writeFile(t, "lvqap.yaml", "solver:\n  algo: anneal\ninstance:\n  distance: euclidean\noutput: json\n")

	out, err := run(t, "--config", cfg, "solve", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"algo": "anneal"`)

	t.Setenv("LVQAP_SOLVER_ALGO", "brute")
	out, err = run(t, "--config", cfg, "solve", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"algo": "brute"`)

	// Flags beat the environment.
	out, err = run(t, "--config", cfg, "solve", "--algo", "bb", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"algo": "bb"`)
}

func TestSolve_Errors(t *testing.T) {
	_, err := run(t, "solve", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	path := writeFile(t, "line.csv", lineCSV)
	_, err = run(t, "solve", "--algo", "greedy", path)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "-o", "xml", "solve", path)
	assert.ErrorIs(t, err, config.ErrInvalid)

	bad := writeFile(t, "bad.csv", "id,lat,lon,risk\nA,0,0,0\n")
	_, err = run(t, "solve", bad)
	assert.Error(t, err)

	_, err = run(t, "solve")
	assert.Error(t, err)
}

func TestBench(t *testing.T) {
	out, err := run(t, "-o", "json", "bench", "--min", "2", "--max", "3", "--reps", "2", "--algos", "bb,brute", "--parallel", "2")
	require.NoError(t, err)
	var rep struct {
		ID        string           `json:"id"`
		Runs      []map[string]any `json:"runs"`
		Summaries []map[string]any `json:"summaries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rep), out)
	assert.NotEmpty(t, rep.ID)
	assert.Len(t, rep.Runs, 2*2*2)
	assert.Len(t, rep.Summaries, 2*2)

	out, err = run(t, "bench", "--min", "2", "--max", "2", "--reps", "1", "--algos", "anneal")
	require.NoError(t, err)
	assert.Contains(t, out, "MEAN ms")
}

func TestBench_InvalidRange(t *testing.T) {
	_, err := run(t, "bench", "--min", "4", "--max", "3")
	assert.ErrorIs(t, err, config.ErrInvalid)
}
