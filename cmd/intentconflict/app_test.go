package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const intentsFixture = `{
  "i0": ["OSPF", "simple", "A", "D", ["A", "B", "D"]],
  "i1": ["OSPF", "simple", "A", "D", ["A", "C", "D"]]
}`

const topologyFixture = `{
  "routers": [{"name": "A"}, {"name": "B"}, {"name": "C"}, {"name": "D"}],
  "links": [
    {"node1": {"name": "A"}, "node2": {"name": "B"}},
    {"node1": {"name": "A"}, "node2": {"name": "C"}},
    {"node1": {"name": "B"}, "node2": {"name": "D"}},
    {"node1": {"name": "C"}, "node2": {"name": "D"}}
  ]
}`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	intentsPath := writeFixture(t, dir, "intents.json", intentsFixture)
	topoPath := writeFixture(t, dir, "topology.json", topologyFixture)
	outPath := filepath.Join(dir, "report.json")

	cmd := newRootCmd()
	cmd.SetArgs([]string{intentsPath, topoPath, "--output", outPath, "--quiet"})
	require.NoError(t, cmd.Execute())

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var out struct {
		IntentsFile string `json:"intents_file"`
		Status      string `json:"status"`
		MUSes       []struct {
			IDs  []string `json:"intent_ids"`
			Size int      `json:"size"`
		} `json:"muses"`
		MSSes []json.RawMessage `json:"msses"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Equal(t, intentsPath, out.IntentsFile)
	require.Equal(t, "exhausted", out.Status)
	require.Len(t, out.MUSes, 1)
	require.Equal(t, []string{"i0", "i1"}, out.MUSes[0].IDs)
	require.Len(t, out.MSSes, 2)
}

func TestRun_ConfigFileWithFlagOverride(t *testing.T) {
	dir := t.TempDir()
	intentsPath := writeFixture(t, dir, "intents.json", intentsFixture)
	topoPath := writeFixture(t, dir, "topology.json", topologyFixture)
	cfgPath := writeFixture(t, dir, "run.yaml", "bias: MSSes\nmax_results: 7\noutput: "+
		filepath.Join(dir, "from-config.json")+"\n")
	outPath := filepath.Join(dir, "report.json")

	// The flag beats the config file for output, the file wins for
	// bias.
	cmd := newRootCmd()
	cmd.SetArgs([]string{intentsPath, topoPath, "--config", cfgPath, "--output", outPath, "--quiet"})
	require.NoError(t, cmd.Execute())

	raw, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var out struct {
		Bias string `json:"bias"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Equal(t, "MSSes", out.Bias)
	require.NoFileExists(t, filepath.Join(dir, "from-config.json"))
}

func TestRun_RejectsBadBias(t *testing.T) {
	dir := t.TempDir()
	intentsPath := writeFixture(t, dir, "intents.json", intentsFixture)
	topoPath := writeFixture(t, dir, "topology.json", topologyFixture)

	cmd := newRootCmd()
	cmd.SetArgs([]string{intentsPath, topoPath, "--bias", "sideways"})
	require.Error(t, cmd.Execute())
}

func TestRun_MissingInputFile(t *testing.T) {
	dir := t.TempDir()
	topoPath := writeFixture(t, dir, "topology.json", topologyFixture)

	cmd := newRootCmd()
	cmd.SetArgs([]string{filepath.Join(dir, "nope.json"), topoPath, "--quiet"})
	require.Error(t, cmd.Execute())
}
