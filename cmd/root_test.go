package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/litrep/internal/adapter"
	"github.com/mouse-blink/litrep/internal/domain"
	domainmocks "github.com/mouse-blink/litrep/internal/domain/mocks"
	m "github.com/mouse-blink/litrep/internal/model"
)

// newTestRoot builds a fresh root command with subcommands and swaps the
// global workflow for a mock until the test ends.
func newTestRoot(t *testing.T, subcommands ...*cobra.Command) (*cobra.Command, *domainmocks.MockWorkflow) {
	t.Helper()

	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(subcommands...)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow

	t.Cleanup(func() { workflow = originalWorkflow })

	return cmd, mockWorkflow
}

// writeTestConfig writes a .litrep.toml into a temp dir and returns its path.
func writeTestConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".litrep.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestRootCmd_ListFlag(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t)

	mockWorkflow.On("Estimate", mock.MatchedBy(func(args domain.EstimateArgs) bool {
		return len(args.Paths) == 1 && args.Paths[0] == m.Path("./...")
	})).Return(nil)

	cmd.SetArgs([]string{"--list", "./..."})
	require.NoError(t, cmd.Execute())

	mockWorkflow.AssertExpectations(t)
}

func TestRootCmd_TransformMode(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t)

	wd, err := os.Getwd()
	require.NoError(t, err)

	mockWorkflow.On("Transform", mock.MatchedBy(func(args domain.TransformArgs) bool {
		return args.OutDir == m.Path(filepath.Join(wd, "dist")) &&
			args.SourceMap == domain.SourceMapFile &&
			!args.SourcesContent &&
			args.Threads == 1 &&
			len(args.Paths) == 2
	})).Return(nil)

	cmd.SetArgs([]string{"./src/...", "./lib"})
	require.NoError(t, cmd.Execute())

	mockWorkflow.AssertExpectations(t)
}

func TestRootCmd_ParallelFlagOverridesConfig(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t)

	configPath := writeTestConfig(t, "[output]\nparallel = 2\n")

	mockWorkflow.On("Transform", mock.MatchedBy(func(args domain.TransformArgs) bool {
		return args.Threads == 8
	})).Return(nil)

	cmd.SetArgs([]string{"--config", configPath, "--parallel", "8"})
	require.NoError(t, cmd.Execute())
}

func TestRootCmd_NoPathsScansConfigDir(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t)

	configPath := writeTestConfig(t, "")
	dir := filepath.Dir(configPath)

	mockWorkflow.On("Estimate", domain.EstimateArgs{
		Paths: []m.Path{m.Path(dir + "/...")},
	}).Return(nil)

	cmd.SetArgs([]string{"-l", "-c", configPath})
	require.NoError(t, cmd.Execute())
}

func TestRootCmd_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		config func(t *testing.T) string
		want   string
	}{
		{
			name:   "missing file",
			config: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") },
			want:   "cannot read",
		},
		{
			name:   "bad preset",
			config: func(t *testing.T) string { return writeTestConfig(t, "preset = \"sha\"\n") },
			want:   "unknown preset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, mockWorkflow := newTestRoot(t)

			cmd.SetArgs([]string{"--config", tt.config(t), "./..."})
			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			mockWorkflow.AssertNotCalled(t, "Transform", mock.Anything)
		})
	}
}

func TestRootCmd_WorkflowError(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t)

	mockWorkflow.On("Transform", mock.Anything).Return(fmt.Errorf("read src/a.ts: permission denied"))

	cmd.SetArgs([]string{"./..."})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestNewRootCmd(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "litrep [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"list", "parallel"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	for _, name := range []string{"config", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestInit(t *testing.T) {
	names := make([]string, 0)
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Subset(t, names, []string{"run", "list", "diff"})
}

func TestSetup_WiresWorkflow(t *testing.T) {
	originalWorkflow, originalConfigFlag := workflow, configFlag
	t.Cleanup(func() { workflow, configFlag = originalWorkflow, originalConfigFlag })

	cmd := newRootCmd()

	cacheDir := t.TempDir()
	configFlag = writeTestConfig(t, fmt.Sprintf("[cache]\ndir = %q\n[parser]\ncommand = \"cat\"\n", cacheDir))
	workflow = nil

	require.NoError(t, setup(cmd, nil))

	assert.NotNil(t, workflow)
	assert.NotNil(t, cfg)
	require.NotNil(t, resultStore, "cache dir opens a badger store")

	require.NoError(t, teardown(cmd, nil))
	assert.Nil(t, resultStore)
}

func TestSetup_NoParser(t *testing.T) {
	originalWorkflow, originalConfigFlag := workflow, configFlag
	t.Cleanup(func() { workflow, configFlag = originalWorkflow, originalConfigFlag })

	cmd := newRootCmd()

	configFlag = writeTestConfig(t, "[parser]\ncommand = \"  \"\n")
	workflow = nil

	err := setup(cmd, nil)
	require.ErrorIs(t, err, adapter.ErrNoParser)
	assert.Contains(t, err.Error(), "set [parser] command")
	assert.Nil(t, workflow)
}

func TestRootCmd_IdentityListsEveryIncludedFile(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}

	originalWorkflow, originalTTY := workflow, isTTY
	t.Cleanup(func() { workflow, isTTY = originalWorkflow, originalTTY })

	workflow = nil
	isTTY = func(io.Writer) bool { return false }

	configPath := writeTestConfig(t, `preset = "identity"
[parser]
command = "cat"
[files]
include = ["src/**/*.mjs", "src/**/*.js"]
`)
	dir := filepath.Dir(configPath)

	// cat echoes the file, so each source is its own syntax tree
	tree := `{"type":"Program","range":[0,0],"body":[]}`
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "a.mjs"), []byte(tree), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "b.js"), []byte(tree), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "c.css"), []byte(tree), 0o644))

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-l", "-c", configPath})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "a.mjs")
	assert.Contains(t, out.String(), "b.js")
	assert.NotContains(t, out.String(), "c.css")
}

func TestSetup_KeepsInjectedWorkflow(t *testing.T) {
	_, mockWorkflow := newTestRoot(t)

	require.NoError(t, setup(newRootCmd(), nil))

	assert.Same(t, mockWorkflow, workflow)
	assert.Nil(t, resultStore)
}

func TestParsePaths(t *testing.T) {
	originalConfig := cfg
	t.Cleanup(func() { cfg = originalConfig })

	cfg = nil
	assert.Nil(t, parsePaths(nil))

	configPath := writeTestConfig(t, "")
	require.NoError(t, setupConfigOnly(configPath))

	assert.Equal(t, []m.Path{m.Path(filepath.Dir(configPath) + "/...")}, parsePaths(nil))
	assert.Equal(t, []m.Path{"a", "b/..."}, parsePaths([]string{"a", "b/..."}))
}

func setupConfigOnly(path string) error {
	var err error

	cfg, err = loadConfig(path)

	return err
}

func TestExecute(t *testing.T) {
	originalRootCmd := rootCmd
	defer func() { rootCmd = originalRootCmd }()

	mockCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	mockCmd.SetOut(&bytes.Buffer{})
	mockCmd.SetErr(&bytes.Buffer{})

	rootCmd = mockCmd

	Execute()
}

func TestExecute_ProcessLevel_Failure(t *testing.T) {
	if os.Getenv("TEST_EXECUTE_SUBPROCESS_FAIL") == "1" {
		mockCmd := &cobra.Command{
			Use: "test",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(os.Stderr, "error occurred")
				return fmt.Errorf("command failed")
			},
		}
		mockCmd.SetOut(os.Stdout)
		mockCmd.SetErr(os.Stderr)
		rootCmd = mockCmd

		Execute()

		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestExecute_ProcessLevel_Failure")
	cmd.Env = append(os.Environ(), "TEST_EXECUTE_SUBPROCESS_FAIL=1")
	output, err := cmd.CombinedOutput()

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, "output: %s", output)
	assert.Equal(t, 1, exitErr.ExitCode())
	assert.True(t, strings.Contains(string(output), "error occurred"), string(output))
}
