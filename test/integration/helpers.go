//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/activecampaign/pkg/acclient"
	"github.com/fivetwenty-io/activecampaign/pkg/activecampaign"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	URL      string
	Token    string
	ActID    string
	EventKey string
	AcPath   string
	Verbose  bool
}

// LoadTestConfig loads configuration from the environment. A .env file at
// the repository root is read first when present.
func LoadTestConfig() *TestConfig {
	_ = godotenv.Load("../../.env")

	return &TestConfig{
		URL:      os.Getenv("AC_URL"),
		Token:    os.Getenv("AC_TOKEN"),
		ActID:    os.Getenv("AC_EVENT_ACTID"),
		EventKey: os.Getenv("AC_EVENT_KEY"),
		AcPath:   getAcPath(),
		Verbose:  os.Getenv("AC_VERBOSE") == "true",
	}
}

func getAcPath() string {
	if path := os.Getenv("AC_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../ac", "./ac", "../ac"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "ac"
}

// SkipIfMissingConfig skips the test unless account credentials are set.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.URL == "" || config.Token == "" {
		t.Skip("AC_URL and AC_TOKEN not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips the test when the ac binary cannot be found.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.AcPath); err != nil {
		t.Skipf("ac binary not found at %s, skipping integration test", config.AcPath)
	}
}

// NewClient creates a retrying client for the configured account.
func (config *TestConfig) NewClient(t *testing.T) activecampaign.Client {
	t.Helper()

	acConfig := &activecampaign.Config{
		APIURL:             config.URL,
		APIToken:           config.Token,
		EventTrackingActID: config.ActID,
		EventTrackingKey:   config.EventKey,
		Retry:              activecampaign.DefaultRetryPolicy(),
		RateLimit:          5,
		Debug:              config.Verbose,
	}

	client, err := acclient.New(context.Background(), acConfig)
	require.NoError(t, err)

	return client
}

// CommandRunner runs the ac binary against the configured account.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{config: config, t: t}
}

// Run executes an ac command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.AcPath, args...)
	cmd.Env = append(os.Environ(), "AC_URL="+runner.config.URL, "AC_TOKEN="+runner.config.Token)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.AcPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestEmail creates a unique address for a test contact.
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

// AssertJSONOutput checks that output is valid JSON.
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	var data interface{}

	require.NoError(t, json.Unmarshal([]byte(output), &data), "output is not valid JSON: %s", output)
}
