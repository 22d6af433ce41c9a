package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deniedPlan = `{
  "resources": [
    {
      "address": "compute-node-group.cpu-a",
      "type": "compute-node-group",
      "name": "cpu-a",
      "attributes": {
        "minReplicas": 3,
        "maxReplicas": 3,
        "metadataOptions": {"httpTokens": "required"},
        "tags": {"team": "ml", "cost-center": "rnd", "environment": "dev"}
      }
    }
  ]
}`

const admittedPlan = `{
  "resources": [
    {
      "address": "compute-node-group.cpu-a",
      "type": "compute-node-group",
      "name": "cpu-a",
      "attributes": {
        "minReplicas": 1,
        "maxReplicas": 5,
        "desiredSize": 2,
        "metadataOptions": {"httpTokens": "required"},
        "tags": {"team": "ml", "cost-center": "rnd", "environment": "dev"}
      }
    }
  ]
}`

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCheckOn(t *testing.T, path string, silence []string) error {
	t.Helper()
	cmd := checkCmd()
	require.NoError(t, cmd.Flags().Set("filename", path))
	for _, id := range silence {
		require.NoError(t, cmd.Flags().Set("silence", id))
	}
	t.Cleanup(func() {
		checkFile = ""
		silenceRules = nil
	})
	return runCheck(cmd, nil)
}

func TestRunCheck_Denied(t *testing.T) {
	err := runCheckOn(t, writePlan(t, deniedPlan), nil)
	assert.ErrorIs(t, err, errDenied)
}

func TestRunCheck_Admitted(t *testing.T) {
	assert.NoError(t, runCheckOn(t, writePlan(t, admittedPlan), nil))
}

func TestRunCheck_SilencedRuleAdmits(t *testing.T) {
	// The only blocking finding comes from scaling-headroom; silencing it
	// flips the verdict.
	err := runCheckOn(t, writePlan(t, deniedPlan), []string{"scaling-headroom"})
	assert.NoError(t, err)
}

func TestRunCheck_UnknownSilenceID(t *testing.T) {
	// A silence entry that matches no catalog rule is an input error, not a
	// verdict: a typo must not silently leave the rule active.
	err := runCheckOn(t, writePlan(t, deniedPlan), []string{"scaling-hedroom"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errDenied)
	assert.Contains(t, err.Error(), "scaling-hedroom")
}

func TestRunCheck_MissingFile(t *testing.T) {
	err := runCheckOn(t, filepath.Join(t.TempDir(), "absent.json"), nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errDenied)
}
