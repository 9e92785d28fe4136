package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics/internal/logging"
)

func shipped() options {
	return options{
		config:   "../../config.yaml",
		items:    "../../assets/items.yaml",
		skills:   "../../assets/skills.yaml",
		scenario: "../../assets/scenario.yaml",
	}
}

func TestRunPrintsCombat(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(shipped(), &out, logging.New(&bytes.Buffer{})))

	s := out.String()
	assert.Contains(t, s, "combat ended")
	assert.Contains(t, s, "Eirika")
	assert.Contains(t, s, "batches")
}

func TestRunIsRepeatable(t *testing.T) {
	opts := shipped()
	opts.seed = 42

	var first, second bytes.Buffer
	quiet := logging.New(&bytes.Buffer{})
	require.NoError(t, run(opts, &first, quiet))
	require.NoError(t, run(opts, &second, quiet))
	assert.Equal(t, first.String(), second.String())
}

func TestQuietHidesEffects(t *testing.T) {
	opts := shipped()
	opts.quiet = true

	var out bytes.Buffer
	require.NoError(t, run(opts, &out, logging.New(&bytes.Buffer{})))
	assert.NotContains(t, out.String(), "sound ")
	assert.NotContains(t, out.String(), "screen shake")
}

func TestRunMissingScenario(t *testing.T) {
	opts := shipped()
	opts.scenario = "nope.yaml"
	assert.Error(t, run(opts, &bytes.Buffer{}, logging.Default()))
}
