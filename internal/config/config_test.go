package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList("  "))
	assert.Equal(t, []string{"a"}, splitList("a"))
	assert.Equal(t, []string{"a", "b", "c"}, splitList("a, b ,c"))
	assert.Equal(t, []string{"a", "b"}, splitList("a,,b,"))
}

func TestSubmitterSelection(t *testing.T) {
	cfg := &Config{FormSparkURL: "https://submit.example/form"}
	assert.Equal(t, SubmitterFormSpark, cfg.Submitter())

	cfg.WebinarAPIURL = "https://api.example/register"
	assert.Equal(t, SubmitterWebinarJam, cfg.Submitter())
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, 5, cfg.MaxMessages)
	assert.Equal(t, 300, cfg.MaxLength)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, ":8080", cfg.OpsAddr)
}
