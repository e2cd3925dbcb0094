//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppOption is a function that configures the test config file
type AppOption func(*appOptions)

type appOptions struct {
	delayMS  int
	failRate float64
	labels   []string // values are the 1-based positions
}

// WithDelay sets the debounce window
func WithDelay(ms int) AppOption {
	return func(opts *appOptions) {
		opts.delayMS = ms
	}
}

// WithFailRate makes every lookup fail with the given probability
func WithFailRate(rate float64) AppOption {
	return func(opts *appOptions) {
		opts.failRate = rate
	}
}

// WithLabels replaces the dictionary entries
func WithLabels(labels ...string) AppOption {
	return func(opts *appOptions) {
		opts.labels = labels
	}
}

// CreateTestWorkspace creates a temporary directory for config, log and dictionary
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteConfig writes a config and a dictionary into the workspace and
// returns the config path
func (tf *TUITestFramework) WriteConfig(options ...AppOption) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	opts := &appOptions{
		delayMS: 50,
		labels:  []string{"John", "Jack", "Anna", "Mike"},
	}
	for _, opt := range options {
		opt(opts)
	}

	dictPath := filepath.Join(tf.workspace, "names.yaml")
	var dict strings.Builder
	dict.WriteString("suggestions:\n")
	for i, label := range opts.labels {
		fmt.Fprintf(&dict, "  - value: \"%d\"\n    label: %q\n", i+1, label)
	}
	if err := os.WriteFile(dictPath, []byte(dict.String()), 0644); err != nil {
		return "", err
	}

	configPath := filepath.Join(tf.workspace, "config.toml")
	config := fmt.Sprintf(`version = 1

[autocomplete]
delay_ms = %d
list_height = 8
limit = 50
prompt = "> "
placeholder = "Start typing a name..."

[source]
dictionary = %q
latency_min_ms = 0
latency_max_ms = 0
fail_rate = %v

[log]
file = %q
level = "debug"
`, opts.delayMS, dictPath, opts.failRate, filepath.Join(tf.workspace, "typeahead.log"))
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		return "", err
	}
	return configPath, nil
}

// StartWithConfig creates a workspace and config and launches the app
func (tf *TUITestFramework) StartWithConfig(options ...AppOption) error {
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return err
	}
	configPath, err := tf.WriteConfig(options...)
	if err != nil {
		return err
	}
	return tf.StartApp("-config", configPath)
}
