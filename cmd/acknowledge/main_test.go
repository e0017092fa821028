package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/anvlkv/acknowledgements/internal/app"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = io.Discard
	return l
}

func TestRootCmdErrors(t *testing.T) {
	t.Setenv("ACK_CACHEDIR", t.TempDir())

	tests := []struct {
		name         string
		args         []string
		wantReported bool
	}{
		{
			name:         "run failure is logged once by the command",
			args:         []string{"--path", t.TempDir()},
			wantReported: true,
		},
		{
			name: "flag errors are left to main",
			args: []string{"--no-such-flag"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd()
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Empty(t, out.String())

			var reported reportedError
			assert.Equal(t, tt.wantReported, errors.As(err, &reported))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("ACK_CRATESRATEINTERVAL", "250ms")
	t.Setenv("ACK_CACHEDIR", "/tmp/ack")

	conf, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.github.com", conf.GithubAPIAddress)
	assert.Equal(t, 250*time.Millisecond, conf.CratesRateInterval)
	assert.Equal(t, 30*time.Second, conf.HTTPTimeout)

	path, err := conf.cachePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/ack", "cache.db"), path)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := filepath.Join(dir, "Cargo.toml")
	require.NoError(t, os.WriteFile(manifest, []byte("[package]\n"), 0o644))

	assert.Equal(t, filepath.Join(dir, outputFileName), outputPath(options{path: dir}))
	assert.Equal(t, filepath.Join(dir, outputFileName), outputPath(options{path: manifest}))
	assert.Equal(t, "THANKS.md", outputPath(options{path: dir, output: "THANKS.md"}))
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printSummary(&buf, &app.Report{
		Format: app.FormatNameAndCount,
		NameAndCount: []app.NameAndCount{
			{Name: "dtolnay", Count: 300},
			{Name: "alice", Count: 20},
			{Name: "bob", Count: 3},
		},
		Others: 4,
	}, 2)

	out := buf.String()
	assert.Contains(t, out, "dtolnay")
	assert.Contains(t, out, "300")
	assert.Contains(t, out, "alice")
	assert.NotContains(t, out, "bob")
	assert.Contains(t, out, "4")
}

func TestOpenStoreFallsBackToMemory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	conf := Config{
		CacheDir:         dir,
		CacheFileName:    "cache.db",
		CacheBucketName:  "acknowledgements",
		CacheOpenTimeout: 10 * time.Millisecond,
		CacheMemorySize:  10,
	}

	first, err := openStore(conf, discardLogger())
	require.NoError(t, err)
	defer first.Close()
	require.NoError(t, first.UpdateKey([]byte("k"), []byte("v")))

	// The file is locked by the first store.
	second, err := openStore(conf, discardLogger())
	require.NoError(t, err)
	defer second.Close()

	data, err := second.ReadKey([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, data)
}
