package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func TestLogLevelMapping(t *testing.T) {
	cases := map[string]clog.Level{
		"debug":   clog.DebugLevel,
		"info":    clog.InfoLevel,
		"warn":    clog.WarnLevel,
		"warning": clog.WarnLevel,
		"error":   clog.ErrorLevel,
		"DEBUG":   clog.DebugLevel,
		"bogus":   clog.InfoLevel,
		"":        clog.InfoLevel,
	}
	for in, want := range cases {
		require.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestLogDir(t *testing.T) {
	stateDir := t.TempDir()
	cfg := Config{StateDir: stateDir}

	dir, err := cfg.LogDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(stateDir, "logs"), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestLogDirFallback(t *testing.T) {
	cfg := Config{StateDir: ""}
	dir, err := cfg.LogDir()
	require.NoError(t, err)
	require.Contains(t, dir, filepath.Join("snapvault", "logs"))
}

func TestInitDisabled(t *testing.T) {
	logger, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	require.IsType(t, noopLogger{}, logger)
	// Calling methods should not panic
	logger.Debug("test")
	logger.Info("test")
	logger.Warn("test")
	logger.Error("test")
	require.NoError(t, logger.Shutdown())
	require.Empty(t, FilePath(logger))
}

func TestInitEnabledCreatesFile(t *testing.T) {
	stateDir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.StateDir = stateDir
	cfg.Command = "testcmd"

	logger, err := Init(cfg)
	require.NoError(t, err)
	defer logger.Shutdown()

	logDir := filepath.Join(stateDir, "logs")
	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	fname := entries[0].Name()
	require.True(t, strings.HasPrefix(fname, "snapvault_"))
	require.Contains(t, fname, fmt.Sprintf("_PID%d_", os.Getpid()))
	require.Contains(t, fname, "_testcmd.log")

	info, err := os.Stat(filepath.Join(logDir, fname))
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
	require.Equal(t, filepath.Join(logDir, fname), FilePath(logger))
}

func TestLoggingWritesJSON(t *testing.T) {
	stateDir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.StateDir = stateDir
	cfg.Command = "jsoncmd"

	logger, err := Init(cfg)
	require.NoError(t, err)

	logger.Info("test message", "key1", "value1", "key2", 42)
	require.NoError(t, logger.Shutdown())

	data, err := os.ReadFile(FilePath(logger))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.NotEmpty(t, lines)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	require.Equal(t, "info", entry["level"])
	require.Equal(t, "test message", entry["msg"])
	require.Equal(t, float64(os.Getpid()), entry["pid"])
	require.Equal(t, "jsoncmd", entry["command"])
	require.Equal(t, "value1", entry["key1"])
	require.Equal(t, float64(42), entry["key2"])
}

func TestWith(t *testing.T) {
	stateDir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.StateDir = stateDir

	logger, err := Init(cfg)
	require.NoError(t, err)

	child := logger.With("component", "catalog")
	child.Info("opened")
	require.NoError(t, logger.Shutdown())

	data, err := os.ReadFile(FilePath(logger))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	require.Equal(t, "catalog", entry["component"])
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()

	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, fmt.Sprintf("snapvault_2026010%d_000000_PID1_cmd.log", i))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
		ts := time.Now().Add(time.Duration(i-5) * time.Hour)
		require.NoError(t, os.Chtimes(path, ts, ts))
	}
	// A file that does not match the pattern must survive.
	other := filepath.Join(dir, "unrelated.txt")
	require.NoError(t, os.WriteFile(other, []byte("x"), 0600))

	require.NoError(t, rotate(dir, 2))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var logs []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, e.Name())
		}
	}
	require.Len(t, logs, 2)
	require.Contains(t, logs, "snapvault_20260103_000000_PID1_cmd.log")
	require.Contains(t, logs, "snapvault_20260104_000000_PID1_cmd.log")
	require.FileExists(t, other)
}

func TestRotationEdgeCases(t *testing.T) {
	dir := t.TempDir()

	// Empty dir, zero and negative maxFiles: all no-ops.
	require.NoError(t, rotate(dir, 5))
	require.NoError(t, rotate(dir, 0))
	require.NoError(t, rotate(dir, -1))

	path := filepath.Join(dir, "snapvault_20260101_000000_PID1_cmd.log")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	require.NoError(t, rotate(dir, 5))
	require.FileExists(t, path)
}
