package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// setupTestDir points logging at a temporary directory and resets global state
func setupTestDir(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	t.Setenv(LogDirEnv, tempDir)

	origLogDir := logDir
	origInitErr := initErr
	origSessionID := sessionID

	logDir = ""
	initErr = nil
	initOnce = sync.Once{}
	sessionID = ""
	sessionIDOnce = sync.Once{}
	SetLevel(LevelDebug)

	t.Cleanup(func() {
		logDir = origLogDir
		initErr = origInitErr
		initOnce = sync.Once{}
		sessionID = origSessionID
		sessionIDOnce = sync.Once{}
		SetLevel(LevelDebug)
	})

	return tempDir
}

func readLog(t *testing.T, l *Logger) string {
	t.Helper()
	content, err := os.ReadFile(l.LogPath())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestNewLogger(t *testing.T) {
	dir := setupTestDir(t)

	logger, err := NewLogger("pool")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if logger.component != "pool" {
		t.Errorf("Expected component 'pool', got %q", logger.component)
	}
	if logger.SessionID() == "" {
		t.Error("Expected non-empty session ID")
	}
	if filepath.Dir(logger.LogPath()) != dir {
		t.Errorf("Expected log in %s, got %s", dir, logger.LogPath())
	}
	if _, err := os.Stat(logger.LogPath()); os.IsNotExist(err) {
		t.Errorf("Log file does not exist at %s", logger.LogPath())
	}
}

func TestLoggerFormatting(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("engine")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	logger.Printf("Run %d started", 7)
	logger.Debugf("Debug message")
	logger.Infof("Info message")
	logger.Warnf("Warning message")
	logger.Errorf("Error message")

	content := readLog(t, logger)
	expected := []string{
		"[engine] [INFO] Run 7 started",
		"[engine] [DEBUG] Debug message",
		"[engine] [INFO] Info message",
		"[engine] [WARN] Warning message",
		"[engine] [ERROR] Error message",
	}
	for _, pattern := range expected {
		if !strings.Contains(content, pattern) {
			t.Errorf("Log content missing expected pattern: %q\nContent:\n%s", pattern, content)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("filter")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	SetLevel(LevelWarn)
	logger.Debugf("hidden debug")
	logger.Infof("hidden info")
	logger.Warnf("shown warning")

	content := readLog(t, logger)
	if strings.Contains(content, "hidden") {
		t.Errorf("Expected debug and info entries to be filtered, got:\n%s", content)
	}
	if !strings.Contains(content, "shown warning") {
		t.Errorf("Expected warning entry, got:\n%s", content)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"quiet":   LevelWarn,
		"normal":  LevelInfo,
		"verbose": LevelDebug,
		"debug":   LevelDebug,
		"":        LevelInfo,
		"DEBUG":   LevelDebug,
	}
	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestMultipleComponents(t *testing.T) {
	setupTestDir(t)

	logger1, err := NewLogger("component1")
	if err != nil {
		t.Fatalf("Failed to create logger1: %v", err)
	}
	defer logger1.Close()

	logger2, err := NewLogger("component2")
	if err != nil {
		t.Fatalf("Failed to create logger2: %v", err)
	}
	defer logger2.Close()

	if logger1.SessionID() != logger2.SessionID() {
		t.Errorf("Expected same session ID, got %q and %q", logger1.SessionID(), logger2.SessionID())
	}
	if logger1.LogPath() != logger2.LogPath() {
		t.Errorf("Expected same log path, got %q and %q", logger1.LogPath(), logger2.LogPath())
	}

	logger1.Printf("Message from component1")
	logger2.Printf("Message from component2")

	content := readLog(t, logger1)
	if !strings.Contains(content, "[component1]") || !strings.Contains(content, "[component2]") {
		t.Errorf("Expected entries from both components, got:\n%s", content)
	}
}

func TestNilLoggerIsSilent(t *testing.T) {
	var logger *Logger
	logger.Infof("nothing happens")
}

func TestLoggerClose(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("First close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}

func TestLogPathFormat(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("test")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	fileName := filepath.Base(logger.LogPath())
	if !strings.HasSuffix(fileName, "-webuitest.log") {
		t.Errorf("Expected log file to end with '-webuitest.log', got %q", fileName)
	}
	if sessionPart := strings.TrimSuffix(fileName, "-webuitest.log"); sessionPart != GetSessionID() {
		t.Errorf("Expected file name to start with session ID %q, got %q", GetSessionID(), sessionPart)
	}
}
