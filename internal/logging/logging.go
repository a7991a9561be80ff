// internal/logging/logging.go
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init routes the standard logger to stdout and, when logPath is set, to an
// appended log file as well.
func Init(logPath string) error {
	return InitWithConsole(logPath, true)
}

// InitWithConsole is Init with stdout optional. Full-screen commands log to the
// file only; with neither target, output is discarded.
func InitWithConsole(logPath string, console bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	if console {
		writers = append(writers, os.Stdout)
	}

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	if len(writers) == 0 {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close detaches and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogSelection records a selection change coming from one of the front ends.
func LogSelection(source, client, category string, payload any) {
	msg := buildSelectionMessage(source, client, category, payload)
	log.Println(msg)
}

func buildSelectionMessage(source, client, category string, payload any) string {
	src := strings.ToUpper(strings.TrimSpace(source))
	if src == "" {
		src = "SELECT"
	}
	clientValue := strings.TrimSpace(client)
	if clientValue == "" {
		clientValue = "local"
	}
	categoryValue := strings.TrimSpace(category)
	if categoryValue == "" {
		categoryValue = "unknown"
	}
	parts := []string{fmt.Sprintf("[%s]", src)}
	parts = append(parts, fmt.Sprintf("client=%s", clientValue))
	parts = append(parts, fmt.Sprintf("category=%q", categoryValue))
	if payload != nil {
		parts = append(parts, fmt.Sprintf("payload=%s", formatPayload(payload)))
	}
	return strings.Join(parts, " ")
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
