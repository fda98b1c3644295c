package utils

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Debug("hidden detail")
	logger.Info("starting simulation", slog.Int("generations", 42))
	logger.Error("failed to save", tint.Err(errors.New("disk full")))

	out := buf.String()
	if strings.Contains(out, "hidden detail") {
		t.Fatal("debug records must be filtered at info level")
	}
	for _, want := range []string{"starting simulation", "generations=42", "failed to save", "disk full"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
}
