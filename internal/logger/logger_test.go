package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Msg("test message")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("expected output to contain 'test message', got: %s", buf.String())
	}
}

func TestConfigure(t *testing.T) {
	cases := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		log := Configure(&bytes.Buffer{}, tc.level, "json")
		if log.GetLevel() != tc.want {
			t.Errorf("level %q: got %v, want %v", tc.level, log.GetLevel(), tc.want)
		}
	}

	buf := &bytes.Buffer{}
	infoLog := Configure(buf, "info", "json")
	infoLog.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug message written at info level: %s", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf))

	log := FromContext(ctx)
	log.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("expected log output from retrieved logger")
	}
}

func TestFromContext_DefaultLogger(t *testing.T) {
	log := FromContext(context.Background())
	if log.GetLevel() == zerolog.Disabled {
		t.Error("expected default logger to be enabled")
	}
}

func TestWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := WithFields(NewWithWriter(buf), map[string]any{
		"transaction_id": 7,
		"action":         "delete",
	})
	log.Info().Msg("test message")

	out := buf.String()
	if !strings.Contains(out, `"transaction_id":7`) {
		t.Errorf("expected transaction_id field, got: %s", out)
	}
	if !strings.Contains(out, `"action":"delete"`) {
		t.Errorf("expected action field, got: %s", out)
	}
}

func TestFromContextOr(t *testing.T) {
	fallback := &bytes.Buffer{}
	log := FromContextOr(context.Background(), NewWithWriter(fallback))
	log.Info().Msg("fallback")
	if !strings.Contains(fallback.String(), "fallback") {
		t.Errorf("expected fallback logger to be used, got: %s", fallback.String())
	}

	scoped := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(scoped))
	log = FromContextOr(ctx, NewWithWriter(fallback))
	log.Info().Msg("scoped")
	if !strings.Contains(scoped.String(), "scoped") {
		t.Errorf("expected context logger to be used, got: %s", scoped.String())
	}
}
