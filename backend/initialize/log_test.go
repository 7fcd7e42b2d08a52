package initialize

import (
	"bytes"
	"strings"
	"testing"

	"feedgate/backend/config"
	"feedgate/backend/global"

	"github.com/rs/zerolog"
)

func TestInitLogger_JSONAndLevel(t *testing.T) {
	prev := global.Logger
	t.Cleanup(func() {
		global.Logger = prev
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	var buf bytes.Buffer
	InitLogger(config.Log{Level: "warn", Format: "json"}, &buf)

	global.Logger.Info().Msg("hidden")
	global.Logger.Warn().Msg("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, `"message":"shown"`) {
		t.Fatalf("unexpected output %q", out)
	}

	buf.Reset()
	SetLogLevel("debug")
	global.Logger.Debug().Msg("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("level change not applied: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zerolog.Level{
		"":      zerolog.InfoLevel,
		"bogus": zerolog.InfoLevel,
		"error": zerolog.ErrorLevel,
		"debug": zerolog.DebugLevel,
	} {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
