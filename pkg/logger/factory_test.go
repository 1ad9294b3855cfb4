package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quirkauto/advisorcopilot/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNew(t *testing.T) {
	t.Run("creates JSON logger", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf))
		require.NotNil(t, log)
		log.Info("hello")
		entry := decodeLine(t, buf)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "hello", entry["msg"])
	})

	t.Run("text formatter option", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter())
		log.Info("hello")
		assert.Contains(t, buf.String(), "level=INFO")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("last formatter wins", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithTextFormatter(), logger.WithJSONFormatter())
		log.Info("hello")
		assert.Equal(t, "hello", decodeLine(t, buf)["msg"])
	})

	t.Run("includes default attributes", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithAttr(slog.String("svc", "test")))
		log.Info("msg")
		assert.Equal(t, "test", decodeLine(t, buf)["svc"])
	})

	t.Run("level filters records", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Empty(t, buf.String())
	})
}

func TestContextExtraction(t *testing.T) {
	type key string
	k := key("session")

	t.Run("extractor", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(
			logger.WithOutput(buf),
			logger.WithContextExtractors(nil, func(ctx context.Context) (slog.Attr, bool) {
				if v, ok := ctx.Value(k).(string); ok {
					return logger.SessionID(v), true
				}
				return slog.Attr{}, false
			}),
		)
		log.InfoContext(context.WithValue(context.Background(), k, "sess-42"), "lookup")
		assert.Equal(t, "sess-42", decodeLine(t, buf)["session_id"])
	})

	t.Run("context value", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("sid", k))
		log.InfoContext(context.WithValue(context.Background(), k, "sess-7"), "lookup")
		assert.Equal(t, "sess-7", decodeLine(t, buf)["sid"])
	})

	t.Run("survives With", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithOutput(buf), logger.WithContextValue("sid", k)).
			With(logger.Component("copilot")).
			WithGroup("lookup")
		log.InfoContext(context.WithValue(context.Background(), k, "sess-9"), "done")
		entry := decodeLine(t, buf)
		assert.Equal(t, "copilot", entry["component"])
		assert.Equal(t, map[string]any{"sid": "sess-9"}, entry["lookup"])
	})
}

func TestEnvironmentPresets(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithDevelopment("copilot"), logger.WithOutput(buf))
		log.Debug("msg")
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "service=copilot")
		assert.Contains(t, buf.String(), "env=development")
	})

	t.Run("production", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("prod", "copilot"), logger.WithOutput(buf))
		log.Debug("hidden")
		log.Info("msg")
		entry := decodeLine(t, buf)
		assert.Equal(t, "copilot", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})

	t.Run("staging", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("stage", "copilot"), logger.WithOutput(buf))
		log.Info("msg")
		assert.Equal(t, "staging", decodeLine(t, buf)["env"])
	})

	t.Run("empty service is ignored", func(t *testing.T) {
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithDevelopment(""), logger.WithOutput(buf))
		log.Info("msg")
		assert.NotContains(t, decodeLine(t, buf), "service")
	})
}

func TestFromConfig(t *testing.T) {
	t.Run("overrides preset", func(t *testing.T) {
		opts, err := logger.FromConfig(logger.Config{Level: "warn", Format: "JSON"})
		require.NoError(t, err)

		buf := &bytes.Buffer{}
		log := logger.New(append([]logger.Option{logger.WithDevelopment("copilot"), logger.WithOutput(buf)}, opts...)...)
		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Equal(t, "kept", decodeLine(t, buf)["msg"])
	})

	t.Run("empty config", func(t *testing.T) {
		opts, err := logger.FromConfig(logger.Config{})
		require.NoError(t, err)
		assert.Empty(t, opts)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := logger.FromConfig(logger.Config{Level: "loud"})
		assert.Error(t, err)
		_, err = logger.FromConfig(logger.Config{Format: "xml"})
		assert.Error(t, err)
	})
}

func TestSetAsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	buf := &bytes.Buffer{}
	logger.SetAsDefault(logger.New(logger.WithOutput(buf)))
	slog.Info("default")
	assert.Equal(t, "default", decodeLine(t, buf)["msg"])
}

func TestWithFormatPanics(t *testing.T) {
	assert.Panics(t, func() {
		logger.New(logger.WithFormat(logger.Format("xml")))
	})
}
