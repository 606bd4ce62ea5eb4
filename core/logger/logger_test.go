package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagetools/sagekit/core/logger"
)

func TestNewJSONWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithProduction("sagekit"),
		logger.WithOutput(&buf),
	)
	log.Info("hello", logger.Slug("hello-world"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "sagekit", rec["service"])
	assert.Equal(t, "production", rec["env"])
	assert.Equal(t, "hello-world", rec["slug"])
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestContextValue(t *testing.T) {
	t.Parallel()

	type langKey struct{}
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithJSONFormatter(),
		logger.WithContextValue("language", langKey{}),
	)

	ctx := context.WithValue(context.Background(), langKey{}, "fr")
	log.InfoContext(ctx, "activated")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "fr", rec["language"])
}

func TestContextExtractorDoesNotOverrideRecordAttrs(t *testing.T) {
	t.Parallel()

	type langKey struct{}
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithJSONFormatter(),
		logger.WithContextValue("language", langKey{}),
	)

	ctx := context.WithValue(context.Background(), langKey{}, "fr")
	log.InfoContext(ctx, "activated", logger.Language("es"))

	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte(`"language"`)))
	assert.Contains(t, buf.String(), `"language":"es"`)
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("nonsense"))
}

func TestErrorAttrs(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")
	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))

	group := logger.Errors(err, nil, errors.New("second"))
	require.Equal(t, slog.KindGroup, group.Value.Kind())
	assert.Len(t, group.Value.Group(), 2)
	assert.True(t, logger.Errors(nil).Equal(slog.Attr{}))
}

func TestEmptyAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Language("").Equal(slog.Attr{}))
	assert.True(t, logger.Collection("").Equal(slog.Attr{}))
	assert.True(t, logger.ID("id", "").Equal(slog.Attr{}))
	assert.Equal(t, "fr", logger.Language("fr").Value.String())
	assert.Equal(t, int64(3), logger.Attempt(3).Value.Int64())
}

func TestGroupActionKey(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithProduction("sagekit"), logger.WithOutput(&buf))
	log.Warn("rejected",
		logger.Action("set_timezone"),
		logger.Group("csrf", logger.Key("cookie", true), logger.Key("submitted", false)),
	)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "set_timezone", rec["action"])
	assert.Equal(t, map[string]any{"cookie": true, "submitted": false}, rec["csrf"])
	assert.True(t, logger.Key("count", nil).Equal(slog.Attr{}))
}
