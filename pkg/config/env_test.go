package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092 , ,b:9092"))
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("BIBLION_STR", "value")
	t.Setenv("BIBLION_INT", "42")
	t.Setenv("BIBLION_BAD_INT", "x")
	t.Setenv("BIBLION_BOOL", "true")
	t.Setenv("BIBLION_DUR", "150ms")

	assert.Equal(t, "value", EnvDefault("BIBLION_STR", "def"))
	assert.Equal(t, "def", EnvDefault("BIBLION_MISSING", "def"))
	assert.Equal(t, 42, EnvIntDefault("BIBLION_INT", 1))
	assert.Equal(t, 1, EnvIntDefault("BIBLION_BAD_INT", 1))
	assert.True(t, EnvBoolDefault("BIBLION_BOOL", false))
	assert.False(t, EnvBoolDefault("BIBLION_MISSING", false))
	assert.Equal(t, 150*time.Millisecond, EnvDurationDefault("BIBLION_DUR", time.Second))
	assert.Equal(t, time.Second, EnvDurationDefault("BIBLION_MISSING", time.Second))
}

func TestMustNonEmpty(t *testing.T) {
	assert.Panics(t, func() { MustNonEmpty("", "JWT_SECRET") })
	assert.NotPanics(t, func() { MustNonEmptyBytes([]byte("x"), "JWT_SECRET") })
	assert.Error(t, RequireNonEmpty(map[string]string{"DATABASE_URL": ""}))
	assert.NoError(t, RequireNonEmpty(map[string]string{"DATABASE_URL": "postgres://"}))
}
