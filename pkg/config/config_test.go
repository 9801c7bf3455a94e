package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: nil},
		{name: "single", in: "kafka:9092", want: []string{"kafka:9092"}},
		{name: "spaces and blanks", in: " a:1 , ,b:2,", want: []string{"a:1", "b:2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CSV(tt.in))
		})
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("TEST_STR", "value")
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_DURATION", "3s")
	t.Setenv("TEST_BAD_DURATION", "-1s")

	assert.Equal(t, "value", EnvDefault("TEST_STR", "def"))
	assert.Equal(t, "def", EnvDefault("TEST_MISSING", "def"))
	assert.Equal(t, 42, EnvIntDefault("TEST_INT", 1))
	assert.Equal(t, 1, EnvIntDefault("TEST_BAD_INT", 1))
	assert.True(t, EnvBoolDefault("TEST_BOOL", false))
	assert.False(t, EnvBoolDefault("TEST_MISSING", false))
	assert.Equal(t, 3*time.Second, EnvDurationDefault("TEST_DURATION", time.Second))
	assert.Equal(t, time.Second, EnvDurationDefault("TEST_BAD_DURATION", time.Second))
}
