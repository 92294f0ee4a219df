package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogLevel(t *testing.T) {
	defer Log.SetLevel(logrus.InfoLevel)

	tests := []struct {
		input    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"INFO", logrus.InfoLevel},
		{"", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.NoError(t, SetLogLevel(tt.input))
			assert.Equal(t, tt.expected, Log.GetLevel())
		})
	}

	t.Run("rejects unknown level", func(t *testing.T) {
		assert.Error(t, SetLogLevel("verbose"))
	})
}

func TestComponent(t *testing.T) {
	entry := Component("tracker")
	assert.Equal(t, "tracker", entry.Data["component"])
}
