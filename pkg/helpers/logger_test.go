package helpers

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_FormatAndLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	dev := NewLogger("app", "development")
	assert.Equal(t, logrus.DebugLevel, dev.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, dev.Formatter)

	prod := NewLogger("app", "production")
	assert.Equal(t, logrus.InfoLevel, prod.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, prod.Formatter)

	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, logrus.WarnLevel, NewLogger("app", "production").GetLevel())

	t.Setenv("LOG_LEVEL", "shouting")
	assert.Equal(t, logrus.InfoLevel, NewLogger("app", "production").GetLevel())
}
