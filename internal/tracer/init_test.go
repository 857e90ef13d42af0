package tracer

import (
	"context"
	"testing"

	"faq-chatbot-be/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestInitTracer_Disabled(t *testing.T) {
	shutdown := InitTracer(config.AppConfig{OtelEnabled: false})
	assert.NoError(t, shutdown(context.Background()))
}
