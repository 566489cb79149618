package otel_test

import (
	"testing"

	"github.com/goto/optimus-apitoken/internal/otel"
	"github.com/stretchr/testify/assert"
)

func TestParseAttributes(t *testing.T) {
	t.Run("return empty map for empty input", func(t *testing.T) {
		assert.Empty(t, otel.ParseAttributes(""))
	})
	t.Run("skip malformed pairs", func(t *testing.T) {
		attr := otel.ParseAttributes("team=data, job = nightly,broken,=x")

		assert.Equal(t, map[string]string{"team": "data", "job": "nightly"}, attr)
	})
}
