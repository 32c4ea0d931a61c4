package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPasswordResetOTP(t *testing.T) {
	subject, text, html, err := Render(PasswordResetOTP, map[string]any{
		"Username":  "alice",
		"OTP":       "123456",
		"ExpiresIn": "5m0s",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, subject)
	assert.Contains(t, text, "123456")
	assert.Contains(t, html, "123456")
	assert.Contains(t, html, "alice")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", nil)
	assert.Error(t, err)
}
