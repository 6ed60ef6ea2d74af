package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLogMessage(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		contains string
		absent   string
	}{
		{"password", "login failed password=hunter2", "password=[REDACTED]", "hunter2"},
		{"bearer", "Authorization: Bearer abc.def.ghi", "Bearer [REDACTED]", "abc.def.ghi"},
		{"cookie", "cookie admin_token=xyz; path=/", "admin_token=[REDACTED]", "xyz"},
		{"email", "enquiry from ravi.kumar@example.com", "r***@example.com", "ravi.kumar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := SanitizeLogMessage(tt.in)
			assert.Contains(t, out, tt.contains)
			assert.NotContains(t, out, tt.absent)
		})
	}
}

func TestSanitizeMap(t *testing.T) {
	out := SanitizeMap(map[string]interface{}{
		"Authorization": "Bearer abc",
		"session_token": "abc",
		"path":          "/dashboard/reviews",
		"count":         3,
	})

	assert.Equal(t, redactedPlaceholder, out["Authorization"])
	assert.Equal(t, redactedPlaceholder, out["session_token"])
	assert.Equal(t, "/dashboard/reviews", out["path"])
	assert.Equal(t, 3, out["count"])
}
