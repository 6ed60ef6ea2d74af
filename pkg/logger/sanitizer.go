package logger

import (
	"regexp"
	"strings"
)

// Patterns for values that must never reach the logs.
var (
	passwordPattern = regexp.MustCompile(`(?i)(password|passwd|pwd)[\s:=]+[^\s&]+`)
	bearerPattern   = regexp.MustCompile(`(?i)(bearer)\s+[^\s,;]+`)
	tokenPattern    = regexp.MustCompile(`(?i)(token|jwt)[\s:=]+[^\s&;]+`)
	cookiePattern   = regexp.MustCompile(`(?i)(admin_token)=[^\s;]+`)
	secretPattern   = regexp.MustCompile(`(?i)(secret|access[_-]?key)[\s:=]+[^\s&]+`)
	emailPattern    = regexp.MustCompile(`([a-zA-Z0-9._%+-])[a-zA-Z0-9._%+-]*(@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)
)

const redactedPlaceholder = "[REDACTED]"

var sensitiveKeys = []string{
	"password", "passwd", "pwd",
	"token", "jwt", "bearer", "authorization", "cookie",
	"secret", "access_key", "accesskey",
}

// SanitizeLogMessage removes credentials from a log line and masks the local
// part of any email address (customer enquiries carry them).
func SanitizeLogMessage(message string) string {
	message = passwordPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = bearerPattern.ReplaceAllString(message, "${1} "+redactedPlaceholder)
	message = cookiePattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = tokenPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = secretPattern.ReplaceAllString(message, "${1}="+redactedPlaceholder)
	message = emailPattern.ReplaceAllString(message, "${1}***${2}")
	return message
}

// SanitizeMap replaces the values of sensitive keys and scrubs string values.
func SanitizeMap(data map[string]interface{}) map[string]interface{} {
	sanitized := make(map[string]interface{}, len(data))
	for k, v := range data {
		if isSensitiveKey(k) {
			sanitized[k] = redactedPlaceholder
			continue
		}
		if s, ok := v.(string); ok {
			sanitized[k] = SanitizeLogMessage(s)
			continue
		}
		sanitized[k] = v
	}
	return sanitized
}

func isSensitiveKey(k string) bool {
	lowerKey := strings.ToLower(k)
	for _, sensitiveKey := range sensitiveKeys {
		if strings.Contains(lowerKey, sensitiveKey) {
			return true
		}
	}
	return false
}
