// Package redact маскирует чувствительные значения перед логированием.
package redact

import "strings"

// Email оставляет первые две руны локальной части и домен.
func Email(s string) string {
	local, domain, ok := strings.Cut(s, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***"
	}

	r := []rune(local)
	if len(r) > 2 {
		return string(r[:2]) + "***@" + domain
	}

	return "***@" + domain
}

// Token — заглушка для токенов доступа.
func Token() string { return "[REDACTED_TOKEN]" }

// Password — заглушка для паролей.
func Password() string { return "[REDACTED_PASSWORD]" }

// Authorization маскирует значение заголовка Authorization, сохраняя схему.
func Authorization(v string) string {
	if v == "" {
		return ""
	}
	if scheme, _, ok := strings.Cut(v, " "); ok {
		return scheme + " " + Token()
	}

	return Token()
}
