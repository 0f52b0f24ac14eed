package logutil

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRedactingWriterMasksPIIFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(NewRedactingWriter(&buf))

	logger.Info().
		Str("email", "a@x.com").
		Str("password", "pw1").
		Str("path", "/api/v1/users").
		Msg("login")

	out := buf.String()
	if strings.Contains(out, "a@x.com") || strings.Contains(out, "pw1") {
		t.Fatalf("sensitive values leaked into log output: %s", out)
	}
	if !strings.Contains(out, `"email":"***"`) || !strings.Contains(out, `"password":"***"`) {
		t.Fatalf("sensitive fields not masked: %s", out)
	}
	if !strings.Contains(out, `"path":"/api/v1/users"`) {
		t.Fatalf("non-sensitive field damaged: %s", out)
	}
}

func TestRedactingWriterCustomFields(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(NewRedactingWriter(&buf, "ssn"))

	logger.Info().Str("ssn", "123-45-6789").Str("email", "a@x.com").Msg("record")

	out := buf.String()
	if strings.Contains(out, "123-45-6789") {
		t.Fatalf("ssn leaked: %s", out)
	}
	if !strings.Contains(out, `"email":"a@x.com"`) {
		t.Fatalf("field outside the configured set was masked: %s", out)
	}
}
