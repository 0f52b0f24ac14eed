package logutil

import (
	"io"
	"regexp"
	"strings"
)

// PIIFields lists the log field names whose values are personally
// identifiable and must never reach log output in the clear.
var PIIFields = []string{"name", "email", "phone", "ssn", "password"}

const redaction = "***"

// RedactingWriter masks the values of sensitive fields in JSON log lines
// before handing them to the underlying writer.
type RedactingWriter struct {
	out     io.Writer
	pattern *regexp.Regexp
	replace []byte
}

// NewRedactingWriter wraps out so that the named fields are masked. With no
// fields given it masks PIIFields.
func NewRedactingWriter(out io.Writer, fields ...string) *RedactingWriter {
	if len(fields) == 0 {
		fields = PIIFields
	}
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return &RedactingWriter{
		out:     out,
		pattern: regexp.MustCompile(`"(` + strings.Join(quoted, "|") + `)":"[^"]*"`),
		replace: []byte(`"$1":"` + redaction + `"`),
	}
}

// Write reports the original length so callers never see a short write when
// redaction shrinks the line.
func (w *RedactingWriter) Write(p []byte) (int, error) {
	if _, err := w.out.Write(w.pattern.ReplaceAll(p, w.replace)); err != nil {
		return 0, err
	}
	return len(p), nil
}
