package logging

import (
	"errors"
	"log/slog"
	"testing"

	"dealscope/prospector/pkg/config"
)

func TestRedactor_RedactString(t *testing.T) {
	r := NewRedactor(nil)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"email", "reach ada.lovelace@acme.co.uk today", "reach a***@acme.co.uk today"},
		{"linkedin", "see linkedin.com/in/grace-hopper/ now", "see linkedin.com/in/***/ now"},
		{"linkedin case", "https://LinkedIn.com/in/Someone?trk=x", "https://LinkedIn.com/in/***?trk=x"},
		{"company page untouched", "linkedin.com/company/acme", "linkedin.com/company/acme"},
		{"phone", "call 555-123-4567", "call ***-***-****"},
		{"plain", "Combined Acquisition Score 80", "Combined Acquisition Score 80"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.RedactString(tt.input); got != tt.want {
				t.Errorf("RedactString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRedactor_CustomPatterns(t *testing.T) {
	r := NewRedactor([]config.RedactPattern{
		{Name: "deal", Pattern: `DEAL-\d+`, Replacement: "DEAL-***"},
		{Name: "broken", Pattern: `(`, Replacement: "x"},
	})

	if got := r.RedactString("closing DEAL-4411"); got != "closing DEAL-***" {
		t.Errorf("expected custom pattern applied, got %q", got)
	}
}

func TestRedactor_RedactAttr(t *testing.T) {
	r := NewRedactor(nil)

	group := r.RedactAttr(slog.Group("contact",
		slog.String("linkedinProfileUrl", "https://linkedin.com/in/x"),
		slog.Int("age", 61),
	))
	attrs := group.Value.Group()
	if attrs[0].Value.String() != "h***" {
		t.Errorf("expected nested sensitive key masked, got %q", attrs[0].Value.String())
	}
	if attrs[1].Value.Int64() != 61 {
		t.Errorf("expected non-string attr untouched, got %v", attrs[1].Value)
	}

	errAttr := r.RedactAttr(slog.Any("error", errors.New("bad row for ada@acme.com")))
	if errAttr.Value.String() != "bad row for a***@acme.com" {
		t.Errorf("expected error text redacted, got %q", errAttr.Value.String())
	}
}

func TestRedactEmail(t *testing.T) {
	tests := map[string]string{
		"ada@acme.com": "a***@acme.com",
		"@acme.com":    "***@acme.com",
		"not-an-email": "not-an-email",
	}
	for in, want := range tests {
		if got := RedactEmail(in); got != want {
			t.Errorf("RedactEmail(%q) = %q, want %q", in, got, want)
		}
	}
}
