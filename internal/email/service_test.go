package email

import (
	"strings"
	"testing"
)

func TestServiceIsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected bool
	}{
		{name: "empty config", config: Config{}, expected: false},
		{name: "missing host", config: Config{Port: "587", From: "memo@example.com"}, expected: false},
		{name: "missing port", config: Config{Host: "smtp.example.com", From: "memo@example.com"}, expected: false},
		{name: "missing from", config: Config{Host: "smtp.example.com", Port: "587"}, expected: false},
		{name: "fully configured", config: Config{Host: "smtp.example.com", Port: "587", From: "memo@example.com"}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.config)
			if svc.IsConfigured() != tt.expected {
				t.Errorf("IsConfigured() = %v, want %v", svc.IsConfigured(), tt.expected)
			}
		})
	}
}

func TestRenderShareRequestTemplate(t *testing.T) {
	data := ShareRequestData{
		AppName:    "Memopad",
		TargetName: "bob",
		SharerName: "alice",
		MemoTitle:  "Sourdough Recipe",
	}

	html, err := renderTemplate(shareRequestEmailTemplate, data)
	if err != nil {
		t.Fatalf("renderTemplate failed: %v", err)
	}

	if !strings.Contains(html, "Memopad") {
		t.Error("template should contain app name")
	}
	if !strings.Contains(html, "bob") {
		t.Error("template should contain the recipient name")
	}
	if !strings.Contains(html, "alice") {
		t.Error("template should contain the sharer name")
	}
	if !strings.Contains(html, "Sourdough Recipe") {
		t.Error("template should contain the memo title")
	}
}

func TestSendEmailFailsWhenNotConfigured(t *testing.T) {
	svc := NewService(Config{})
	if err := svc.SendEmail([]string{"bob@example.com"}, "Hi", "body"); err == nil {
		t.Error("expected error when SMTP is not configured")
	}
}
