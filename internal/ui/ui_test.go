package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"metric", "value"}, [][]string{
		{"nodes", "50"},
		{"mean degree", "2.40"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "  metric       value" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[3] != "  mean degree  2.40" {
		t.Errorf("unexpected row %q", lines[3])
	}
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"a"}, nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestField(t *testing.T) {
	var buf bytes.Buffer
	Field(&buf, "Nodes", 50)
	if got := buf.String(); got != "  Nodes:           50\n" {
		t.Errorf("unexpected field line %q", got)
	}
}

func TestStatusIcon(t *testing.T) {
	if StatusIcon(true) != "✓" || StatusIcon(false) != "✗" {
		t.Error("unexpected status icons")
	}
}
