package cli

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestProgressDoneReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(log.New(&buf))

	p.done("Generated 10 nodes and 12 edges")

	out := buf.String()
	if !strings.Contains(out, "Generated 10 nodes and 12 edges") {
		t.Errorf("message missing: %q", out)
	}
	if !regexp.MustCompile(`\([0-9][^)]*\)`).MatchString(out) {
		t.Errorf("elapsed time missing: %q", out)
	}
}
