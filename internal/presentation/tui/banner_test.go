package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestPrintBanner_Ascii(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, termenv.Ascii, "1.2.3")

	out := buf.String()
	assert.NotContains(t, out, "\x1b[", "ascii profile emits no escape sequences")
	assert.Contains(t, out, bannerLines[0])
	assert.True(t, strings.HasSuffix(out, "  v1.2.3\n\n"))
}

func TestPrintBanner_Colored(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, termenv.TrueColor, "1.2.3")
	assert.Contains(t, buf.String(), "\x1b[")
}
