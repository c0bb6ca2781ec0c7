package notifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAddress(t *testing.T) {
	assert.Equal(t, "hr@acme.io", parseAddress("HR <hr@acme.io>"))
	assert.Equal(t, "hr@acme.io", parseAddress("<hr@acme.io>"))
	assert.Equal(t, "hr@acme.io", parseAddress("hr@acme.io"))
	assert.Equal(t, "HR <hr@acme.io", parseAddress("HR <hr@acme.io"))
}

func TestBuildMessage(t *testing.T) {
	msg := buildMessage("HR <hr@acme.io>", "nora.blake@acme.io", "Subject line", "body text")

	headers, body, found := strings.Cut(msg, "\r\n\r\n")
	assert.True(t, found)
	assert.Contains(t, headers, "From: HR <hr@acme.io>")
	assert.Contains(t, headers, "To: nora.blake@acme.io")
	assert.Contains(t, headers, "Subject: Subject line")
	assert.Contains(t, headers, "Content-Type: text/plain")
	assert.Equal(t, "body text", body)
}
