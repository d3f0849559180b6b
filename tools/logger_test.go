package tools

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogOutput_Suppression(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	defer func() {
		isEnabled = true
		printTimestamp = true
	}()

	DisableLoggerTimestamp()
	LogOutput("processing", 3, "files")
	assert.Contains(t, buf.String(), "processing 3 files")

	buf.Reset()
	DisableLogger()
	LogOutput("should not appear")
	assert.Empty(t, buf.String())
}
