package term

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/backmassage/assetkit/internal/config"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { Configure(config.ColorNever) })

	Configure(config.ColorAlways)
	assert.True(t, Enabled())
	assert.Contains(t, Red.Sprint("x"), "\x1b[")

	Configure(config.ColorNever)
	assert.False(t, Enabled())
	assert.Equal(t, "x", Red.Sprint("x"))
}

func TestConfigure_AutoRespectsNoColor(t *testing.T) {
	t.Cleanup(func() { Configure(config.ColorNever) })
	t.Setenv("NO_COLOR", "1")

	Configure(config.ColorAuto)
	assert.False(t, Enabled())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(nil))

	f, err := os.CreateTemp(t.TempDir(), "tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	assert.False(t, IsTerminal(f), "regular files are not terminals")
}
