package console

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoubleClicked_UnderTest(t *testing.T) {
	if runtime.GOOS != "windows" {
		assert.False(t, DoubleClicked())
		return
	}
	// go test always runs under a shell or the go tool, never Explorer
	assert.NotPanics(t, func() { _ = DoubleClicked() })
}
