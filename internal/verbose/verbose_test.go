package verbose

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	prev := Output
	Output = &buf
	t.Cleanup(func() {
		Output = prev
		Enabled = false
	})

	Enabled = false
	Printf("hidden %d", 1)
	Println("hidden")
	Debugf("hidden")
	assert.Empty(t, buf.String())

	Enabled = true
	Printf("a=%d ", 1)
	Println("b")
	Debugf("c=%s", "x")
	assert.Equal(t, "a=1 b\nc=x\n", buf.String())
}
