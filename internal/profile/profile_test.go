package profile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/kemu/internal/cpu"
	"gonum.org/v1/plot/vg"
)

func traced(names ...string) *Profile {
	p := New()
	for _, name := range names {
		p.Trace(cpu.Entry{Name: name, Cycles: 1})
	}
	return p
}

func TestProfile(t *testing.T) {
	p := traced("NOP", "INC A", "INC A", "HALT", "INC A", "NOP")
	assert.Equal(t, uint64(6), p.Total())

	assert.Equal(t, []Count{
		{Name: "INC A", Count: 3, Cycles: 3},
		{Name: "NOP", Count: 2, Cycles: 2},
		{Name: "HALT", Count: 1, Cycles: 1},
	}, p.Top(0))
	assert.Len(t, p.Top(2), 2)
	assert.Len(t, p.Top(10), 3)
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, traced("NOP", "INC A", "INC A", "NOP").Report(&buf, 0))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "INC A")
	assert.Contains(t, lines[1], "50.00")
	assert.Contains(t, lines[3], "4")
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, traced("NOP", "INC A", "INC A").WritePNG(&buf, 10, 4*vg.Inch, 3*vg.Inch))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	t.Run("empty", func(t *testing.T) {
		assert.ErrorIs(t, New().WritePNG(&buf, 10, 4*vg.Inch, 3*vg.Inch), ErrEmpty)
	})
}
