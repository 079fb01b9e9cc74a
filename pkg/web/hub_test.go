package web

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/kemu/internal/cpu"
)

var entry = cpu.Entry{
	PC:      0x0150,
	Bytes:   []byte{0x3E, 0x42},
	Name:    "LD A, d8",
	Operand: cpu.OperandD8,
	Cycles:  2,
	Registers: cpu.Snapshot{
		A: 0x42, F: 0x80, B: 0x01, L: 0x4D,
		SP: 0xFFFE, PC: 0x0152,
		IME: true,
	},
}

func TestEncodeEntry(t *testing.T) {
	frame, err := DecodeEntry(EncodeEntry(entry))
	require.NoError(t, err)
	assert.Equal(t, entry.PC, frame.PC)
	assert.Equal(t, entry.Cycles, frame.Cycles)
	assert.Equal(t, entry.Bytes, frame.Bytes)
	assert.Equal(t, entry.Registers, frame.Registers)
	assert.Equal(t, "LD A, $42", frame.Mnemonic)

	t.Run("short", func(t *testing.T) {
		msg := EncodeEntry(entry)
		for _, m := range [][]byte{nil, msg[:entryHeader-1], msg[:entryHeader+1], {ServerInfo}} {
			_, err := DecodeEntry(m)
			assert.ErrorIs(t, err, ErrShortMessage)
		}
	})
}

func TestTraceNeverBlocks(t *testing.T) {
	h := NewHub(nil)
	for i := 0; i < 1000; i++ {
		h.Trace(entry)
	}
	assert.Equal(t, uint64(cap(h.broadcast)), h.Traced())
	assert.Equal(t, uint64(1000-cap(h.broadcast)), h.Dropped())
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(url, "http"), nil)
	require.NoError(t, err)
	return conn
}

// next returns the next message of type typ, skipping any others.
func next(t *testing.T, conn *websocket.Conn, typ Type) []byte {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err)
		if len(msg) > 0 && msg[0] == typ {
			return msg
		}
	}
}

func TestHub(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := NewHub(nil)
	h.InfoInterval = 10 * time.Millisecond
	go h.Run(ctx)

	srv := httptest.NewServer(h)
	defer srv.Close()

	first, second := dial(t, srv.URL), dial(t, srv.URL)
	defer first.Close()
	defer second.Close()

	assert.Equal(t, []byte{ClientInfo, 1}, next(t, first, ClientInfo))
	assert.Equal(t, []byte{ClientInfo, 2}, next(t, second, ClientInfo))
	require.Eventually(t, func() bool { return h.Clients() == 2 }, time.Second, 10*time.Millisecond)

	t.Run("broadcast", func(t *testing.T) {
		h.Trace(entry)
		for _, conn := range []*websocket.Conn{first, second} {
			frame, err := DecodeEntry(next(t, conn, TraceEntry))
			require.NoError(t, err)
			assert.Equal(t, "LD A, $42", frame.Mnemonic)
		}
	})
	t.Run("server info", func(t *testing.T) {
		msg := next(t, first, ServerInfo)
		assert.Len(t, msg, 17)
	})
	t.Run("closing", func(t *testing.T) {
		require.NoError(t, second.WriteMessage(websocket.BinaryMessage, []byte{Closing}))
		require.Eventually(t, func() bool { return h.Clients() == 1 }, time.Second, 10*time.Millisecond)
	})
	t.Run("shutdown", func(t *testing.T) {
		cancel()
		require.Eventually(t, func() bool { return h.Clients() == 0 }, time.Second, 10*time.Millisecond)
	})
}
