package web

import (
	"encoding/binary"
	"errors"

	"github.com/thelolagemann/kemu/internal/cpu"
)

// Type identifies a message sent from the hub to its clients. It is the
// first byte of every message.
type Type = uint8

const (
	// TraceEntry carries a single executed instruction, see EncodeEntry.
	TraceEntry Type = iota
	// ServerInfo carries the number of entries broadcast and dropped so
	// far, as two little-endian uint64s.
	ServerInfo
	// ClientInfo carries the ID assigned to a client on connection.
	ClientInfo

	Closing = 255
)

// ErrShortMessage is returned when decoding a message that is too short
// for its type.
var ErrShortMessage = errors.New("web: short message")

// entryHeader is the fixed part of a TraceEntry message: type, PC,
// cycles, A F B C D E H L, SP and PC after execution, IME and the
// number of instruction bytes.
const entryHeader = 1 + 2 + 1 + 8 + 2 + 2 + 1 + 1

// EncodeEntry encodes e as a TraceEntry message. The fixed header is
// followed by the raw instruction bytes and then the resolved mnemonic.
func EncodeEntry(e cpu.Entry) []byte {
	r := e.Registers
	msg := make([]byte, entryHeader, entryHeader+len(e.Bytes)+16)
	msg[0] = TraceEntry
	binary.LittleEndian.PutUint16(msg[1:], e.PC)
	msg[3] = e.Cycles
	copy(msg[4:12], []byte{r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L})
	binary.LittleEndian.PutUint16(msg[12:], r.SP)
	binary.LittleEndian.PutUint16(msg[14:], r.PC)
	if r.IME {
		msg[16] = 1
	}
	msg[17] = uint8(len(e.Bytes))
	msg = append(msg, e.Bytes...)
	return append(msg, e.Mnemonic()...)
}

// Frame is a decoded TraceEntry message.
type Frame struct {
	PC        uint16
	Cycles    uint8
	Bytes     []byte
	Mnemonic  string
	Registers cpu.Snapshot
}

// DecodeEntry decodes a message produced by EncodeEntry.
func DecodeEntry(msg []byte) (Frame, error) {
	if len(msg) < entryHeader || msg[0] != TraceEntry {
		return Frame{}, ErrShortMessage
	}
	n := int(msg[17])
	if len(msg) < entryHeader+n {
		return Frame{}, ErrShortMessage
	}

	f := Frame{
		PC:     binary.LittleEndian.Uint16(msg[1:]),
		Cycles: msg[3],
		Bytes:  append([]byte(nil), msg[entryHeader:entryHeader+n]...),
		Registers: cpu.Snapshot{
			A: msg[4], F: msg[5], B: msg[6], C: msg[7], D: msg[8], E: msg[9], H: msg[10], L: msg[11],
			SP:  binary.LittleEndian.Uint16(msg[12:]),
			PC:  binary.LittleEndian.Uint16(msg[14:]),
			IME: msg[16] == 1,
		},
		Mnemonic: string(msg[entryHeader+n:]),
	}
	return f, nil
}
