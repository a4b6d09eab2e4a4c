package network

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/game"
)

// MessageType identifies a spectator frame
type MessageType uint8

const (
	MsgHello    MessageType = iota + 1 // First frame after connect
	MsgSnapshot                        // Periodic world state
	MsgResult                          // Final tally, sent once
)

func (t MessageType) String() string {
	switch t {
	case MsgHello:
		return "hello"
	case MsgSnapshot:
		return "snapshot"
	case MsgResult:
		return "result"
	}
	return "unknown"
}

// Version is bumped on incompatible frame changes
const Version = 1

// Message is the msgpack envelope of every binary websocket frame
type Message struct {
	Type     MessageType    `msgpack:"t"`
	Seq      uint32         `msgpack:"seq"`
	Version  int            `msgpack:"v,omitempty"`
	Seed     uint64         `msgpack:"seed,omitempty"`
	Snapshot *game.Snapshot `msgpack:"snap,omitempty"`
	Result   *engine.Result `msgpack:"result,omitempty"`
}

// Encode serializes a message
func Encode(msg *Message) ([]byte, error) {
	data, err := msgpack.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s frame", msg.Type)
	}
	return data, nil
}

// Decode parses a frame produced by Encode
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := msgpack.Unmarshal(data, &msg); err != nil {
		return nil, errors.Wrap(err, "decode frame")
	}
	if msg.Type < MsgHello || msg.Type > MsgResult {
		return nil, errors.Errorf("decode frame: unknown type %d", msg.Type)
	}
	return &msg, nil
}
