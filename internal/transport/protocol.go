// Package transport carries the playback protocol over websockets: the
// controller's init/events/jump requests travel to a session host, which
// answers with snappy-compressed event bundles.
package transport

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/golang/snappy"

	"stellarsiege/client/internal/battle"
	"stellarsiege/client/internal/instructionlist"
)

// Request types understood by the event service.
const (
	MessageInit   = "init"
	MessageEvents = "events"
	MessageJump   = "jump"
)

// ClientMessage is one request from the viewer.
type ClientMessage struct {
	Type  string      `json:"type"`
	Index int         `json:"index,omitempty"`
	Time  battle.Time `json:"time,omitempty"`
}

// ServerMessage is one reply from the session host. The payload is the
// binary instruction list, snappy-compressed and base64-encoded.
type ServerMessage struct {
	Type       string `json:"type"`
	Session    string `json:"session,omitempty"`
	Seq        uint64 `json:"seq"`
	Finish     bool   `json:"finish"`
	PayloadB64 string `json:"payload_b64,omitempty"`
}

// encodeBundle packs an instruction list for transport.
func encodeBundle(list *instructionlist.StringInstructionList) (string, error) {
	var buf bytes.Buffer
	if err := list.Encode(&buf); err != nil {
		return "", err
	}
	compressed := snappy.Encode(nil, buf.Bytes())
	return base64.StdEncoding.EncodeToString(compressed), nil
}

// decodeBundle is the inverse of encodeBundle.
func decodeBundle(payload string) (*instructionlist.StringInstructionList, error) {
	compressed, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress bundle: %w", err)
	}
	var list instructionlist.StringInstructionList
	if err := list.Decode(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	return &list, nil
}
