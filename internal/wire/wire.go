// Package wire fixes the request/reply framing spoken between the remote
// client and the storage server. The format is externally defined and must
// not change: a one-character namespace tag and a comma prefix the key; a
// reply is either the literal [] or a 5-byte header followed by the stored
// bytes. The client skips the header without interpreting it.
package wire

import (
	"bytes"
	"encoding/binary"

	"vstore/internal/storage"
)

// NotFoundReply is the whole-reply marker for an absent key.
var NotFoundReply = []byte("[]")

// HeaderLen is the fixed reply header length preceding the payload.
const HeaderLen = 5

// Request frames a lookup: t,<key> for tickets, i,<key> otherwise (az reads
// go through the individuals tag).
func Request(id storage.ID, key string) []byte {
	tag := byte('i')
	if id == storage.Tickets {
		tag = 't'
	}
	msg := make([]byte, 0, len(key)+2)
	msg = append(msg, tag, ',')
	return append(msg, key...)
}

// ParseRequest splits a framed lookup back into namespace and key.
func ParseRequest(msg []byte) (storage.ID, string, bool) {
	if len(msg) < 2 || msg[1] != ',' {
		return storage.Individuals, "", false
	}
	switch msg[0] {
	case 'i':
		return storage.Individuals, string(msg[2:]), true
	case 't':
		return storage.Tickets, string(msg[2:]), true
	}
	return storage.Individuals, "", false
}

// Reply prefixes payload with the fixed header: a version byte and the
// payload length, little-endian.
func Reply(payload []byte) []byte {
	out := make([]byte, HeaderLen+len(payload))
	out[0] = 1
	binary.LittleEndian.PutUint32(out[1:HeaderLen], uint32(len(payload)))
	copy(out[HeaderLen:], payload)
	return out
}

// IsNotFound reports whether a reply is the absent-key marker.
func IsNotFound(reply []byte) bool {
	return bytes.Equal(reply, NotFoundReply)
}
