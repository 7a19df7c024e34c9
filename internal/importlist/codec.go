package importlist

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// Index file layout (all integers little-endian):
//
//	int32  version   0 or 1; anything else means "no import list"
//	int32  count
//	count records:
//	    byte    flags    version >= 1 only; bit 0 is the custom flag
//	    []byte  name     UTF-8, NUL-terminated
//
// Version 0 has no flag byte and every record is treated as non-custom.
// Encode always writes version 1.
const (
	versionLegacy int32 = 0
	versionFlags  int32 = 1

	flagCustom byte = 0x01

	headerSize = 8
)

// Decode parses an index file. The boolean result is false when the data
// does not hold a supported import list; that is absence, not an error.
//
// A name without a terminating NUL decodes as an empty string. A buffer that
// ends early yields the records read so far.
func Decode(data []byte) ([]*Entry, bool) {
	if len(data) < headerSize {
		return nil, false
	}

	version := int32(binary.LittleEndian.Uint32(data[0:4]))
	if version != versionLegacy && version != versionFlags {
		return nil, false
	}

	count := int32(binary.LittleEndian.Uint32(data[4:8]))
	if count < 0 {
		return nil, false
	}

	// Every record is at least one byte, so count cannot honestly exceed the payload.
	capacity := int(count)
	if rest := len(data) - headerSize; capacity > rest {
		capacity = rest
	}
	entries := make([]*Entry, 0, capacity)

	offset := headerSize
	for i := int32(0); i < count; i++ {
		if offset >= len(data) {
			break
		}

		custom := false
		if version >= versionFlags {
			custom = data[offset]&flagCustom != 0
			offset++
		}

		n := nameLen(data, offset)
		name := ""
		if n > 0 {
			name = string(data[offset : offset+n])
		}
		offset += n + 1

		entries = append(entries, decodeRecord(name, custom))
	}

	return entries, true
}

// nameLen returns the length of the NUL-terminated string starting at offset,
// or 0 if no terminator exists before the end of data.
func nameLen(data []byte, offset int) int {
	if offset >= len(data) {
		return 0
	}
	n := bytes.IndexByte(data[offset:], 0)
	if n < 0 {
		return 0
	}
	return n
}

// decodeRecord turns a stored name into an archived entry. A custom name is
// the full path. Otherwise the name is relative to Prefix, unless it already
// carries it.
func decodeRecord(name string, custom bool) *Entry {
	full := name
	if !custom && !strings.HasPrefix(name, Prefix) {
		full = Prefix + name
	}
	return NewArchivedEntry(full)
}

// Encode serializes the entries that are not deleted. It returns nil when no
// entry survives; callers must delete the index file instead of writing it.
func Encode(entries []*Entry) []byte {
	live := Live(entries)
	if len(live) == 0 {
		return nil
	}

	size := headerSize
	for _, e := range live {
		size += len(e.InnerPath) + 2
	}

	buf := make([]byte, 0, size)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(versionFlags))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(live)))
	for _, e := range live {
		var flags byte
		if e.Custom {
			flags = flagCustom
		}
		buf = append(buf, flags)
		buf = append(buf, e.InnerPath...)
		buf = append(buf, 0)
	}

	return buf
}
