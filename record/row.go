// Package record defines the fixed-width row format stored in every
// B+tree leaf cell: (id uint32, username, email), each field packed
// at a fixed offset and null-padded.
package record

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	IDSize       = 4
	UsernameSize = 33 // 32 printable bytes + terminating zero
	EmailSize    = 256 // 255 printable bytes + terminating zero

	IDOffset       = 0
	UsernameOffset = IDOffset + IDSize
	EmailOffset    = UsernameOffset + UsernameSize

	// Size is the on-disk width of a Row: 4 + 33 + 256 = 293 bytes.
	Size = IDOffset + IDSize + UsernameSize + EmailSize

	MaxUsernameLen = UsernameSize - 1
	MaxEmailLen    = EmailSize - 1
)

// Row is one (id, username, email) record.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// New validates field lengths and constructs a Row.
func New(id uint32, username, email string) (Row, error) {
	if len(username) > MaxUsernameLen {
		return Row{}, errors.New("string is too long")
	}
	if len(email) > MaxEmailLen {
		return Row{}, errors.New("string is too long")
	}
	return Row{ID: id, Username: username, Email: email}, nil
}

// Serialize writes r into dst, which must be exactly Size bytes.
func Serialize(r Row, dst []byte) {
	for i := range dst[:Size] {
		dst[i] = 0
	}
	binary.LittleEndian.PutUint32(dst[IDOffset:IDOffset+IDSize], r.ID)
	copy(dst[UsernameOffset:UsernameOffset+UsernameSize], r.Username)
	copy(dst[EmailOffset:EmailOffset+EmailSize], r.Email)
}

// Deserialize reads a Row out of src, which must be exactly Size
// bytes.
func Deserialize(src []byte) Row {
	id := binary.LittleEndian.Uint32(src[IDOffset : IDOffset+IDSize])
	username := readCString(src[UsernameOffset : UsernameOffset+UsernameSize])
	email := readCString(src[EmailOffset : EmailOffset+EmailSize])
	return Row{ID: id, Username: username, Email: email}
}

func readCString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}
