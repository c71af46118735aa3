package table

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Row is the fixed three-column tuple this engine stores: a uint32
// primary key, a short username, and a longer email.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// ValidateFieldLengths reports the exact length-violation message for
// a row whose text fields exceed their fixed-width columns.
func (r Row) ValidateFieldLengths() error {
	if len(r.Username) > UsernameMaxChars || len(r.Email) > EmailMaxChars {
		return fmt.Errorf("String is too long.")
	}
	return nil
}

// SerializeRow packs r into dst, which must be exactly RowSize bytes.
func SerializeRow(r Row, dst []byte) error {
	if len(dst) != RowSize {
		return fmt.Errorf("table: SerializeRow: dst is %d bytes, want %d", len(dst), RowSize)
	}
	if err := r.ValidateFieldLengths(); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(dst[IDOffset:IDOffset+IDSize], r.ID)

	for i := range dst[UsernameOffset : UsernameOffset+UsernameSize] {
		dst[UsernameOffset+i] = 0
	}
	copy(dst[UsernameOffset:UsernameOffset+UsernameMaxChars], r.Username)

	for i := range dst[EmailOffset : EmailOffset+EmailSize] {
		dst[EmailOffset+i] = 0
	}
	copy(dst[EmailOffset:EmailOffset+EmailMaxChars], r.Email)

	return nil
}

// DeserializeRow unpacks a RowSize-byte buffer back into a Row, trimming
// the NUL padding off the text fields.
func DeserializeRow(src []byte) (Row, error) {
	if len(src) != RowSize {
		return Row{}, fmt.Errorf("table: DeserializeRow: src is %d bytes, want %d", len(src), RowSize)
	}
	id := binary.LittleEndian.Uint32(src[IDOffset : IDOffset+IDSize])
	username := trimNUL(src[UsernameOffset : UsernameOffset+UsernameSize])
	email := trimNUL(src[EmailOffset : EmailOffset+EmailSize])
	return Row{ID: id, Username: username, Email: email}, nil
}

func trimNUL(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// String renders a row the way `select` prints it: (id, username, email).
func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.Username, r.Email)
}
