package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	r := Row{ID: 7, Username: "jules", Email: "jules@example.com"}
	buf := make([]byte, RowSize)
	require.NoError(t, SerializeRow(r, buf))

	got, err := DeserializeRow(buf)
	require.NoError(t, err)
	require.Equal(t, r, got)
}

func TestSerializeRejectsWrongSizeBuffer(t *testing.T) {
	err := SerializeRow(Row{ID: 1, Username: "a", Email: "b"}, make([]byte, RowSize-1))
	require.Error(t, err)
}

func TestMaxLengthFieldsRoundTrip(t *testing.T) {
	r := Row{
		ID:       1,
		Username: strings.Repeat("u", UsernameMaxChars),
		Email:    strings.Repeat("e", EmailMaxChars),
	}
	buf := make([]byte, RowSize)
	require.NoError(t, SerializeRow(r, buf))

	got, err := DeserializeRow(buf)
	require.NoError(t, err)
	require.Equal(t, r, got)
}

func TestOverLengthFieldsRejected(t *testing.T) {
	buf := make([]byte, RowSize)

	err := SerializeRow(Row{ID: 1, Username: strings.Repeat("u", UsernameMaxChars+1), Email: "e"}, buf)
	require.Error(t, err)

	err = SerializeRow(Row{ID: 1, Username: "u", Email: strings.Repeat("e", EmailMaxChars+1)}, buf)
	require.Error(t, err)
}

func TestRowSizeIs293(t *testing.T) {
	require.Equal(t, 293, RowSize)
}
