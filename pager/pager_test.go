package pager

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func tempDBPath(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp("", "pager_test_*.db")
	require.NoError(t, err)
	path := f.Name()
	require.NoError(t, f.Close())
	t.Cleanup(func() { os.Remove(path) })
	return path
}

func TestOpenEmptyFile(t *testing.T) {
	p, err := Open(tempDBPath(t))
	require.NoError(t, err)
	defer p.Close()

	require.Equal(t, 0, p.NumPages())
}

func TestOpenRejectsCorruptLength(t *testing.T) {
	path := tempDBPath(t)
	require.NoError(t, os.WriteFile(path, make([]byte, PageSize+1), 0600))

	_, err := Open(path)
	require.Error(t, err)
}

func TestGetPageExtendsNumPages(t *testing.T) {
	p, err := Open(tempDBPath(t))
	require.NoError(t, err)
	defer p.Close()

	pg, err := p.GetPage(0)
	require.NoError(t, err)
	require.NotNil(t, pg)
	require.Equal(t, 1, p.NumPages())

	_, err = p.GetPage(3)
	require.NoError(t, err)
	require.Equal(t, 4, p.NumPages())
}

func TestGetPageOutOfBounds(t *testing.T) {
	p, err := Open(tempDBPath(t))
	require.NoError(t, err)
	defer p.Close()

	_, err = p.GetPage(TableMaxPages)
	require.Error(t, err)
}

func TestAllocatePageThenGetPage(t *testing.T) {
	p, err := Open(tempDBPath(t))
	require.NoError(t, err)
	defer p.Close()

	n := p.AllocatePage()
	require.Equal(t, uint32(0), n)

	pg, err := p.GetPage(n)
	require.NoError(t, err)
	pg.Data[0] = 0xAB

	n2 := p.AllocatePage()
	require.Equal(t, uint32(1), n2)
}

func TestFlushAndReopenRoundTrips(t *testing.T) {
	path := tempDBPath(t)

	p, err := Open(path)
	require.NoError(t, err)
	pg, err := p.GetPage(0)
	require.NoError(t, err)
	pg.Data[0] = 42
	pg.Data[PageSize-1] = 7
	require.NoError(t, p.Close())

	p2, err := Open(path)
	require.NoError(t, err)
	defer p2.Close()
	require.Equal(t, 1, p2.NumPages())

	pg2, err := p2.GetPage(0)
	require.NoError(t, err)
	require.Equal(t, byte(42), pg2.Data[0])
	require.Equal(t, byte(7), pg2.Data[PageSize-1])
}

func TestPartialTrailingPageIsPaddedWithZeros(t *testing.T) {
	path := tempDBPath(t)
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0600))

	// Open rejects a file whose length is not a multiple of PageSize, so
	// the pager is built directly over the 3-byte file.
	_, err := Open(path)
	require.Error(t, err)
	f, err := os.OpenFile(path, os.O_RDWR, 0600)
	require.NoError(t, err)
	p := &Pager{file: f, numPages: 1}
	defer p.Close()

	pg, err := p.GetPage(0)
	require.NoError(t, err)
	require.Equal(t, byte(1), pg.Data[0])
	require.Equal(t, byte(0), pg.Data[PageSize-1])
}
