// Package pager implements the on-disk page cache backing the B+tree
// storage engine: a single file, read lazily in fixed 4096-byte pages,
// flushed to disk on close.
package pager

import (
	"fmt"
	"io"
	"os"
)

const (
	// PageSize is the fixed size, in bytes, of every page in the file.
	PageSize = 4096
	// TableMaxPages bounds the page cache (and therefore the database,
	// since pages are never evicted): 100 pages * 4096 bytes = 400 KiB.
	TableMaxPages = 100
)

// Page is a single fixed-size cached buffer.
type Page struct {
	Data [PageSize]byte
}

// Pager owns the backing file descriptor and the page cache. It never
// evicts a cached page and never shrinks the file; pages are written
// back to disk only at Close.
type Pager struct {
	file     *os.File
	pages    [TableMaxPages]*Page
	numPages int
}

// Open opens path for read/write, creating it if it does not exist, and
// takes the page count from the file's current length; the cache starts
// empty and pages are read on first GetPage. A file whose length
// is not a whole multiple of PageSize is rejected as corrupt.
func Open(path string) (*Pager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("pager: open %s: %w", path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pager: stat %s: %w", path, err)
	}
	size := fi.Size()
	if size%PageSize != 0 {
		f.Close()
		return nil, fmt.Errorf("pager: %s is corrupt: file length %d is not a multiple of page size %d", path, size, PageSize)
	}
	return &Pager{
		file:     f,
		numPages: int(size / PageSize),
	}, nil
}

// NumPages reports how many pages the database currently spans.
func (p *Pager) NumPages() int { return p.numPages }

// GetPage returns the cached page, loading it from disk on first
// access. Reading beyond the file's current extent (but within
// TableMaxPages) yields a freshly zeroed page and extends NumPages.
func (p *Pager) GetPage(pageNum uint32) (*Page, error) {
	if pageNum >= TableMaxPages {
		return nil, fmt.Errorf("pager: page number %d out of bounds (max %d)", pageNum, TableMaxPages-1)
	}
	if p.pages[pageNum] == nil {
		pg := &Page{}
		if int(pageNum) < p.numPages {
			if err := p.readPage(pageNum, pg); err != nil {
				return nil, err
			}
		}
		p.pages[pageNum] = pg
		if int(pageNum) >= p.numPages {
			p.numPages = int(pageNum) + 1
		}
	}
	return p.pages[pageNum], nil
}

// readPage reads one page's worth of bytes from disk into pg, tolerating
// a final partial page (the remainder is left zeroed, as it already is
// in a freshly allocated Page).
func (p *Pager) readPage(pageNum uint32, pg *Page) error {
	off := int64(pageNum) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("pager: seek page %d: %w", pageNum, err)
	}
	_, err := io.ReadFull(p.file, pg.Data[:])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fmt.Errorf("pager: read page %d: %w", pageNum, err)
	}
	return nil
}

// AllocatePage hands out the next untouched page number. The caller is
// expected to call GetPage on it to materialize the cache slot.
func (p *Pager) AllocatePage() uint32 {
	return uint32(p.numPages)
}

// FlushPage writes a cached page's full contents back to disk. The page
// must already be in cache.
func (p *Pager) FlushPage(pageNum uint32) error {
	pg := p.pages[pageNum]
	if pg == nil {
		return fmt.Errorf("pager: flush of uncached page %d", pageNum)
	}
	off := int64(pageNum) * PageSize
	if _, err := p.file.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("pager: seek page %d: %w", pageNum, err)
	}
	if _, err := p.file.Write(pg.Data[:]); err != nil {
		return fmt.Errorf("pager: write page %d: %w", pageNum, err)
	}
	return nil
}

// Close flushes every cached page and closes the file descriptor.
func (p *Pager) Close() error {
	for i := 0; i < p.numPages; i++ {
		if p.pages[i] == nil {
			continue
		}
		if err := p.FlushPage(uint32(i)); err != nil {
			return err
		}
		p.pages[i] = nil
	}
	return p.file.Close()
}
