// Package pager implements the demand-paged block file backing the
// B+tree index: page indices map one-to-one onto PageSize-byte offsets
// in a single backing file, with a fixed-capacity write-back cache and
// no eviction.
package pager

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

const (
	// PageSize is the size in bytes of every page and therefore of
	// every B+tree node.
	PageSize = 4096

	// TableMaxPages bounds the page cache: page indices must satisfy
	// i < TableMaxPages.
	TableMaxPages = 100
)

// Page is the in-memory buffer for one on-disk page. Dirty tracks
// whether it has been written to since it was last flushed.
type Page struct {
	Data  [PageSize]byte
	Dirty bool
}

// Pager owns the backing file descriptor and the fixed-capacity table
// of cached pages. NumPages is the logical page count: the highest
// page index ever referenced, plus one. diskPages is the page count
// that actually existed on disk when the file was opened (REDESIGN:
// kept separate from NumPages, which also grows when a page beyond
// EOF is merely referenced — see DESIGN.md).
type Pager struct {
	file      *os.File
	pages     [TableMaxPages]*Page
	NumPages  uint32
	diskPages uint32
}

// Open opens or creates the file at path. It fails fatally if the
// file's length is not a multiple of PageSize, since that indicates a
// corrupted store.
func Open(path string) (*Pager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, errors.Wrapf(err, "pager: open %s", path)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "pager: stat %s", path)
	}
	fileLength := fi.Size()
	if fileLength%PageSize != 0 {
		f.Close()
		return nil, errors.Errorf("pager: corrupt file: length %d is not a multiple of page size %d", fileLength, PageSize)
	}
	numPages := uint32(fileLength / PageSize)
	return &Pager{
		file:      f,
		NumPages:  numPages,
		diskPages: numPages,
	}, nil
}

// GetPage returns the buffer for page i, reading it from disk on
// first reference if it falls within the on-disk range, or handing
// back a freshly zeroed buffer otherwise. It fails fatally if i is
// out of the fixed page-table capacity or the disk read fails.
func (p *Pager) GetPage(i uint32) (*Page, error) {
	if i >= TableMaxPages {
		return nil, errors.Errorf("pager: page index %d exceeds max pages %d", i, TableMaxPages)
	}
	if p.pages[i] == nil {
		page := &Page{}
		if i < p.diskPages {
			if err := p.readPage(i, page); err != nil {
				return nil, err
			}
		}
		p.pages[i] = page
	}
	if i+1 > p.NumPages {
		p.NumPages = i + 1
	}
	return p.pages[i], nil
}

// AllocatePage returns the next free page index. It has no side
// effect on the cache; the caller must subsequently call GetPage to
// materialize a buffer for it.
func (p *Pager) AllocatePage() uint32 {
	return p.NumPages
}

// Flush writes the full page buffer for i to its file offset. It
// fails fatally if the slot has never been materialized.
func (p *Pager) Flush(i uint32) error {
	page := p.pages[i]
	if page == nil {
		return errors.Errorf("pager: flush of unmaterialized page %d", i)
	}
	if _, err := p.file.WriteAt(page.Data[:], int64(i)*PageSize); err != nil {
		return errors.Wrapf(err, "pager: write page %d", i)
	}
	page.Dirty = false
	return nil
}

// Close flushes every materialized page and closes the file.
func (p *Pager) Close() error {
	for i := uint32(0); i < p.NumPages; i++ {
		if p.pages[i] == nil {
			continue
		}
		if err := p.Flush(i); err != nil {
			return err
		}
	}
	return errors.Wrap(p.file.Close(), "pager: close")
}

func (p *Pager) readPage(i uint32, page *Page) error {
	if _, err := p.file.ReadAt(page.Data[:], int64(i)*PageSize); err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return errors.Wrapf(err, "pager: read page %d", i)
	}
	return nil
}
