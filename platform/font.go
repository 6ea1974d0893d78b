package platform

import (
	"errors"
	"sync/atomic"
)

// Sentinel errors for platform package.
var (
	// ErrFrameClosed is returned when a borrowed font is extended after its
	// frame has been closed.
	ErrFrameClosed = errors.New("platform: frame is closed")

	// ErrNilFont is returned when a nil font is borrowed or extended.
	ErrNilFont = errors.New("platform: nil font")

	// ErrInvalidRange is returned when a range falls outside a string.
	ErrInvalidRange = errors.New("platform: range out of bounds")
)

// Font is a reference-counted platform font at a fixed size.
//
// Retain adds a reference and Release drops one. Once the count reaches
// zero the font must not be used again.
type Font interface {
	// PostScriptName returns the canonical font name.
	PostScriptName() (string, error)

	// Size returns the font size in points.
	Size() float64

	Retain()
	Release()
}

// Lease tracks whether the container a BorrowedFont came from is still
// alive. Layout services create one lease per Frame and end it on Close.
type Lease struct {
	closed atomic.Bool
}

// NewLease returns an open lease.
func NewLease() *Lease {
	return &Lease{}
}

// End marks the lease as finished. Views borrowed under it can no longer
// be extended.
func (l *Lease) End() {
	l.closed.Store(true)
}

// Open reports whether the lease has not ended.
func (l *Lease) Open() bool {
	return l != nil && !l.closed.Load()
}

// BorrowedFont is a font view owned by a Frame.
// It does not hold a reference of its own.
type BorrowedFont struct {
	font  Font
	lease *Lease
}

// Borrow wraps f as a view valid for the lifetime of lease.
func Borrow(f Font, lease *Lease) BorrowedFont {
	return BorrowedFont{font: f, lease: lease}
}

// Valid reports whether the view still points at a live font.
func (b BorrowedFont) Valid() bool {
	return b.font != nil && b.lease.Open()
}

// Extend acquires an extra reference to the font so it outlives the frame.
func (b BorrowedFont) Extend() (*OwnedFont, error) {
	if b.font == nil {
		return nil, ErrNilFont
	}
	if !b.lease.Open() {
		return nil, ErrFrameClosed
	}
	b.font.Retain()
	return Adopt(b.font), nil
}

// OwnedFont is an independently counted reference to a Font.
// OwnedFont must not be copied after creation.
type OwnedFont struct {
	font     Font
	released atomic.Bool
}

// Adopt takes over one existing reference to f, such as the one returned
// by Service.SystemFont. Adopt does not retain f.
func Adopt(f Font) *OwnedFont {
	if f == nil {
		return nil
	}
	return &OwnedFont{font: f}
}

// Font returns the underlying font, or nil once the reference has been
// released.
func (o *OwnedFont) Font() Font {
	if o == nil || o.released.Load() {
		return nil
	}
	return o.font
}

// PostScriptName returns the name of the owned font.
func (o *OwnedFont) PostScriptName() (string, error) {
	f := o.Font()
	if f == nil {
		return "", ErrNilFont
	}
	return f.PostScriptName()
}

// Released reports whether Release has been called.
func (o *OwnedFont) Released() bool {
	return o == nil || o.released.Load()
}

// Release drops the reference. Only the first call has an effect, so it is
// safe to both defer Release and call it early.
func (o *OwnedFont) Release() {
	if o == nil || o.released.Swap(true) {
		return
	}
	o.font.Release()
}
