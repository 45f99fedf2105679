package testing

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/j2dx/j2dx/device"
	"github.com/j2dx/j2dx/virtualpad"
)

// Write is one call recorded by a FakePad.
type Write struct {
	Op    string // "button", "axis" or "hat"
	Code  device.Code
	Value int32
}

// FakeOpener is a virtualpad.Opener that records every open and hands out
// FakePads. Set OpenErr to make every open fail, Delay to widen race windows.
type FakeOpener struct {
	OpenErr  error
	WriteErr error
	Delay    time.Duration

	opens atomic.Int32
	mu    sync.Mutex
	pads  []*FakePad
}

func (o *FakeOpener) Open(p *device.Profile) (virtualpad.Pad, error) {
	o.opens.Add(1)
	if o.Delay > 0 {
		time.Sleep(o.Delay)
	}
	if o.OpenErr != nil {
		return nil, o.OpenErr
	}
	pad := &FakePad{Profile: p, writeErr: o.WriteErr}
	o.mu.Lock()
	o.pads = append(o.pads, pad)
	o.mu.Unlock()
	return pad, nil
}

// Opens is the number of Open calls, successful or not.
func (o *FakeOpener) Opens() int { return int(o.opens.Load()) }

// Pads returns the pads opened so far.
func (o *FakeOpener) Pads() []*FakePad {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]*FakePad, len(o.pads))
	copy(out, o.pads)
	return out
}

// FakePad records writes and closes.
type FakePad struct {
	Profile *device.Profile

	mu       sync.Mutex
	writes   []Write
	closes   int
	writeErr error
	inWrite  atomic.Int32
	overlaps atomic.Int32
}

// ErrFakeWrite is returned by FailWrites pads.
var ErrFakeWrite = errors.New("fake write failure")

// FailWrites makes subsequent writes fail (err may be nil to use ErrFakeWrite).
func (p *FakePad) FailWrites(err error) {
	if err == nil {
		err = ErrFakeWrite
	}
	p.mu.Lock()
	p.writeErr = err
	p.mu.Unlock()
}

func (p *FakePad) WriteButton(code device.Code, pressed bool) error {
	var v int32
	if pressed {
		v = 1
	}
	return p.record("button", code, v)
}

func (p *FakePad) WriteAxis(code device.Code, value int32) error {
	return p.record("axis", code, value)
}

func (p *FakePad) WriteHat(code device.Code, value int32) error {
	return p.record("hat", code, value)
}

func (p *FakePad) record(op string, code device.Code, value int32) error {
	if p.inWrite.Add(1) > 1 {
		p.overlaps.Add(1)
	}
	defer p.inWrite.Add(-1)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closes > 0 {
		return virtualpad.ErrClosed
	}
	if p.writeErr != nil {
		return fmt.Errorf("%s %#x: %w", op, code, p.writeErr)
	}
	p.writes = append(p.writes, Write{Op: op, Code: code, Value: value})
	return nil
}

func (p *FakePad) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closes++
	return nil
}

// Writes returns the successful writes in order.
func (p *FakePad) Writes() []Write {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Write, len(p.writes))
	copy(out, p.writes)
	return out
}

// Closes is the number of Close calls.
func (p *FakePad) Closes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closes
}

// Overlaps counts writes that started while another write was in progress.
func (p *FakePad) Overlaps() int { return int(p.overlaps.Load()) }
