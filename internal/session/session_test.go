package session_test

import (
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2dx/j2dx/device"
	"github.com/j2dx/j2dx/device/ds4"
	"github.com/j2dx/j2dx/device/xbox360"
	"github.com/j2dx/j2dx/internal/session"
	j2dxTesting "github.com/j2dx/j2dx/internal/testing"
	"github.com/j2dx/j2dx/virtualpad"
)

func newRegistry(o *j2dxTesting.FakeOpener) *session.Registry {
	return session.NewRegistry(o, slog.Default())
}

func TestCreateIsIdempotent(t *testing.T) {
	o := &j2dxTesting.FakeOpener{}
	r := newRegistry(o)

	s1, err := r.Create("s1", "10.0.0.2", xbox360.Controller{})
	require.NoError(t, err)
	s2, err := r.Create("s1", "10.0.0.2", xbox360.Controller{})
	require.NoError(t, err)

	assert.Same(t, s1, s2)
	assert.Equal(t, 1, o.Opens())
	assert.Equal(t, 1, r.Len())
}

func TestDuplicateCreateKeepsFamily(t *testing.T) {
	o := &j2dxTesting.FakeOpener{}
	r := newRegistry(o)

	s1, err := r.Create("s1", "", xbox360.Controller{})
	require.NoError(t, err)
	s2, err := r.Create("s1", "", ds4.Controller{})
	require.NoError(t, err)

	assert.Same(t, s1, s2)
	assert.Equal(t, device.FamilyXbox, s2.Family())
	assert.Equal(t, 1, o.Opens())
}

func TestConcurrentCreateOpensOnce(t *testing.T) {
	o := &j2dxTesting.FakeOpener{Delay: 20 * time.Millisecond}
	r := newRegistry(o)

	const n = 16
	got := make([]*session.Session, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := r.Create("race", "", ds4.Controller{})
			assert.NoError(t, err)
			got[i] = s
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, o.Opens())
	require.Len(t, o.Pads(), 1)
	for _, s := range got {
		assert.Same(t, got[0], s)
	}
}

func TestCreateOpenFailure(t *testing.T) {
	o := &j2dxTesting.FakeOpener{OpenErr: fmt.Errorf("%w: no uinput", virtualpad.ErrDriverUnavailable)}
	r := newRegistry(o)

	_, err := r.Create("s1", "", xbox360.Controller{})
	assert.ErrorIs(t, err, virtualpad.ErrDriverUnavailable)
	_, ok := r.Get("s1")
	assert.False(t, ok)

	// a later create tries again
	o.OpenErr = nil
	_, err = r.Create("s1", "", xbox360.Controller{})
	require.NoError(t, err)
	assert.Equal(t, 2, o.Opens())
}

func TestClose(t *testing.T) {
	o := &j2dxTesting.FakeOpener{}
	r := newRegistry(o)

	s, err := r.Create("s1", "", xbox360.Controller{})
	require.NoError(t, err)

	require.NoError(t, r.Close("s1"))
	require.NoError(t, r.Close("s1"))
	require.NoError(t, r.Close("never-created"))

	_, ok := r.Get("s1")
	assert.False(t, ok)
	assert.True(t, s.Closed())
	assert.Equal(t, 1, o.Pads()[0].Closes())
	assert.Equal(t, 0, r.Len())
}

func TestCloseDuringCreate(t *testing.T) {
	o := &j2dxTesting.FakeOpener{Delay: 100 * time.Millisecond}
	r := newRegistry(o)

	errc := make(chan error, 1)
	go func() {
		_, err := r.Create("s1", "", xbox360.Controller{})
		errc <- err
	}()
	require.Eventually(t, func() bool { return o.Opens() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, r.Close("s1"))
	assert.ErrorIs(t, <-errc, session.ErrClosed)

	_, ok := r.Get("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
	require.Len(t, o.Pads(), 1)
	assert.Equal(t, 1, o.Pads()[0].Closes())

	// the id is usable again afterwards
	o.Delay = 0
	s, err := r.Create("s1", "", xbox360.Controller{})
	require.NoError(t, err)
	assert.False(t, s.Closed())
	assert.Equal(t, 2, o.Opens())
}

func TestSendAfterClose(t *testing.T) {
	o := &j2dxTesting.FakeOpener{}
	r := newRegistry(o)

	s, err := r.Create("s1", "", xbox360.Controller{})
	require.NoError(t, err)
	require.NoError(t, r.Close("s1"))

	err = s.Send(device.Event{Key: "a-button", Value: device.Bool(true)})
	assert.ErrorIs(t, err, session.ErrClosed)
	assert.Empty(t, o.Pads()[0].Writes())
}

func TestCloseAll(t *testing.T) {
	o := &j2dxTesting.FakeOpener{}
	r := newRegistry(o)
	for _, id := range []string{"a", "b", "c"} {
		_, err := r.Create(id, "", ds4.Controller{})
		require.NoError(t, err)
	}
	r.CloseAll()
	assert.Equal(t, 0, r.Len())
	for _, p := range o.Pads() {
		assert.Equal(t, 1, p.Closes())
	}
}

func TestList(t *testing.T) {
	r := newRegistry(&j2dxTesting.FakeOpener{})
	_, err := r.Create("first", "1.1.1.1", xbox360.Controller{})
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = r.Create("second", "2.2.2.2", ds4.Controller{})
	require.NoError(t, err)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].ID())
	assert.Equal(t, "1.1.1.1", list[0].Remote())
	assert.Equal(t, "second", list[1].ID())
	assert.Equal(t, device.FamilyDS4, list[1].Family())
}
