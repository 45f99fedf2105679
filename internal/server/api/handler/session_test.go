package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2dx/j2dx/apiclient"
	"github.com/j2dx/j2dx/internal/bridge"
	"github.com/j2dx/j2dx/internal/compat"
	"github.com/j2dx/j2dx/internal/server/api"
	"github.com/j2dx/j2dx/internal/server/api/handler"
	handlerTest "github.com/j2dx/j2dx/internal/testing"

	_ "github.com/j2dx/j2dx/internal/registry"
)

func startFull(t *testing.T) (*apiclient.Client, *bridge.Bridge, *handlerTest.FakeOpener, func()) {
	t.Helper()
	addr, b, o, done := handlerTest.StartAPIServer(t, func(_ *api.Router, _ *bridge.Bridge, s *api.Server) {
		handler.RegisterAll(s)
	})
	return apiclient.New(addr), b, o, done
}

func TestFamilies(t *testing.T) {
	c, _, _, done := startFull(t)
	defer done()

	out, err := c.Families()
	require.NoError(t, err)
	assert.Equal(t, []string{"ds4", "xbox"}, out.Families)
}

func TestSessionList(t *testing.T) {
	c, b, _, done := startFull(t)
	defer done()

	out, err := c.SessionList()
	require.NoError(t, err)
	assert.Empty(t, out.Sessions)

	b.OnConnect("s1", "10.1.1.1", compat.Version4)
	_, err = b.OnCreateController("s1", "ds4")
	require.NoError(t, err)

	out, err = c.SessionList()
	require.NoError(t, err)
	require.Len(t, out.Sessions, 1)
	s := out.Sessions[0]
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, "10.1.1.1", s.Remote)
	assert.Equal(t, "ds4", s.Family)
	assert.Equal(t, "Sony Computer Entertainment Wireless Controller", s.Name)
}

func TestSessionClose(t *testing.T) {
	tests := []struct {
		name    string
		create  string
		closeID string
		wantErr string
	}{
		{name: "close existing", create: "AbC123", closeID: "AbC123"},
		{name: "unknown session", closeID: "missing", wantErr: "session not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, b, o, done := startFull(t)
			defer done()

			if tt.create != "" {
				b.OnConnect(tt.create, "", compat.Version4)
				_, err := b.OnCreateController(tt.create, "xbox")
				require.NoError(t, err)
			}

			out, err := c.SessionClose(tt.closeID)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.closeID, out.ID)
			assert.Equal(t, 1, o.Pads()[0].Closes())
			assert.Equal(t, 0, b.Registry().Len())
		})
	}
}

func TestUnknownPath(t *testing.T) {
	addr, _, _, done := handlerTest.StartAPIServer(t, nil)
	defer done()
	assert.Equal(t, `{"error":"unknown path"}`, handlerTest.ExecCmd(t, addr, "bus/list"))
}
