package device_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2dx/j2dx/apiclient"
	"github.com/j2dx/j2dx/device"
	"github.com/j2dx/j2dx/internal/bridge"
	"github.com/j2dx/j2dx/internal/compat"
	"github.com/j2dx/j2dx/internal/server/api"
	"github.com/j2dx/j2dx/internal/server/api/handler"
	j2dxTesting "github.com/j2dx/j2dx/internal/testing"

	_ "github.com/j2dx/j2dx/internal/registry" // Register families
)

func TestDeviceAttach(t *testing.T) {
	families := device.Families()
	require.NotEmpty(t, families)

	for _, family := range families {
		t.Run(string(family), func(t *testing.T) {
			addr, b, opener, done := j2dxTesting.StartAPIServer(t, func(_ *api.Router, _ *bridge.Bridge, s *api.Server) {
				handler.RegisterAll(s)
			})
			defer done()

			ctrl, err := device.Lookup(string(family))
			require.NoError(t, err)
			profile := ctrl.Profile()

			b.OnConnect("sess-1", "192.0.2.1", compat.Version4)
			s, err := b.OnCreateController("sess-1", string(family))
			require.NoError(t, err)
			assert.Equal(t, family, s.Family())

			c := apiclient.New(addr)
			list, err := c.SessionList()
			require.NoError(t, err)
			require.Len(t, list.Sessions, 1)
			assert.Equal(t, string(family), list.Sessions[0].Family)
			assert.Equal(t, profile.Name, list.Sessions[0].Name)

			// every declared button reaches the virtual pad
			for key := range profile.Buttons {
				b.OnInput("sess-1", []json.RawMessage{json.RawMessage(`"` + key + `"`), json.RawMessage(`true`)})
			}
			pads := opener.Pads()
			require.Len(t, pads, 1)
			assert.Len(t, pads[0].Writes(), len(profile.Buttons))

			b.OnDisconnect("sess-1")
			assert.Equal(t, 1, pads[0].Closes())
			list, err = c.SessionList()
			require.NoError(t, err)
			assert.Empty(t, list.Sessions)
		})
	}
}
