package ws

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/j2dx/j2dx/internal/compat"
)

// Engine.IO packet types.
const (
	eioOpen    = '0'
	eioClose   = '1'
	eioPing    = '2'
	eioPong    = '3'
	eioMessage = '4'
)

// Socket.IO packet types, carried inside Engine.IO messages.
const (
	sioConnect    = '0'
	sioDisconnect = '1'
	sioEvent      = '2'
)

// framing converts between text frames on the wire and bare event arrays.
// Plain clients (/ws) send the arrays directly. Socket.IO clients
// (/socket.io/, websocket transport only) wrap them in Engine.IO and
// Socket.IO packets and need the open handshake and heartbeats.
type framing struct {
	version compat.Version // VersionUnknown for plain framing
}

func (f framing) socketIO() bool { return f.version != compat.VersionUnknown }

// open is the Engine.IO handshake sent right after the upgrade.
func (f framing) open(sid string, cfg ServerConfig) [][]byte {
	if !f.socketIO() {
		return nil
	}
	hs, _ := json.Marshal(map[string]any{
		"sid":          sid,
		"upgrades":     []string{},
		"pingInterval": cfg.PingInterval.Milliseconds(),
		"pingTimeout":  cfg.PingTimeout.Milliseconds(),
		"maxPayload":   cfg.MaxMessageSize,
	})
	out := [][]byte{append([]byte{eioOpen}, hs...)}
	if f.version == compat.Version3 {
		// EIO=3 clients are connected to the default namespace implicitly
		out = append(out, []byte{eioMessage, sioConnect})
	}
	return out
}

// decode returns the event array carried by msg, if any, and the frames to
// send back in reply. closed reports a client initiated disconnect.
func (f framing) decode(sid string, msg []byte) (event []byte, replies [][]byte, closed bool) {
	if !f.socketIO() {
		return msg, nil, false
	}
	if len(msg) == 0 {
		return nil, nil, false
	}
	switch msg[0] {
	case eioPing:
		return nil, [][]byte{append([]byte{eioPong}, msg[1:]...)}, false
	case eioClose:
		return nil, nil, true
	case eioMessage:
	default:
		return nil, nil, false
	}
	if len(msg) < 2 {
		return nil, nil, false
	}
	switch msg[1] {
	case sioConnect:
		reply := []byte{eioMessage, sioConnect}
		if f.version != compat.Version3 {
			b, _ := json.Marshal(map[string]string{"sid": sid})
			reply = append(reply, b...)
		}
		return nil, [][]byte{reply}, false
	case sioDisconnect:
		return nil, nil, true
	case sioEvent:
		// optional "/namespace," and ack id precede the array
		if i := bytes.IndexByte(msg, '['); i >= 0 {
			return msg[i:], nil, false
		}
	}
	return nil, nil, false
}

// encode wraps an event array for the wire.
func (f framing) encode(event []byte) []byte {
	if !f.socketIO() {
		return event
	}
	return append([]byte{eioMessage, sioEvent}, event...)
}

// heartbeat is the text ping the server sends each interval; only EIO=4
// clients expect server initiated pings.
func (f framing) heartbeat() []byte {
	if f.version == compat.Version4 {
		return []byte{eioPing}
	}
	return nil
}

// framingFor picks the framing for an upgrade request, or reports a
// Socket.IO request for a transport other than websocket.
func framingFor(path, rawQuery string) (framing, bool) {
	if !strings.HasPrefix(path, "/socket.io") {
		return framing{}, true
	}
	if !strings.Contains(rawQuery, "transport=websocket") {
		return framing{}, false
	}
	v := compat.DetectVersion(rawQuery)
	if v == compat.VersionUnknown {
		v = compat.Version4
	}
	return framing{version: v}, true
}
