package testing

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/j2dx/j2dx/internal/bridge"
	"github.com/j2dx/j2dx/internal/server/api"
	"github.com/j2dx/j2dx/internal/session"
)

// StartAPIServer starts an API server on a free port over a bridge backed by
// a FakeOpener, and calls register so the test can add the handlers it needs.
// Returns the address, the bridge, the opener and a function to call when
// done.
func StartAPIServer(t *testing.T, register func(r *api.Router, b *bridge.Bridge, apiSrv *api.Server)) (addr string, b *bridge.Bridge, opener *FakeOpener, done func()) {
	t.Helper()
	opener = &FakeOpener{}
	b = bridge.New(session.NewRegistry(opener, slog.Default()), slog.Default())

	apiSrv := api.New(b, "127.0.0.1:0", api.ServerConfig{}, slog.Default())
	if register != nil {
		register(apiSrv.Router(), b, apiSrv)
	}
	if err := apiSrv.Start(); err != nil {
		t.Fatalf("api start failed: %v", err)
	}
	return apiSrv.Addr(), b, opener, apiSrv.Close
}

// ExecCmd dials the API server, sends cmd and returns the response line
// without the trailing newline. Client errors call t.Fatalf.
func ExecCmd(t *testing.T, addr string, cmd string) string {
	t.Helper()
	c, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer c.Close()
	_, _ = fmt.Fprintf(c, "%s\n", cmd)
	line, err := bufio.NewReader(c).ReadString('\n')
	if err != nil && err != io.EOF {
		t.Fatalf("read failed: %v", err)
	}
	if len(line) == 0 {
		return ""
	}
	return line[:len(line)-1]
}
