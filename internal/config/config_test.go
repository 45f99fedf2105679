package config_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2dx/j2dx/internal/config"
)

func parse(t *testing.T, stdout io.Writer, args ...string) (*config.CLI, *kong.Context) {
	t.Helper()
	var cli config.CLI
	parser, err := kong.New(&cli, kong.Writers(stdout, io.Discard), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, kctx
}

func TestDefaults(t *testing.T) {
	cli, kctx := parse(t, io.Discard, "server")
	assert.Equal(t, "server", kctx.Command())
	assert.Equal(t, "info", cli.Log.Level)
	assert.Equal(t, ":8013", cli.Server.Addr)
	assert.Equal(t, 25*time.Second, cli.Server.PingInterval)
	assert.Equal(t, 60*time.Second, cli.Server.PingTimeout)
	assert.Equal(t, "127.0.0.1:8014", cli.Server.API.Addr)
	assert.Equal(t, "/dev/uinput", cli.Server.UinputPath)
}

func TestFlagsAndEnv(t *testing.T) {
	t.Setenv("J2DX_API_ADDR", "0.0.0.0:9000")
	t.Setenv("J2DX_LOG_LEVEL", "debug")

	cli, _ := parse(t, io.Discard, "server", "--addr", ":9013", "--ping-interval", "5s")
	assert.Equal(t, ":9013", cli.Server.Addr)
	assert.Equal(t, 5*time.Second, cli.Server.PingInterval)
	assert.Equal(t, "0.0.0.0:9000", cli.Server.API.Addr)
	assert.Equal(t, "debug", cli.Log.Level)
}

func TestRejectsUnknownLogLevel(t *testing.T) {
	var cli config.CLI
	parser, err := kong.New(&cli, kong.Writers(io.Discard, io.Discard))
	require.NoError(t, err)
	_, err = parser.Parse([]string{"--log.level", "loud", "server"})
	assert.Error(t, err)
}

func TestConfigCommandPrintsEffectiveValues(t *testing.T) {
	var out bytes.Buffer
	_, kctx := parse(t, &out, "--log.level", "warn", "config", "--format", "json", "--addr", ":7000")
	kctx.Bind(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, kctx.Run())

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, ":7000", got["addr"])
	assert.Equal(t, "warn", got["log.level"])
	assert.Equal(t, "25s", got["ping-interval"])
	assert.Equal(t, "127.0.0.1:8014", got["api-addr"])
	assert.NotContains(t, got, "format")
	assert.NotContains(t, got, "help")
}
