package compat_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2dx/j2dx/device"
	"github.com/j2dx/j2dx/internal/compat"
)

func rawArgs(t *testing.T, frame string) []json.RawMessage {
	t.Helper()
	var args []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(frame), &args))
	return args
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		args    string
		key     string
		value   device.Value
		wantErr bool
	}{
		{name: "structured button", args: `[{"key":"a-button","value":true}]`, key: "a-button", value: device.Bool(true)},
		{name: "structured float", args: `[{"key":"left-stick-X","value":-0.5}]`, key: "left-stick-X", value: device.Float(-0.5)},
		{name: "structured keeps integer", args: `[{"value":200,"key":"right-trigger"}]`, key: "right-trigger", value: device.Int(200)},
		{name: "structured extra fields", args: `[{"key":"b-button","value":false,"ts":12}]`, key: "b-button", value: device.Bool(false)},
		{name: "positional", args: `["a-button", true]`, key: "a-button", value: device.Bool(true)},
		{name: "positional float", args: `["right-stick-Y", 1.0]`, key: "right-stick-Y", value: device.Float(1)},
		{name: "positional extra args ignored", args: `["x-button", true, "ack"]`, key: "x-button", value: device.Bool(true)},
		{name: "object plus extra args is not structured", args: `[{"key":"a-button","value":true}, "ignored"]`, wantErr: true},
		{name: "missing value", args: `[{"key":"a-button"}]`, wantErr: true},
		{name: "missing key", args: `[{"value":true}]`, wantErr: true},
		{name: "single string", args: `["a-button"]`, wantErr: true},
		{name: "no args", args: `[]`, wantErr: true},
		{name: "key not a string", args: `[1, true]`, wantErr: true},
		{name: "value is a string", args: `["a-button", "yes"]`, wantErr: true},
		{name: "null value", args: `[{"key":"a-button","value":null}]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := compat.Normalize(rawArgs(t, tt.args))
			if tt.wantErr {
				assert.ErrorIs(t, err, compat.ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, ev.Key)
			assert.Equal(t, tt.value, ev.Value)
		})
	}
}

func TestDetectVersion(t *testing.T) {
	tests := []struct {
		query string
		want  compat.Version
	}{
		{query: "EIO=3&transport=websocket", want: compat.Version3},
		{query: "?EIO=4&transport=websocket", want: compat.Version4},
		{query: "transport=websocket&EIO=4&t=abc", want: compat.Version4},
		{query: "EIO=5", want: compat.VersionUnknown},
		{query: "", want: compat.VersionUnknown},
		{query: "EIO=3;%zz", want: compat.Version3},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, compat.DetectVersion(tt.query))
		})
	}
}
