package apitypes

import "time"

// Shared API response structs used by both handlers and clients.

type ApiError struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

type FamiliesResponse struct {
	Families []string `json:"families"`
}

type Session struct {
	ID      string    `json:"id"`
	Remote  string    `json:"remote"`
	Family  string    `json:"family"`
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
	Events  uint64    `json:"events"`
}

type SessionListResponse struct {
	Sessions []Session `json:"sessions"`
}

type SessionCloseResponse struct {
	ID string `json:"id"`
}
