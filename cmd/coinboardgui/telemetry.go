package main

import "sync"

type TelemetryItem struct {
	Time   string `json:"time"`
	Action string `json:"action"`
	Source string `json:"source,omitempty"`
	Symbol string `json:"symbol,omitempty"`
	OK     bool   `json:"ok,omitempty"`
	Error  string `json:"error,omitempty"`
}

var (
	telemetry []TelemetryItem
	telMu     sync.Mutex
)

func telAdd(it TelemetryItem) {
	telMu.Lock()
	telemetry = append(telemetry, it)
	telMu.Unlock()
}
