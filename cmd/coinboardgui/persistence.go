package main

import (
	"encoding/json"
	"os"
)

const sessionFile = "coinboard_session.json"

type sessionState struct {
	Theme     string `json:"theme"`
	Compact   bool   `json:"compact"`
	RangeDays int    `json:"rangeDays"`
}

var session sessionState

func saveSession() {
	f, err := os.Create(sessionFile)
	if err != nil {
		return
	}
	defer f.Close()
	json.NewEncoder(f).Encode(session)
}

func loadSession() {
	f, err := os.Open(sessionFile)
	if err != nil {
		return
	}
	defer f.Close()
	var st sessionState
	if err := json.NewDecoder(f).Decode(&st); err == nil {
		session = st
	}
}
