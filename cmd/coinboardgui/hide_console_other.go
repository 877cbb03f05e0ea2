//go:build !windows

package main

func hideConsoleWindow() {}
