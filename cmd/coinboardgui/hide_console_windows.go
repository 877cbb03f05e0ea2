//go:build windows

package main

import "syscall"

const swHide = 0

// hideConsoleWindow hides the console that Windows attaches to binaries not
// built with -H=windowsgui.
func hideConsoleWindow() {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	hwnd, _, _ := kernel32.NewProc("GetConsoleWindow").Call()
	if hwnd == 0 {
		return
	}
	user32 := syscall.NewLazyDLL("user32.dll")
	user32.NewProc("ShowWindow").Call(hwnd, swHide)
}
