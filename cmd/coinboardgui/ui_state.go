package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Shared UI state kept as globals across the cmd files.
var (
	curTheme fyne.Theme

	logWin    fyne.Window
	logBox    *widget.Entry
	logScroll *container.Scroll

	statusLbl *widget.Label
)
