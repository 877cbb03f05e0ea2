package chart

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// rangePresets are the selectable history windows, in display order.
var rangePresets = []struct {
	label string
	days  int
}{
	{"1 day", 1},
	{"1 week", 7},
	{"1 month", 30},
	{"3 months", 90},
	{"1 year", 365},
}

// TimeRangePicker is the modal dialog for choosing the history window.
// Confirmation forwards the chosen day count to the owner's callback.
type TimeRangePicker struct {
	radio    *widget.RadioGroup
	dlg      dialog.Dialog
	onPicked func(days int)
}

func newTimeRangePicker(parent fyne.Window, onPicked func(days int)) *TimeRangePicker {
	labels := make([]string, len(rangePresets))
	for i, p := range rangePresets {
		labels[i] = p.label
	}

	p := &TimeRangePicker{onPicked: onPicked}
	p.radio = widget.NewRadioGroup(labels, func(string) {})
	p.dlg = dialog.NewCustomConfirm("Time range", "Apply", "Cancel", p.radio, p.apply, parent)
	return p
}

// apply is the dialog's confirmation callback. On confirm it maps the selected
// preset label to its day count and forwards it to the owner.
func (p *TimeRangePicker) apply(ok bool) {
	if !ok {
		return
	}
	for _, preset := range rangePresets {
		if preset.label == p.radio.Selected {
			p.onPicked(preset.days)
			return
		}
	}
}

// Show opens the dialog with the preset matching current pre-selected.
func (p *TimeRangePicker) Show(current int) {
	for _, preset := range rangePresets {
		if preset.days == current {
			p.radio.SetSelected(preset.label)
			break
		}
	}
	p.dlg.Show()
}
