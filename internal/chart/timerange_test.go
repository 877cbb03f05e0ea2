package chart

import (
	"testing"

	fynetest "fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"
)

func TestPickerForwardsSelectedPreset(t *testing.T) {
	_ = fynetest.NewApp()
	w := fynetest.NewWindow(nil)
	defer w.Close()

	var got []int
	p := newTimeRangePicker(w, func(days int) { got = append(got, days) })
	p.Show(30)
	require.Equal(t, "1 month", p.radio.Selected)

	p.radio.SetSelected("1 week")
	p.apply(true)
	require.Equal(t, []int{7}, got)
}

func TestPickerCancelForwardsNothing(t *testing.T) {
	_ = fynetest.NewApp()
	w := fynetest.NewWindow(nil)
	defer w.Close()

	var got []int
	p := newTimeRangePicker(w, func(days int) { got = append(got, days) })
	p.Show(30)
	p.radio.SetSelected("1 year")
	p.apply(false)
	require.Empty(t, got)
}

func TestPickerDrivesContainerRefresh(t *testing.T) {
	_ = fynetest.NewApp()
	w := fynetest.NewWindow(nil)
	defer w.Close()

	db := &countingDB{Database: seedStore(t, quote("BTCUSDT", "Bitcoin", 64000))}
	c := NewContainer(w, nil)
	c.SetDatabase(db)

	c.ShowTimeRangePicker()
	require.NotNil(t, c.picker)

	c.picker.radio.SetSelected("1 week")
	c.picker.apply(true)
	require.Equal(t, 7, c.TimeRange())
	require.Equal(t, 1, db.quoteCalls)

	// The picker is created once and reused.
	prev := c.picker
	c.ShowTimeRangePicker()
	require.Same(t, prev, c.picker)
}
