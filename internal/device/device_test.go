package device_test

import (
	"testing"

	"github.com/icco/sheetplay/internal/device"
	"github.com/icco/sheetplay/internal/device/devicetest"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestStartup(t *testing.T) {
	rec := &devicetest.Recorder{}
	device.Startup(rec, 0, 0)

	assert.Equal(t, []devicetest.Event{
		{devicetest.KindControlChange, 0, device.CCSustain, device.PedalUp},
		{devicetest.KindProgramChange, 0, 0, 0},
	}, rec.Events())
}

func TestLoggedForwardsAndLogs(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	rec := &devicetest.Recorder{}
	out := device.Logged(rec, log)

	out.NoteOn(0, 60, 100)
	out.NoteOff(0, 60, 64)
	out.ProgramChange(0, 3)
	out.ControlChange(0, device.CCSustain, device.PedalDown)
	out.AllNotesOff(0)

	assert.Equal(t, []devicetest.Event{
		{devicetest.KindNoteOn, 0, 60, 100},
		{devicetest.KindNoteOff, 0, 60, 64},
		{devicetest.KindProgramChange, 0, 3, 0},
		{devicetest.KindControlChange, 0, device.CCSustain, device.PedalDown},
		{devicetest.KindAllNotesOff, 0, 0, 0},
	}, rec.Events())

	entries := hook.AllEntries()
	assert.Len(t, entries, 5)
	assert.Equal(t, "note on", entries[0].Message)
	assert.Equal(t, "device", entries[0].Data["component"])
}

func TestRecorderReset(t *testing.T) {
	rec := &devicetest.Recorder{}
	rec.NoteOn(0, 1, 2)
	rec.Reset()
	assert.Empty(t, rec.Events())
}
