package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/icco/sheetplay/internal/config"
	"github.com/icco/sheetplay/internal/device"
	"github.com/icco/sheetplay/internal/input"
	"github.com/icco/sheetplay/internal/live"
	"github.com/icco/sheetplay/internal/scope"
	"github.com/icco/sheetplay/internal/tui"
	"github.com/sirupsen/logrus"
)

func runLive(ctx context.Context, cfg *config.Config, out device.Output, log logrus.FieldLogger) error {
	table := live.NewTable(live.DefaultBindings)
	kb := input.NewKeyboard(table.Keys())
	repeat := input.NewRepeater(kb, cfg.Input.ReleaseAfter)

	// MIDI input only starts once the table exists, so no event can arrive
	// for a key the keyboard doesn't know yet.
	if cfg.Input.MIDIPort != "" {
		stopMIDI, err := input.ListenMIDI(cfg.Input.MIDIPort, kb, table.Pitches())
		if err != nil {
			return err
		}
		defer stopMIDI()
		log.WithField("port", cfg.Input.MIDIPort).Info("listening for MIDI keyboard")
	}

	opts := live.Options{
		VelocityOn:  cfg.Velocity.On,
		VelocityOff: cfg.Velocity.Off,
		Log:         log,
	}

	if flags.headless {
		if cfg.Input.MIDIPort == "" {
			log.Warn("headless live mode without --midi-in has no key source")
		}
		return live.New(table, kb, out, scope.Discard, opts).Run(ctx)
	}

	p := tea.NewProgram(tui.New(tui.ModeLive, repeat.Press), tea.WithAltScreen())
	engine := live.New(table, kb, out, tui.NewScreen(p), opts)
	stopQuit := context.AfterFunc(ctx, p.Quit)
	defer stopQuit()

	var runErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		runErr = engine.Run(ctx)
		p.Send(tui.DoneMsg{Err: runErr})
	}()

	_, err := p.Run()
	kb.Cancel()
	<-done
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return runErr
}
