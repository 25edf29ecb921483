package cmd

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/icco/sheetplay/internal/config"
	"github.com/icco/sheetplay/internal/device"
	"github.com/icco/sheetplay/internal/input"
	"github.com/icco/sheetplay/internal/player"
	"github.com/icco/sheetplay/internal/scope"
	"github.com/icco/sheetplay/internal/tui"
	"github.com/sirupsen/logrus"
)

func runPlay(ctx context.Context, cfg *config.Config, out device.Output, log logrus.FieldLogger, name string, sheet io.Reader) error {
	kb := input.NewKeyboard(nil)
	opts := player.Options{
		VelocityOn:  cfg.Velocity.On,
		VelocityOff: cfg.Velocity.Off,
		Log:         log,
	}

	if flags.headless {
		err := player.New(out, scope.Discard, kb, opts).Play(ctx, name, sheet)
		if err != nil {
			return err
		}
		fmt.Println("Done.")
		return nil
	}

	p := tea.NewProgram(tui.New(tui.ModePlay, kb.Press), tea.WithAltScreen())
	pl := player.New(out, tui.NewScreen(p), kb, opts)
	stopQuit := context.AfterFunc(ctx, p.Quit)
	defer stopQuit()

	var playErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		playErr = pl.Play(ctx, name, sheet)
		p.Send(tui.DoneMsg{Err: playErr})
	}()

	_, err := p.Run()
	// the UI can go away mid-sheet (signal, crash); stop the player too
	kb.Cancel()
	<-done
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return playErr
}
