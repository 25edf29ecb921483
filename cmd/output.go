package cmd

import (
	"fmt"

	"github.com/icco/sheetplay/internal/audio"
	"github.com/icco/sheetplay/internal/config"
	"github.com/icco/sheetplay/internal/device"
	"github.com/sirupsen/logrus"
)

// openOutput opens the configured device and puts it in its startup state
func openOutput(cfg *config.Config, log logrus.FieldLogger) (device.Output, func(), error) {
	var (
		out     device.Output
		closeFn func()
	)

	if cfg.Output.Synth {
		synth, err := audio.NewSynth()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start synth: %w", err)
		}
		synth.SetVolume(cfg.Output.Volume)
		log.WithField("volume", cfg.Output.Volume).Info("using built-in synth")
		out = synth
		closeFn = func() { _ = synth.Close() }
	} else {
		port, err := device.OpenPort(cfg.Output.Port, cfg.Output.SendTimeout, log)
		if err != nil {
			device.CloseDriver()
			return nil, nil, err
		}
		log.WithField("port", port.String()).Info("using MIDI output")
		out = port
		closeFn = func() {
			_ = port.Close()
			device.CloseDriver()
		}
	}

	out = device.Logged(out, log)
	device.Startup(out, 0, 0)
	return out, closeFn, nil
}
