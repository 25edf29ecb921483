package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/icco/sheetplay/internal/config"
	"github.com/icco/sheetplay/internal/device"
	"github.com/icco/sheetplay/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var flags struct {
	configPath  string
	port        string
	midiIn      string
	logLevel    string
	logFile     string
	synth       bool
	debug       bool
	headless    bool
	listPorts   bool
	writeConfig bool
}

var rootCmd = &cobra.Command{
	Use:   "sheetplay [file]",
	Short: "Play text music sheets or the computer keyboard through a MIDI synth",
	Long: `sheetplay plays plain-text music sheets through a MIDI output, drawing a
waveform of the sounding notes while it plays.

With no arguments it starts live mode: the home row plays C4 to D5 polyphonically
(A S D F G H J K with W E T Y U O P for the sharps), Space silences everything and
Esc quits.

Example sheet:
  T=96 B=Q I=0
  C4q D4e E4e [C4 E4 G4]h
  R q  # rest
`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flags.configPath, "config", "c", "", "Config file (default ~/.config/sheetplay/config.yaml)")
	f.StringVarP(&flags.port, "port", "p", "", "MIDI output port name prefix")
	f.BoolVar(&flags.synth, "synth", false, "Play through the built-in synthesizer")
	f.StringVar(&flags.midiIn, "midi-in", "", "MIDI keyboard to play live mode from")
	f.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.StringVar(&flags.logFile, "log-file", "", "Write logs to this file")
	f.BoolVar(&flags.debug, "debug", false, "Debug logging to ~/.config/sheetplay/debug.log")
	f.BoolVar(&flags.headless, "headless", false, "Run without the terminal UI")
	f.BoolVar(&flags.listPorts, "list-ports", false, "List MIDI ports and exit")
	f.BoolVar(&flags.writeConfig, "write-config", false, "Write the effective config and exit")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if flags.writeConfig {
		if err := cfg.Save(flags.configPath); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}
		return nil
	}
	if flags.listPorts {
		listPorts(cmd.OutOrStdout())
		return nil
	}

	// The file is opened before any device is touched so a bad path leaves
	// the synth alone.
	var sheet *os.File
	if len(args) == 1 {
		sheet, err = os.Open(args[0])
		if err != nil {
			return fmt.Errorf("could not open %s: %w", args[0], err)
		}
		defer sheet.Close()
	}

	log, logCloser, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, closeOut, err := openOutput(cfg, log)
	if err != nil {
		return err
	}
	defer closeOut()

	if sheet != nil {
		return runPlay(ctx, cfg, out, log, args[0], sheet)
	}
	return runLive(ctx, cfg, out, log)
}

// loadConfig reads the config file and lays any set flags over it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("port") {
		cfg.Output.Port = flags.port
	}
	if changed("synth") {
		cfg.Output.Synth = flags.synth
	}
	if changed("midi-in") {
		cfg.Input.MIDIPort = flags.midiIn
	}
	if changed("log-level") {
		cfg.Log.Level = flags.logLevel
	}
	if changed("log-file") {
		cfg.Log.File = flags.logFile
	}
	if flags.debug {
		cfg.Log.Level = "debug"
		if cfg.Log.File == "" {
			if dir, err := config.Dir(); err == nil {
				cfg.Log.File = filepath.Join(dir, "debug.log")
			}
		}
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logrus.Logger, io.Closer, error) {
	log, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	log.WithFields(logrus.Fields{
		"port":  cfg.Output.Port,
		"synth": cfg.Output.Synth,
	}).Debug("config loaded")
	return log, closer, nil
}

func listPorts(w io.Writer) {
	outs, ins := device.PortNames()
	defer device.CloseDriver()

	fmt.Fprintln(w, "MIDI outputs:")
	if len(outs) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, name := range outs {
		fmt.Fprintf(w, "  %d: %s\n", i, name)
	}
	fmt.Fprintln(w, "MIDI inputs:")
	if len(ins) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, name := range ins {
		fmt.Fprintf(w, "  %d: %s\n", i, name)
	}
}
