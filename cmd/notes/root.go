package main

import (
	"io"
	"net/http"
	"time"

	"github.com/nicolagi/notes"
	"github.com/nicolagi/notes/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	apiURL    string
	wireLog   string
	prefsFile string
	verbose   bool

	httpTimeout time.Duration

	transport  *notes.Transport
	noteClient *notes.NoteClient
	noteStore  *notes.NoteStore
	itemStore  *notes.ActionItemStore
	preference *notes.Preference
)

var rootCmd = &cobra.Command{
	Use:           "notes",
	Short:         "Keep notes and action items on a notes server",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log.SetOutput(cmd.ErrOrStderr())
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
		return setup()
	},
}

func init() {
	cfg := config.Load()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&apiURL, "api", cfg.BaseURL, "Base URL of the notes server")
	flags.StringVar(&wireLog, "wire-log", cfg.WireLog, "Append requests and responses to this file")
	flags.StringVar(&prefsFile, "prefs", cfg.PrefsFile, "Preferences file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	httpTimeout = cfg.HTTPTimeout
	cobra.OnFinalize(closeTransport)
}

// closeTransport runs after every command, failed ones included.
func closeTransport() {
	if transport == nil {
		return
	}
	if err := transport.Close(); err != nil {
		log.WithField("cause", err).Warning("Could not close wire log")
	}
	transport = nil
}

func setup() error {
	wire := notes.WithWireLogWriter(io.Discard)
	if wireLog != "" {
		wire = notes.WithWireLog(wireLog)
	}
	var err error
	transport, err = notes.NewTransport(
		notes.WithBaseURL(apiURL),
		notes.WithHTTPClient(&http.Client{Timeout: httpTimeout}),
		wire,
	)
	if err != nil {
		return err
	}
	noteClient = notes.NewNoteClient(transport)
	noteStore = notes.NewNoteStore(noteClient)
	itemStore = notes.NewActionItemStore(notes.NewActionItemClient(transport))
	noteStore.Subscribe(func() {
		log.WithFields(log.Fields{
			"notes":   len(noteStore.Notes()),
			"loading": noteStore.Loading(),
		}).Debug("Notes changed")
	})
	itemStore.Subscribe(func() {
		log.WithFields(log.Fields{
			"items":   len(itemStore.ActionItems()),
			"loading": itemStore.Loading(),
		}).Debug("Action items changed")
	})
	preference = notes.NewPreference(notes.FilePreferenceStorage{Path: prefsFile}, notes.SystemDarkMode())
	return nil
}
