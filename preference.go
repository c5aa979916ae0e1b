package notes

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// PreferenceStorage persists the dark mode flag between runs. ok is false when nothing has been saved yet.
type PreferenceStorage interface {
	LoadDarkMode() (value bool, ok bool, err error)
	SaveDarkMode(value bool) error
}

// FilePreferenceStorage keeps preferences in a small YAML file, e.g.:
//
//	dark_mode: true
type FilePreferenceStorage struct {
	Path string
}

type preferenceFile struct {
	DarkMode *bool `yaml:"dark_mode,omitempty"`
}

func (fs FilePreferenceStorage) LoadDarkMode() (bool, bool, error) {
	b, err := os.ReadFile(fs.Path)
	if os.IsNotExist(err) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	var pf preferenceFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		return false, false, err
	}
	if pf.DarkMode == nil {
		return false, false, nil
	}
	return *pf.DarkMode, true, nil
}

func (fs FilePreferenceStorage) SaveDarkMode(value bool) error {
	b, err := yaml.Marshal(preferenceFile{DarkMode: &value})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fs.Path), 0700); err != nil {
		return err
	}
	return os.WriteFile(fs.Path, b, 0600)
}

// Preference is the dark mode display preference. It has nothing to do with notes or action items; it lives here
// so that any front end built on the stores has one shared place to read it from and watch it.
type Preference struct {
	storage PreferenceStorage

	mu   sync.Mutex
	dark bool

	obs observers
}

// NewPreference reads the persisted value once. If nothing was persisted, or it can't be read, systemDefault
// is used instead.
func NewPreference(storage PreferenceStorage, systemDefault bool) *Preference {
	p := &Preference{storage: storage, dark: systemDefault}
	value, ok, err := storage.LoadDarkMode()
	if err != nil {
		log.WithField("cause", err).Warning("Could not load display preference, using system default")
		return p
	}
	if ok {
		p.dark = value
	}
	return p
}

func (p *Preference) DarkMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dark
}

// SetDarkMode changes the value for this process and persists it. The in-memory value changes even when saving
// fails; the error is returned so the caller can report it.
func (p *Preference) SetDarkMode(value bool) error {
	p.mu.Lock()
	changed := p.dark != value
	p.dark = value
	p.mu.Unlock()
	if changed {
		p.obs.notify()
	}
	return p.storage.SaveDarkMode(value)
}

// Toggle flips the value and returns the new one.
func (p *Preference) Toggle() (bool, error) {
	p.mu.Lock()
	p.dark = !p.dark
	value := p.dark
	p.mu.Unlock()
	p.obs.notify()
	return value, p.storage.SaveDarkMode(value)
}

// Subscribe registers fn to be called whenever the value changes.
func (p *Preference) Subscribe(fn func()) (unsubscribe func()) {
	return p.obs.subscribe(fn)
}

// SystemDarkMode guesses the system-level default. NOTES_THEME=dark or NOTES_THEME=light decide if set;
// otherwise the terminal background from COLORFGBG ("15;0" is light on black) is used. It defaults to false.
func SystemDarkMode() bool {
	switch strings.ToLower(os.Getenv("NOTES_THEME")) {
	case "dark":
		return true
	case "light":
		return false
	}
	v := os.Getenv("COLORFGBG")
	if v == "" {
		return false
	}
	fields := strings.Split(v, ";")
	bg, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return false
	}
	return (bg >= 0 && bg <= 6) || bg == 8
}
