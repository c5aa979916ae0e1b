package notes_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nicolagi/notes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	value   bool
	ok      bool
	loadErr error
	saveErr error
	saves   int
}

func (m *memoryStorage) LoadDarkMode() (bool, bool, error) {
	return m.value, m.ok, m.loadErr
}

func (m *memoryStorage) SaveDarkMode(value bool) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.value, m.ok = value, true
	return nil
}

func TestPreferenceInitialValue(t *testing.T) {
	testCases := []struct {
		name          string
		storage       *memoryStorage
		systemDefault bool
		expected      bool
	}{
		{"nothing saved, system light", &memoryStorage{}, false, false},
		{"nothing saved, system dark", &memoryStorage{}, true, true},
		{"saved dark wins", &memoryStorage{value: true, ok: true}, false, true},
		{"saved light wins", &memoryStorage{value: false, ok: true}, true, false},
		{"unreadable falls back", &memoryStorage{value: true, ok: true, loadErr: errors.New("boom")}, false, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := notes.NewPreference(tc.storage, tc.systemDefault)
			assert.Equal(t, tc.expected, p.DarkMode())
		})
	}
}

func TestPreferenceSetToggleSubscribe(t *testing.T) {
	storage := &memoryStorage{}
	p := notes.NewPreference(storage, false)
	var notified []bool
	unsubscribe := p.Subscribe(func() {
		notified = append(notified, p.DarkMode())
	})

	require.Nil(t, p.SetDarkMode(true))
	assert.True(t, storage.value)

	// Same value: persisted again, but nobody is told about a change.
	require.Nil(t, p.SetDarkMode(true))

	value, err := p.Toggle()
	require.Nil(t, err)
	assert.False(t, value)
	assert.False(t, storage.value)
	assert.Equal(t, []bool{true, false}, notified)
	assert.Equal(t, 3, storage.saves)

	unsubscribe()
	_, err = p.Toggle()
	require.Nil(t, err)
	assert.Len(t, notified, 2)
}

func TestPreferenceSaveFailureStillChangesValue(t *testing.T) {
	storage := &memoryStorage{saveErr: errors.New("read-only")}
	p := notes.NewPreference(storage, false)
	err := p.SetDarkMode(true)
	assert.NotNil(t, err)
	assert.True(t, p.DarkMode())
}

func TestFilePreferenceStorage(t *testing.T) {
	dir := t.TempDir()
	storage := notes.FilePreferenceStorage{Path: filepath.Join(dir, "lib", "notes", "prefs.yaml")}

	_, ok, err := storage.LoadDarkMode()
	require.Nil(t, err)
	assert.False(t, ok)

	require.Nil(t, storage.SaveDarkMode(true))
	b, err := os.ReadFile(storage.Path)
	require.Nil(t, err)
	assert.Equal(t, "dark_mode: true\n", string(b))

	value, ok, err := storage.LoadDarkMode()
	require.Nil(t, err)
	assert.True(t, ok)
	assert.True(t, value)

	require.Nil(t, os.WriteFile(storage.Path, []byte("other: 1\n"), 0600))
	_, ok, err = storage.LoadDarkMode()
	require.Nil(t, err)
	assert.False(t, ok)

	require.Nil(t, os.WriteFile(storage.Path, []byte("dark_mode: [oops"), 0600))
	_, _, err = storage.LoadDarkMode()
	assert.NotNil(t, err)
}

func TestSystemDarkMode(t *testing.T) {
	testCases := []struct {
		theme     string
		colorfgbg string
		expected  bool
	}{
		{"", "", false},
		{"dark", "", true},
		{"LIGHT", "15;0", false},
		{"", "15;0", true},
		{"", "0;15", false},
		{"", "15;default;8", true},
		{"", "garbage", false},
	}
	for _, tc := range testCases {
		t.Run(tc.theme+"/"+tc.colorfgbg, func(t *testing.T) {
			t.Setenv("NOTES_THEME", tc.theme)
			t.Setenv("COLORFGBG", tc.colorfgbg)
			assert.Equal(t, tc.expected, notes.SystemDarkMode())
		})
	}
}
