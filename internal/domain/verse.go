package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SurahCount is the number of chapters in the Quran.
const SurahCount = 114

var errLocatorMismatch = fmt.Errorf("verseKey does not match surah/ayah: %w", ErrBadRequest)

// VerseLocator identifies a single verse by chapter and verse number.
type VerseLocator struct {
	Surah int
	Ayah  int
}

// NewVerseLocator builds a locator from the surah/ayah string pair.
func NewVerseLocator(surah, ayah string) (VerseLocator, error) {
	if surah == "" || ayah == "" {
		return VerseLocator{}, fmt.Errorf("surah and ayah are required: %w", ErrBadRequest)
	}
	s, err := strconv.Atoi(strings.TrimSpace(surah))
	if err != nil {
		return VerseLocator{}, fmt.Errorf("surah must be a number: %w", ErrBadRequest)
	}
	a, err := strconv.Atoi(strings.TrimSpace(ayah))
	if err != nil {
		return VerseLocator{}, fmt.Errorf("ayah must be a number: %w", ErrBadRequest)
	}
	loc := VerseLocator{Surah: s, Ayah: a}
	if err := loc.validate(); err != nil {
		return VerseLocator{}, err
	}
	return loc, nil
}

// ParseVerseKey parses the "chapter:verse" form, e.g. "2:255".
func ParseVerseKey(key string) (VerseLocator, error) {
	surah, ayah, ok := strings.Cut(strings.TrimSpace(key), ":")
	if !ok {
		return VerseLocator{}, fmt.Errorf("verse key %q must look like chapter:verse: %w", key, ErrBadRequest)
	}
	return NewVerseLocator(surah, ayah)
}

func (l VerseLocator) validate() error {
	if l.Surah < 1 || l.Surah > SurahCount {
		return fmt.Errorf("surah must be between 1 and %d: %w", SurahCount, ErrBadRequest)
	}
	if l.Ayah < 1 {
		return fmt.Errorf("ayah must be positive: %w", ErrBadRequest)
	}
	return nil
}

// Key returns the canonical "chapter:verse" string.
func (l VerseLocator) Key() string {
	return fmt.Sprintf("%d:%d", l.Surah, l.Ayah)
}

func (l VerseLocator) SurahString() string { return strconv.Itoa(l.Surah) }
func (l VerseLocator) AyahString() string  { return strconv.Itoa(l.Ayah) }
