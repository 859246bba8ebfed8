package domain

import "time"

// Bookmark is stored with the canonical verse key only; Surah and Ayah are
// filled from it on read.
type Bookmark struct {
	BookmarkID  string    `json:"id" dynamodbav:"bookmark_id"`
	UserID      string    `json:"user_id" dynamodbav:"user_id"`
	VerseKey    string    `json:"verse_key" dynamodbav:"verse_key"`
	Surah       string    `json:"surah" dynamodbav:"-"`
	Ayah        string    `json:"ayah" dynamodbav:"-"`
	Text        string    `json:"text,omitempty" dynamodbav:"text,omitempty"`
	Translation string    `json:"translation,omitempty" dynamodbav:"translation,omitempty"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}

// AddBookmarkRequest carries either a surah/ayah pair or a verse key.
type AddBookmarkRequest struct {
	Surah       string `json:"surah"`
	Ayah        string `json:"ayah"`
	VerseKey    string `json:"verseKey"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
}

// Locator resolves the request into a single VerseLocator.
func (r AddBookmarkRequest) Locator() (VerseLocator, error) {
	switch {
	case r.VerseKey != "" && (r.Surah != "" || r.Ayah != ""):
		byKey, err := ParseVerseKey(r.VerseKey)
		if err != nil {
			return VerseLocator{}, err
		}
		byPair, err := NewVerseLocator(r.Surah, r.Ayah)
		if err != nil {
			return VerseLocator{}, err
		}
		if byKey != byPair {
			return VerseLocator{}, errLocatorMismatch
		}
		return byKey, nil
	case r.VerseKey != "":
		return ParseVerseKey(r.VerseKey)
	default:
		return NewVerseLocator(r.Surah, r.Ayah)
	}
}

// FillLocator populates Surah and Ayah from VerseKey.
func (b *Bookmark) FillLocator() {
	loc, err := ParseVerseKey(b.VerseKey)
	if err != nil {
		return
	}
	b.Surah = loc.SurahString()
	b.Ayah = loc.AyahString()
}
