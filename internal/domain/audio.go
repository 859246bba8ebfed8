package domain

// VerseAudio pairs a verse key with the full URL of its recitation file.
type VerseAudio struct {
	VerseKey string `json:"verse_key"`
	AudioURL string `json:"audio_url"`
}

// MaxVerseKeys caps one audio batch at the length of the longest surah.
const MaxVerseKeys = 286

type VerseAudioRequest struct {
	VerseKeys []string `json:"verse_keys" validate:"required,min=1,max=286,dive,required"`
}
