package models

import (
	"fmt"
	"time"
)

// AudioData carries the serializable fields of an audio track.
type AudioData struct {
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	AudioFile string `json:"audio_file"`
	Lyrics    string `json:"lyrics"`
	Language  string `json:"language"`
	BPM       *int   `json:"bpm"`
}

// AudioTrack is a persistent uploaded or imported audio track.
type AudioTrack struct {
	base
	data AudioData
}

// NewAudioTrack creates an AudioTrack with the given sequence number and data.
func NewAudioTrack(sequence int, data AudioData) *AudioTrack {
	return &AudioTrack{base: newBase(sequence), data: data}
}

// Validate checks that the track has a title and a sane BPM.
func (a *AudioTrack) Validate() error {
	if a.data.Title == "" {
		return fmt.Errorf("audio track title is required")
	}
	if a.data.BPM != nil && *a.data.BPM < 0 {
		return fmt.Errorf("bpm must not be negative: %d", *a.data.BPM)
	}
	return nil
}

// Data returns a copy of the track's serializable fields.
func (a *AudioTrack) Data() AudioData { return a.data }

func (a *AudioTrack) Title() string     { return a.data.Title }
func (a *AudioTrack) Artist() string    { return a.data.Artist }
func (a *AudioTrack) AudioFile() string { return a.data.AudioFile }
func (a *AudioTrack) Lyrics() string    { return a.data.Lyrics }
func (a *AudioTrack) Language() string  { return a.data.Language }
func (a *AudioTrack) BPM() *int         { return a.data.BPM }

func (a *AudioTrack) SetTitle(title string)    { a.data.Title = title }
func (a *AudioTrack) SetArtist(artist string)  { a.data.Artist = artist }
func (a *AudioTrack) SetAudioFile(path string) { a.data.AudioFile = path }
func (a *AudioTrack) SetLyrics(lyrics string)  { a.data.Lyrics = lyrics }
func (a *AudioTrack) SetLanguage(lang string)  { a.data.Language = lang }
func (a *AudioTrack) SetBPM(bpm int)           { a.data.BPM = &bpm }

// AudioPayload is the JSON representation of an audio track exposed by the REST API.
type AudioPayload struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	AudioData
}

// Payload returns the API representation of the track.
func (a *AudioTrack) Payload() AudioPayload {
	return AudioPayload{
		ID:        a.id,
		CreatedAt: a.createdAt,
		UpdatedAt: a.updatedAt,
		AudioData: a.data,
	}
}
