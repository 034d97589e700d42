// Package styles holds the central catalog of music video styles and
// their default generation prompts.
package styles

import "strings"

// Style describes a selectable music video style with its default prompt.
type Style struct {
	Key           string
	Label         string
	DefaultPrompt string
}

var definitions = []Style{
	{
		Key:           "lyric_simple",
		Label:         "Simple Lyric Video",
		DefaultPrompt: "Generate a video where the lyrics of the song appear centered on screen over a clean background. Use smooth fade transitions for each line. Music must be synced to text duration.",
	},
	{
		Key:           "karaoke",
		Label:         "Karaoke Style",
		DefaultPrompt: "Create a karaoke-style video where lyrics appear word-by-word and highlight in yellow while singing. Add a bouncing ball effect if possible.",
	},
	{
		Key:           "motion_graphic",
		Label:         "Abstract Motion Graphics",
		DefaultPrompt: "Generate a music video with animated abstract shapes reacting to the beat. Use pulsing neon colors that match the frequency peaks of the music.",
	},
	{
		Key:           "dark_emotional",
		Label:         "Dark Emotional",
		DefaultPrompt: "Make a music video with slow camera motion, dark tones, deep shadows, rain ambiance, glitch text transitions and emotional mood.",
	},
	{
		Key:           "romantic",
		Label:         "Romantic",
		DefaultPrompt: "Generate a romantic lyric video with soft pink tones, bokeh lights, smooth slow zooms and handwritten-style typography animations.",
	},
	{
		Key:           "rap_hiphop",
		Label:         "Rap / Hip-Hop",
		DefaultPrompt: "Create a fast-cut hip-hop music video with graffiti-style motion graphics, bass-reactive typography, camera shake and high BPM sync.",
	},
	{
		Key:           "cyberpunk",
		Label:         "Cyberpunk / Neon City",
		DefaultPrompt: "Build a music video with neon city visuals, rainy streets, hologram-like lyrics, purple-blue color scheme and techno beat pulsing lights.",
	},
	{
		Key:           "ai_surreal",
		Label:         "AI Surreal / Abstract",
		DefaultPrompt: "Generate a music video using AI surreal visuals: abstract, dream-like, hallucination-style motion synced with the song.",
	},
	{
		Key:           "cinematic",
		Label:         "Epic Cinematic",
		DefaultPrompt: "Create a cinematic music video with dramatic lighting, slow motion shots, deep bass hits, gold typography and light flare effects.",
	},
	{
		Key:           "landscape",
		Label:         "Nature Landscape",
		DefaultPrompt: "Use landscape footage (mountains, oceans, forests) with soft dissolves and poetic typography. Calm and atmospheric background.",
	},
	{
		Key:           "party_edm",
		Label:         "EDM / Party",
		DefaultPrompt: "Generate an energetic EDM party video with multi-color strobe lights, strong beat flashes, rotating text, zoom transitions and glitch effects.",
	},
	{
		Key:           "ai_avatar",
		Label:         "AI Avatar Performance",
		DefaultPrompt: "Generate a video with an AI avatar performing the song, approximate lip-sync, dynamic camera movements and soft bloom highlights.",
	},
}

// All returns every style definition in catalog order.
func All() []Style {
	return definitions
}

// ByKey returns the style with the given key, and whether it exists.
func ByKey(key string) (Style, bool) {
	for _, style := range definitions {
		if style.Key == key {
			return style, true
		}
	}
	return Style{}, false
}

// DefaultPrompt returns the default prompt for the given style key, or
// the empty string for an unknown key.
func DefaultPrompt(key string) string {
	style, _ := ByKey(key)
	return style.DefaultPrompt
}

// Label returns the display label for the given style key, falling
// back to the key itself.
func Label(key string) string {
	if style, ok := ByKey(key); ok {
		return style.Label
	}
	return key
}

// BuildPrompt composes the final generation prompt from a style,
// lyrics and extra instructions.
func BuildPrompt(styleKey, stylePrompt, lyrics, extra string) string {
	if stylePrompt == "" {
		stylePrompt = DefaultPrompt(styleKey)
	}
	if lyrics == "" {
		lyrics = "No lyrics provided."
	}
	if extra == "" {
		extra = "No additional instructions."
	}
	parts := []string{
		"Music video style: " + Label(styleKey),
		"",
		"Style description:",
		stylePrompt,
		"",
		"Lyrics:",
		lyrics,
		"",
		"Extra instructions:",
		extra,
	}
	return strings.Join(parts, "\n")
}
