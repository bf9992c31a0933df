package settings

import "strings"

// moodAccents pairs a bucket of mood keywords with the accent color shown
// next to the color mood field. Keywords are disjoint across buckets, so the
// scan below is order-independent for any single-keyword input; inputs
// containing keywords from several buckets resolve by this fixed precedence.
var moodAccents = []struct {
	keywords []string
	color    string
}{
	{[]string{"blue", "professional", "tech"}, "#93C5FD"},
	{[]string{"warm", "gold", "orange"}, "#FDBA74"},
	{[]string{"cool", "cyan"}, "#67E8F9"},
	{[]string{"dark", "black"}, "#475569"},
	{[]string{"neon", "cyber", "fuchsia"}, "#E879F9"},
	{[]string{"nature", "earth", "wood"}, "#D6D3D1"},
}

// moodAccentDefault is the neutral accent for unmatched moods.
const moodAccentDefault = "#E2E8F0"

// MoodAccent maps a free-text color mood onto one accent color from a fixed
// palette. Total: every input, including the empty string, yields a color.
func MoodAccent(mood string) string {
	lower := strings.ToLower(mood)
	for _, a := range moodAccents {
		for _, k := range a.keywords {
			if strings.Contains(lower, k) {
				return a.color
			}
		}
	}
	return moodAccentDefault
}
