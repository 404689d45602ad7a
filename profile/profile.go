// Package profile holds the fixed asset tables for each supported game.
package profile

import (
	"sort"

	"github.com/arlobryn/soundbank/loader"
)

// Default is the profile used when a requested key is unknown.
const Default = "arcade"

// Music is the conventional name for a profile's background track.
const Music = "music"

var profiles = map[string][]loader.Asset{
	"arcade": {
		{Name: "click", Locator: "assets/arcade/click.wav"},
		{Name: "select", Locator: "assets/arcade/select.wav"},
		{Name: "score", Locator: "assets/arcade/score.wav"},
		{Name: "explosion", Locator: "assets/arcade/explosion.wav"},
		{Name: "game-over", Locator: "assets/arcade/game-over.wav"},
		{Name: Music, Locator: "assets/arcade/music.ogg"},
	},
	"platformer": {
		{Name: "jump", Locator: "assets/platformer/jump.wav"},
		{Name: "coin", Locator: "assets/platformer/coin.wav"},
		{Name: "hit", Locator: "assets/platformer/hit.wav"},
		{Name: "checkpoint", Locator: "assets/platformer/checkpoint.wav"},
		{Name: "win", Locator: "assets/platformer/win.wav"},
		{Name: Music, Locator: "assets/platformer/music.ogg"},
	},
	"puzzle": {
		{Name: "click", Locator: "assets/puzzle/click.wav"},
		{Name: "rotate", Locator: "assets/puzzle/rotate.wav"},
		{Name: "match-success", Locator: "assets/puzzle/match.wav"},
		{Name: "error", Locator: "assets/puzzle/error.wav"},
		{Name: Music, Locator: "assets/puzzle/music.ogg"},
	},
}

// Sounds returns the asset table for key, or the default profile's table
// when the key is unknown.
func Sounds(key string) []loader.Asset {
	if assets, ok := profiles[key]; ok {
		return assets
	}
	return profiles[Default]
}

// Keys returns the supported profile keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(profiles))
	for k := range profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
