// Package gamedata provides the embedded dungeon, monster, item, trap and
// fixed room tables, plus the weighted spawn policy built on them.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
