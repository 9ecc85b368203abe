// Package web embeds the single-page frontend served by the API binary.
package web

import "embed"

//go:embed static
var Static embed.FS
