// Package web holds the embedded single-page UI served at the root path.
package web

import "embed"

//go:embed static
var StaticFS embed.FS
