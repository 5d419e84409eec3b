package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed assets/*
var embeddedAssets embed.FS

const (
	StylesheetName    = "contact.css"
	RuntimeScriptName = "contact-reveal.js"

	// StylesheetAssetKey is looked up through the theme's AssetURL resolver
	// before falling back to the bundled stylesheet.
	StylesheetAssetKey = "contact.stylesheet"
)

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

// AssetsFS exposes the bundled stylesheet and reveal runtime so callers can
// serve them over HTTP.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
