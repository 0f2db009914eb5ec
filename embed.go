package seoengine

import "embed"

// EmbeddedAssets contains static assets shipped with the engine:
// admin.js, the editor's description counter and live analysis panel.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
