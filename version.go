package crema

import _ "embed"

// Version is the release version of crema.
//
//go:embed VERSION
var Version string
