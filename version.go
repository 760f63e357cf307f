package quicknote

import _ "embed"

// Version is the released version of quicknote, read from the VERSION file.
//
//go:embed VERSION
var Version string
