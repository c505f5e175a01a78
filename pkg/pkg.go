//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
)

// Version is the textmation release embedded at build time from the
// VERSION file, printed by the version subcommand.
//
//go:embed VERSION
var Version string

const (
	// Name identifies the command and the module everywhere one name is
	// needed: help output, config paths, cache paths.
	Name = "textmation"

	// Description summarizes the project for help output.
	Description = "Declarative scene and animation description language"

	// Ext is the file extension of scene description files.
	Ext = ".anim"
)

// AuthorInfo is one author's name and contact address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the project authors for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"Vallentin", "mail@vallentin.dev"},
}
