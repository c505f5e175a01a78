package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Vallentin/textmation/pkg"
)

// Version prints the program name and version.
type Version struct{}

// Run executes the version command.
func (v *Version) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	fmt.Println(pkg.Name, strings.TrimSpace(pkg.Version))

	return nil
}
