package cmd

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	okMark   = color.New(color.FgGreen, color.Bold).Sprint("✓")
	warnMark = color.New(color.FgYellow, color.Bold).Sprint("!")
	heading  = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// done prints a success line
func done(format string, args ...any) {
	fmt.Printf("%s %s\n", okMark, fmt.Sprintf(format, args...))
}

// notice prints a line the user should not miss
func notice(format string, args ...any) {
	fmt.Printf("%s %s\n", warnMark, fmt.Sprintf(format, args...))
}
