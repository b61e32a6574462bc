package cli

import "github.com/fatih/color"

var (
	colorHeader = color.New(color.Bold)
	colorOK     = color.New(color.FgGreen)
	colorMuted  = color.New(color.FgWhite, color.Faint)
	colorWarn   = color.New(color.FgYellow)
)

const noData = "No Data"
