package ui

import (
	"strings"

	"github.com/common-nighthawk/go-figure"
)

// Banner renders name as ASCII art for the root command's help text.
func Banner(name string) string {
	fig := figure.NewFigure(name, "small", true)
	return strings.TrimRight(fig.String(), "\n ")
}
