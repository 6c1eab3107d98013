package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mmcdole/reel/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

var typeCaser = cases.Title(language.English)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func paint(s, color string, colorize bool) string {
	if !colorize || s == "" {
		return s
	}
	return color + s + ansiReset
}

// formatRating renders "★★★☆☆ (3/5)", or "-" when unrated
func formatRating(rating int) string {
	if rating <= 0 {
		return "-"
	}
	return fmt.Sprintf("%s%s (%d/%d)",
		strings.Repeat("★", rating),
		strings.Repeat("☆", domain.MaxRating-rating),
		rating, domain.MaxRating)
}

// formatType title-cases an OMDb type ("movie" -> "Movie")
func formatType(t string) string {
	if !domain.Available(t) {
		return "-"
	}
	return typeCaser.String(t)
}

// orDash replaces unavailable values with "-"
func orDash(v string) string {
	if !domain.Available(v) {
		return "-"
	}
	return v
}
