package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config, logger *Logger) {
	version := GetVersion()
	build := GetBuild()
	commit := GetGitCommit()
	serviceURL := fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 70
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		`  .d8888b.  888     888       d8888 8888888b.         d8888`,
		` d88P  Y88b 888     888      d88888 888   Y88b       d88888`,
		` 888    888 888     888     d88P888 888    888      d88P888`,
		` 888        888     888    d88P 888 888   d88P     d88P 888`,
		` 888  88888 888     888   d88P  888 8888888P'     d88P  888`,
		` 888    888 888     888  d88P   888 888 T88b     d88P   888`,
		` Y88b  d88P Y88b. .d88P d8888888888 888  T88b   d8888888888`,
		`  'Y8888P88  'Y88888P' d88P     888 888   T88b d88P     888`,
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s  Seguimiento de Finanzas Personales%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")

	kvPad := 16
	kvLines := [][2]string{
		{"Version", version},
		{"Build", build},
		{"Commit", commit},
		{"Environment", config.Environment},
		{"Storage", config.Storage.Backend},
		{"Service", serviceURL},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(os.Stderr, "  %s%-*s%s%s\n", banner.ColorCyan, kvPad, kv[0], banner.ColorReset, kv[1])
	}
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")
}
