package engine

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const maxTitleLen = 50

var titleReplacer = strings.NewReplacer(".", " ", "_", " ")

// CleanFilename turns a media file name into a display title:
// extension stripped, dots and underscores to spaces, capped at 50 characters
func CleanFilename(name string) string {
	title := strings.TrimSuffix(name, filepath.Ext(name))
	title = strings.Join(strings.Fields(titleReplacer.Replace(title)), " ")

	if utf8.RuneCountInString(title) > maxTitleLen {
		runes := []rune(title)
		title = string(runes[:maxTitleLen-3]) + "..."
	}
	return title
}

// FormatTime renders milliseconds as MM:SS, or HH:MM:SS from one hour up
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

func progressText(positionMs, durationMs int64) string {
	return FormatTime(positionMs) + " / " + FormatTime(durationMs)
}
