package cli

import (
	"github.com/yildizm/phishscan/internal/emoji"
)

// GetEmoji is a wrapper for the shared emoji package
func GetEmoji(key string) string {
	return emoji.GetEmoji(key)
}

// existsMark returns the marker used by "config path" for a search path
func existsMark(exists bool) string {
	if exists {
		return GetEmoji("safe") + " (exists)"
	}
	return GetEmoji("error") + " (not found)"
}
