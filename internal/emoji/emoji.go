package emoji

import "sync/atomic"

// EmojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"summarize": {"📝", "[SUM]"},
	"sentiment": {"😊", "[SEN]"},
	"intent":    {"🎯", "[INT]"},
	"classify":  {"🏷️", "[CLS]"},
	"error":     {"❌", "[ERR]"},
	"warning":   {"⚠️", "[WRN]"},
	"success":   {"✅", "[OK]"},
	"rocket":    {"🚀", "[>>]"},
	"empty":     {"📭", "[--]"},
	"keyboard":  {"⌨️", "[KEY]"},
	"clock":     {"🕒", "[T]"},
	"door":      {"🚪", "[EXIT]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled.Load() {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}
