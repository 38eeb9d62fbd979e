package logutil

// TruncateForLog truncates a string to maxLen characters for safe logging.
// Used for prompts and message bodies so log lines stay bounded and user
// content is only partially visible in logs.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
