package i18n

import "strings"

// Lang is a supported reply language.
type Lang string

const (
	EN Lang = "en"
	RU Lang = "ru"
	ES Lang = "es"
)

// DetectLang maps Telegram's language_code to a supported language.
func DetectLang(languageCode string) Lang {
	switch {
	case strings.HasPrefix(languageCode, "ru"):
		return RU
	case strings.HasPrefix(languageCode, "es"):
		return ES
	default:
		return EN
	}
}
