package platform

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// LanguageSystem is the setting value meaning "follow the OS language"
const LanguageSystem = "system"

// Environment variables consulted for the system locale, by priority
var localeEnvVars = []string{"LC_ALL", "LC_MESSAGES", "LANG", "LANGUAGE"}

// SystemLanguages returns the user's preferred languages as BCP 47 tags,
// most preferred first. POSIX values such as "fr_FR.UTF-8" are converted.
func SystemLanguages() []language.Tag {
	var tags []language.Tag
	for _, name := range localeEnvVars {
		value := os.Getenv(name)
		if value == "" {
			continue
		}
		// LANGUAGE may hold a colon separated list
		for _, part := range strings.Split(value, ":") {
			if tag, ok := ParsePOSIXLocale(part); ok {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// ParsePOSIXLocale converts "de_CH.UTF-8@euro" style values to a language tag
func ParsePOSIXLocale(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	if value == "" || value == "C" || value == "POSIX" {
		return language.Und, false
	}

	tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// MatchLanguage picks the best of the supported language codes for the
// preferred tags. The first supported code is the fallback.
func MatchLanguage(supported []string, preferred ...language.Tag) string {
	if len(supported) == 0 {
		return ""
	}

	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tags = append(tags, language.Make(code))
	}

	matcher := language.NewMatcher(tags)
	_, index, confidence := matcher.Match(preferred...)
	if confidence == language.No {
		return supported[0]
	}
	return supported[index]
}

// ResolveLanguage maps a language setting to one of the supported codes,
// using the OS languages for LanguageSystem
func ResolveLanguage(setting string, supported []string) string {
	if setting == "" || setting == LanguageSystem {
		return MatchLanguage(supported, SystemLanguages()...)
	}
	return MatchLanguage(supported, language.Make(setting))
}
