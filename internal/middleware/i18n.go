package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

// LocaleKey stores the negotiated BCP 47 locale in the request context.
var LocaleKey = localeContextKey{}

// SupportedLocales are the languages offered for generated scripts. The first
// entry is the fallback.
var SupportedLocales = []language.Tag{
	language.English,
	language.Indonesian,
	language.Spanish,
	language.BrazilianPortuguese,
	language.German,
	language.French,
	language.Hindi,
	language.Japanese,
	language.Korean,
}

// I18N negotiates a locale from X-Locale, then Accept-Language, then the
// configured default.
func I18N(defaultLocale string) func(http.Handler) http.Handler {
	matcher := language.NewMatcher(SupportedLocales)
	fallback := matchLocale(matcher, defaultLocale)
	if fallback == "" {
		fallback = SupportedLocales[0].String()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			locale := detectLocale(r, matcher, fallback)
			ctx := context.WithValue(r.Context(), LocaleKey, locale)
			w.Header().Set("Content-Language", locale)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, matcher language.Matcher, fallback string) string {
	if v := matchLocale(matcher, r.Header.Get("X-Locale")); v != "" {
		return v
	}
	if header := strings.TrimSpace(r.Header.Get("Accept-Language")); header != "" {
		tags, _, err := language.ParseAcceptLanguage(header)
		if err == nil && len(tags) > 0 {
			_, idx, conf := matcher.Match(tags...)
			if conf > language.No {
				return SupportedLocales[idx].String()
			}
		}
	}
	return fallback
}

// matchLocale maps a single tag onto a supported locale, or "" when it does
// not parse or nothing is close enough.
func matchLocale(matcher language.Matcher, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return ""
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return ""
	}
	return SupportedLocales[idx].String()
}

// LocaleFromContext returns the negotiated locale, defaulting to English.
func LocaleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(LocaleKey).(string); ok && v != "" {
		return v
	}
	return language.English.String()
}
