package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestI18NNegotiatesLocale(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		fallback string
		want     string
	}{
		{
			name: "x-locale overrides",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "ID")
				r.Header.Set("Accept-Language", "en-US")
			},
			want: "id",
		},
		{
			name: "accept-language used",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "es-MX,en;q=0.5")
			},
			want: "es",
		},
		{
			name: "regional portuguese",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "pt-BR")
			},
			want: "pt-BR",
		},
		{
			name: "invalid x-locale ignored",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "!!")
				r.Header.Set("Accept-Language", "de-DE")
			},
			want: "de",
		},
		{
			name:     "fallback used without headers",
			fallback: "id",
			want:     "id",
		},
		{
			name:     "unknown fallback becomes english",
			fallback: "xx-invalid-tag!",
			want:     "en",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got string
			handler := I18N(tc.fallback)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = LocaleFromContext(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.setup != nil {
				tc.setup(req)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if got != tc.want {
				t.Fatalf("locale = %q, want %q", got, tc.want)
			}
			if rec.Header().Get("Content-Language") != tc.want {
				t.Fatalf("Content-Language = %q", rec.Header().Get("Content-Language"))
			}
		})
	}
}

func TestLocaleFromContextDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := LocaleFromContext(req.Context()); got != "en" {
		t.Fatalf("LocaleFromContext() = %q, want en", got)
	}
}
