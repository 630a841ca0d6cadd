package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spass-tools/unseal/internal/parser"
)

func TestCleanURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain domain passes through", "example.com", "example.com"},
		{"full url passes through", "https://accounts.example.co.uk/login", "https://accounts.example.co.uk/login"},
		{"known package maps to domain", "android://c2ln@com.twitter.android", "twitter.com"},
		{"known google package", "android://c2ln@com.google.android.gm", "mail.google.com"},
		{"unknown package guesses from last segments", "android://c2ln@com.spotify.music", "spotify.music"},
		{"android fragment rejected, package returned", "android://c2ln@com.vendor.android", "com.vendor.android"},
		{"single segment package returned as-is", "android://c2ln@standalone", "standalone"},
		{"non-android non-domain passes through", "localhost", "localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.CleanURL(tt.input))
		})
	}
}
