package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubscriberName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "valid", raw: "Ursula Le Guin", want: "Ursula Le Guin"},
		{name: "trimmed", raw: "  Ursula  ", want: "Ursula"},
		{name: "max length", raw: strings.Repeat("ё", MaxNameLength), want: strings.Repeat("ё", MaxNameLength)},
		{name: "empty", raw: "", wantErr: true},
		{name: "whitespace only", raw: " \t\n ", wantErr: true},
		{name: "too long", raw: strings.Repeat("a", MaxNameLength+1), wantErr: true},
		{name: "control character", raw: "Ursula\x00", wantErr: true},
	}
	for _, c := range []rune(forbiddenNameChars) {
		tests = append(tests, struct {
			name    string
			raw     string
			want    string
			wantErr bool
		}{name: "forbidden " + string(c), raw: "Ursula" + string(c), wantErr: true})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSubscriberName(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidName)
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseSubscriberName_NormalizesToNFC(t *testing.T) {
	t.Parallel()

	// "e" followed by a combining acute accent.
	got, err := ParseSubscriberName("Rene\u0301")
	require.NoError(t, err)
	assert.Equal(t, "Ren\u00e9", got.String())
}
