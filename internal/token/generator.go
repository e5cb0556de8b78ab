package token

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/dtroode/newsletter-server/internal/model"
)

// Length is the number of characters in a subscription token.
const Length = 25

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// maxByte is the largest multiple of len(alphabet) that fits in a byte.
// Bytes at or above it are discarded so every character is equally likely.
const maxByte = 256 - 256%len(alphabet)

// Generator produces alphanumeric subscription tokens from a random source.
type Generator struct {
	mu     sync.Mutex
	source io.Reader
}

var _ model.TokenGenerator = (*Generator)(nil)

// NewGenerator creates a token generator reading from source.
// A nil source means crypto/rand.
func NewGenerator(source io.Reader) *Generator {
	if source == nil {
		source = rand.Reader
	}
	return &Generator{source: source}
}

// Generate returns a new token of Length characters.
func (g *Generator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]byte, 0, Length)
	buf := make([]byte, Length*2)
	for len(out) < Length {
		if _, err := io.ReadFull(g.source, buf); err != nil {
			return "", fmt.Errorf("failed to read randomness: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxByte {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == Length {
				break
			}
		}
	}

	return string(out), nil
}

// Valid reports whether s has the shape of a generated token.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}
