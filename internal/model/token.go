package model

// TokenGenerator issues confirmation tokens.
type TokenGenerator interface {
	Generate() (string, error)
}
