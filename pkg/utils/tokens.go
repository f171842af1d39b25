package utils

import "github.com/google/uuid"

// UniqueStringGenerator produces opaque unique strings for entity ids and
// one-time tokens.
type UniqueStringGenerator interface {
	Generate() string
}

type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

func (UUIDGenerator) Generate() string {
	return uuid.NewString()
}
