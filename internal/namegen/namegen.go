// Package namegen produces random, human-readable container image names.
package namegen

import (
	"fmt"
	"math/rand"
	"regexp"
)

var adjectives = []string{
	"happy", "clever", "brave", "gentle", "swift",
	"bright", "calm", "bold", "quiet", "eager",
	"lucky", "witty", "kind", "wise", "free",
	"wild", "cool", "warm", "pure", "noble",
}

var nouns = []string{
	"turtle", "falcon", "river", "mountain", "forest",
	"ocean", "wind", "star", "moon", "sun",
	"cloud", "thunder", "valley", "desert", "tiger",
	"eagle", "dolphin", "wolf", "bear", "fox",
}

var namePattern = regexp.MustCompile(`^cj-[a-z]+-[a-z]+$`)

// Generate returns a random image name like "cj-happy-turtle".
func Generate() string {
	adjective := adjectives[rand.Intn(len(adjectives))]
	noun := nouns[rand.Intn(len(nouns))]
	return fmt.Sprintf("cj-%s-%s", adjective, noun)
}

// IsValid reports whether name matches the cj-{adjective}-{noun} shape.
func IsValid(name string) bool {
	return namePattern.MatchString(name)
}
