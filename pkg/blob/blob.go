package blob

import (
	"context"
	"errors"
	"path"
	"strings"
)

// Store is an object store holding named binary objects that are publicly
// reachable under a deterministic URL.
type Store interface {
	// Upload writes data under name, replacing any existing object.
	Upload(ctx context.Context, name string, data []byte, contentType string) error
	// PublicURL is computed locally, without a round trip.
	PublicURL(name string) string
	// Container is the bucket (container) objects are written to.
	Container() string
}

var ErrInvalidName = errors.New("invalid object name")

// ObjectName derives the object name from a client supplied file name,
// keeping only its final path element.
func ObjectName(original string) (string, error) {
	name := strings.TrimSpace(strings.ReplaceAll(original, `\`, "/"))
	if name == "" {
		return "", ErrInvalidName
	}
	name = path.Base(name)
	switch name {
	case ".", "..", "/":
		return "", ErrInvalidName
	}
	return name, nil
}
