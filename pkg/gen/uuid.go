package gen

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UUIDGenerator func() uuid.UUID

// UUID returns a generator of time-based (v1) UUIDs.
func UUID() UUIDGenerator {
	return func() uuid.UUID {
		return uuid.Must(uuid.NewUUID())
	}
}

func (g UUIDGenerator) Next() uuid.UUID {
	if g == nil {
		return uuid.Nil
	}

	return g()
}

// KeyGenerator builds object keys of the form <prefix>/<unix-millis>-<uuid><ext>.
// The millisecond prefix keeps keys ordered by creation time and the UUID
// keeps concurrent submissions in the same millisecond apart.
type KeyGenerator struct {
	Prefix string
	Ext    string
	Now    func() time.Time
	UUID   UUIDGenerator
}

func NewKeyGenerator(prefix, ext string) *KeyGenerator {
	return &KeyGenerator{
		Prefix: strings.Trim(prefix, "/"),
		Ext:    ext,
		Now:    time.Now,
		UUID:   UUID(),
	}
}

func (g *KeyGenerator) Next() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	name := fmt.Sprintf("%d-%s%s", now().UnixMilli(), g.UUID.Next(), g.Ext)
	if g.Prefix == "" {
		return name
	}
	return g.Prefix + "/" + name
}

// Owns reports whether key was produced under this generator's prefix.
func (g *KeyGenerator) Owns(key string) bool {
	if key == "" || strings.Contains(key, "..") {
		return false
	}
	if g.Prefix == "" {
		return true
	}
	return strings.HasPrefix(key, g.Prefix+"/") && len(key) > len(g.Prefix)+1
}
