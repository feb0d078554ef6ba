// Package store caches generated floors so a repeated request for the same
// dungeon floor and seed is served without regenerating it.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/samdwyer/floorgen/internal/dungeon"
	"github.com/samdwyer/floorgen/internal/generator"
)

// ErrNotFound is returned when a floor is not cached.
var ErrNotFound = errors.New("floor not cached")

//go:generate mockgen -destination=mock/mock_cache.go -package=mock github.com/samdwyer/floorgen/internal/store Cache

// Cache stores generated floors by request key.
type Cache interface {
	Get(ctx context.Context, key Key) (*generator.Floor, error)
	Put(ctx context.Context, key Key, f *generator.Floor) error
	Delete(ctx context.Context, key Key) error
}

// Key identifies one generator request. Requests that differ in any input
// that changes the output get different keys.
type Key string

type keyInput struct {
	Properties  dungeon.FloorProperties `json:"properties"`
	Restriction dungeon.Restriction     `json:"restriction"`
	Seed        uint32                  `json:"seed"`
	FixedRoom   *generator.FixedRoom    `json:"fixed_room,omitempty"`
}

// KeyFor derives the cache key of req. The spawn policy is not part of the
// key; callers that swap policies need separate caches.
func KeyFor(req generator.Request) (Key, error) {
	raw, err := json.Marshal(keyInput{
		Properties:  req.Properties,
		Restriction: req.Restriction,
		Seed:        req.Seed,
		FixedRoom:   req.FixedRoom,
	})
	if err != nil {
		return "", fmt.Errorf("cache key: %w", err)
	}
	return Key(fmt.Sprintf("%016x", xxhash.Sum64(raw))), nil
}
