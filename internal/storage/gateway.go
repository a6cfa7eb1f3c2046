package storage

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sandeepkv93/selesai/internal/model"
)

const (
	DefaultKey   = "todos"
	lastIDSuffix = ".lastId"
)

// Gateway loads and saves the item list under a single key.
type Gateway struct {
	kv     KV
	key    string
	logger zerolog.Logger
}

func NewGateway(kv KV, key string, logger zerolog.Logger) *Gateway {
	if strings.TrimSpace(key) == "" {
		key = DefaultKey
	}
	return &Gateway{kv: kv, key: key, logger: logger}
}

func (g *Gateway) Key() string { return g.key }

// Load returns the stored list. Missing, blank, or unreadable values report
// false; the caller starts from an empty list in that case.
func (g *Gateway) Load(ctx context.Context) ([]model.Item, bool) {
	raw, err := g.kv.Get(ctx, g.key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			g.logger.Warn().Err(err).Str("key", g.key).Msg("read stored list")
		}
		return nil, false
	}
	items, err := Decode(raw)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			g.logger.Warn().Err(err).Str("key", g.key).Int("bytes", len(raw)).Msg("discarding unreadable stored list")
		}
		return nil, false
	}
	g.logger.Debug().Str("key", g.key).Int("items", len(items)).Msg("loaded list")
	return items, true
}

func (g *Gateway) Save(ctx context.Context, items []model.Item) error {
	if err := g.kv.Put(ctx, g.key, Encode(items)); err != nil {
		return err
	}
	g.logger.Debug().Str("key", g.key).Int("items", len(items)).Msg("saved list")
	return nil
}

// LoadLastID returns the highest id ever handed out, kept next to the list so
// removed ids stay retired across processes. Missing or unreadable values
// read as 0.
func (g *Gateway) LoadLastID(ctx context.Context) int {
	key := g.key + lastIDSuffix
	raw, err := g.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			g.logger.Warn().Err(err).Str("key", key).Msg("read last id")
		}
		return 0
	}
	id, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil || id < 0 {
		g.logger.Warn().Str("key", key).Str("value", string(raw)).Msg("discarding unreadable last id")
		return 0
	}
	return id
}

func (g *Gateway) SaveLastID(ctx context.Context, id int) error {
	return g.kv.Put(ctx, g.key+lastIDSuffix, []byte(strconv.Itoa(id)))
}

// Clear removes the stored list and its id counter. Clearing an absent list
// is not an error.
func (g *Gateway) Clear(ctx context.Context) error {
	for _, key := range []string{g.key, g.key + lastIDSuffix} {
		if err := g.kv.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return nil
}
