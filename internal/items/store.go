package items

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sandeepkv93/selesai/internal/celebrate"
	"github.com/sandeepkv93/selesai/internal/model"
)

// Persister is the durable side of the store. The last id is kept apart from
// the list so a removed id is never handed out again by a later process.
type Persister interface {
	Load(ctx context.Context) ([]model.Item, bool)
	Save(ctx context.Context, items []model.Item) error
	LoadLastID(ctx context.Context) int
	SaveLastID(ctx context.Context, id int) error
}

type ToggleResult struct {
	Item        model.Item
	Celebration *celebrate.Plan
}

// Store owns the ordered item list. Every mutation replaces the list with a
// freshly built slice and writes it through before returning.
type Store struct {
	items       []model.Item
	lastID      int
	savedLastID int
	persister   Persister
	trigger     *celebrate.Trigger
	logger      zerolog.Logger
	lastSaveErr error
}

func New(persister Persister, trigger *celebrate.Trigger, logger zerolog.Logger) *Store {
	return &Store{
		items:     []model.Item{},
		persister: persister,
		trigger:   trigger,
		logger:    logger,
	}
}

// Hydrate replaces the in-memory list with the stored one. A missing or
// unreadable stored list leaves the store empty.
func (s *Store) Hydrate(ctx context.Context) {
	loaded := []model.Item{}
	if s.persister != nil {
		if items, ok := s.persister.Load(ctx); ok {
			loaded = model.Clone(items)
		}
		if stored := s.persister.LoadLastID(ctx); stored > s.savedLastID {
			s.savedLastID = stored
		}
		if s.savedLastID > s.lastID {
			s.lastID = s.savedLastID
		}
	}
	s.items = loaded
	if next := model.NextID(loaded) - 1; next > s.lastID {
		s.lastID = next
	}
	s.logger.Debug().Int("items", len(loaded)).Msg("store hydrated")
}

// Reload rehydrates from storage and reports whether the list changed.
func (s *Store) Reload(ctx context.Context) bool {
	prev := s.items
	s.Hydrate(ctx)
	return !equal(prev, s.items)
}

func (s *Store) Items() []model.Item { return model.Clone(s.items) }

func (s *Store) Len() int { return len(s.items) }

func (s *Store) Get(id int) (model.Item, bool) {
	idx := model.IndexOf(s.items, id)
	if idx < 0 {
		return model.Item{}, false
	}
	return s.items[idx], true
}

func (s *Store) LastSaveErr() error { return s.lastSaveErr }

// Create appends a new unchecked item. Whitespace-only descriptions are
// rejected without touching the list. Invalid UTF-8 is replaced up front so
// the stored text matches what is held in memory. Ids are never handed out
// twice, even after the holder was removed.
func (s *Store) Create(ctx context.Context, description string) (model.Item, bool) {
	trimmed := strings.TrimSpace(strings.ToValidUTF8(description, "\uFFFD"))
	if trimmed == "" {
		return model.Item{}, false
	}
	id := model.NextID(s.items)
	if id <= s.lastID {
		id = s.lastID + 1
	}
	item := model.Item{ID: id, Description: trimmed}
	next := make([]model.Item, 0, len(s.items)+1)
	next = append(next, s.items...)
	next = append(next, item)
	s.lastID = id
	s.commit(ctx, next, "create", id)
	return item, true
}

// Toggle flips checked on the item with id. The celebration trigger sees the
// list from before and after the flip.
func (s *Store) Toggle(ctx context.Context, id int) (ToggleResult, bool) {
	idx := model.IndexOf(s.items, id)
	if idx < 0 {
		return ToggleResult{}, false
	}
	before := s.items
	next := make([]model.Item, len(before))
	for i, item := range before {
		if i == idx {
			item.Checked = !item.Checked
		}
		next[i] = item
	}
	s.commit(ctx, next, "toggle", id)

	res := ToggleResult{Item: next[idx]}
	if s.trigger != nil {
		if plan, ok := s.trigger.Evaluate(before, next); ok {
			res.Celebration = &plan
			s.logger.Debug().Str("style", plan.Style.String()).Int("anchor", plan.Anchor).Msg("celebration")
		}
	}
	return res, true
}

func (s *Store) Remove(ctx context.Context, id int) bool {
	idx := model.IndexOf(s.items, id)
	if idx < 0 {
		return false
	}
	next := make([]model.Item, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	s.commit(ctx, next, "remove", id)
	return true
}

func (s *Store) commit(ctx context.Context, next []model.Item, op string, id int) {
	s.items = next
	s.lastSaveErr = nil
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, next); err != nil {
		s.lastSaveErr = err
		s.logger.Error().Err(err).Str("op", op).Int("id", id).Msg("persist list")
		return
	}
	if s.lastID > s.savedLastID {
		if err := s.persister.SaveLastID(ctx, s.lastID); err != nil {
			s.lastSaveErr = err
			s.logger.Error().Err(err).Int("last_id", s.lastID).Msg("persist last id")
			return
		}
		s.savedLastID = s.lastID
	}
	s.logger.Debug().Str("op", op).Int("id", id).Int("items", len(next)).Msg("list updated")
}

func equal(a, b []model.Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
