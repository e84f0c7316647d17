package catalog

import (
	"errors"
	"testing"
)

type memKV struct {
	items  map[string]string
	writes int
	err    error
}

func newMemKV() *memKV {
	return &memKV{items: make(map[string]string)}
}

func (m *memKV) GetItem(key string) (string, bool) {
	v, ok := m.items[key]
	return v, ok
}

func (m *memKV) SetItem(key, value string) error {
	if m.err != nil {
		return m.err
	}
	m.writes++
	m.items[key] = value
	return nil
}

func TestFavoriteSet_ToggleIsItsOwnInverse(t *testing.T) {
	sets := []FavoriteSet{
		{},
		NewFavoriteSet("EURUSD"),
		NewFavoriteSet("R_100", "EURUSD", "USDJPY"),
	}
	for _, f := range sets {
		for _, s := range []string{"EURUSD", "R_100", "NEW"} {
			if got := f.Toggle(s).Toggle(s); !got.Equal(f) {
				t.Errorf("toggle(toggle(%v, %s)) = %v", f.Symbols(), s, got.Symbols())
			}
		}
	}
}

func TestFavoriteSet_ToggleDoesNotMutate(t *testing.T) {
	f := NewFavoriteSet("A", "B")
	_ = f.Toggle("A")
	_ = f.Toggle("C")

	if !f.Equal(NewFavoriteSet("A", "B")) {
		t.Errorf("Original set mutated: %v", f.Symbols())
	}
}

func TestNewFavoriteSet_Dedupes(t *testing.T) {
	f := NewFavoriteSet("A", "A", "", "B")
	if f.Len() != 2 {
		t.Errorf("Expected 2 symbols, got %v", f.Symbols())
	}
}

func TestFavoritesStore_Load(t *testing.T) {
	t.Run("missing key yields empty set", func(t *testing.T) {
		s := NewFavoritesStore(newMemKV(), FavoritesKey, nil)
		if s.Set().Len() != 0 {
			t.Errorf("Expected empty set, got %v", s.Set().Symbols())
		}
	})

	t.Run("malformed value yields empty set", func(t *testing.T) {
		kv := newMemKV()
		kv.items[FavoritesKey] = "{not json"
		s := NewFavoritesStore(kv, FavoritesKey, nil)
		if s.Set().Len() != 0 {
			t.Errorf("Expected empty set, got %v", s.Set().Symbols())
		}
	})

	t.Run("persisted list is loaded", func(t *testing.T) {
		kv := newMemKV()
		kv.items[FavoritesKey] = `["EURUSD","R_100"]`
		s := NewFavoritesStore(kv, FavoritesKey, nil)
		if !s.IsFavorite("EURUSD") || !s.IsFavorite("R_100") {
			t.Errorf("Expected persisted favorites, got %v", s.Set().Symbols())
		}
	})
}

func TestFavoritesStore_TogglePersistsImmediately(t *testing.T) {
	kv := newMemKV()
	s := NewFavoritesStore(kv, FavoritesKey, nil)

	s.Toggle("EURUSD")
	if kv.writes != 1 || kv.items[FavoritesKey] != `["EURUSD"]` {
		t.Errorf("Expected one write of [\"EURUSD\"], got %d writes: %q", kv.writes, kv.items[FavoritesKey])
	}

	s.Toggle("EURUSD")
	if kv.writes != 2 || kv.items[FavoritesKey] != `[]` {
		t.Errorf("Expected empty list persisted, got %q", kv.items[FavoritesKey])
	}

	// Reload survives a "page reload".
	s.Toggle("R_100")
	reloaded := NewFavoritesStore(kv, FavoritesKey, nil)
	if !reloaded.IsFavorite("R_100") {
		t.Error("Favorites should survive reload")
	}
}

func TestFavoritesStore_PersistFailureKeepsState(t *testing.T) {
	kv := newMemKV()
	kv.err = errors.New("quota exceeded")
	s := NewFavoritesStore(kv, FavoritesKey, nil)

	s.Toggle("EURUSD")

	if !s.IsFavorite("EURUSD") {
		t.Error("In-memory set should still reflect the toggle")
	}
}
