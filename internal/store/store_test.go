package store

import (
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/starford/wunjo/internal/apperr"
)

// openSQLite creates a temporary SQLite store cleaned up with the test.
func openSQLite(t *testing.T) Store {
	t.Helper()
	f, err := os.CreateTemp("", "wunjo-store-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// both runs a subtest against the SQLite and the in-memory implementation,
// which must behave identically.
func both(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, openSQLite(t)) })
	t.Run("memory", func(t *testing.T) { fn(t, NewMemory()) })
}

func TestPutAndGet(t *testing.T) {
	both(t, func(t *testing.T, s Store) {
		doc := Document{"name": "Soup", "ingredients": []string{"onion"}}
		if err := s.Put("recipes", "r1", doc); err != nil {
			t.Fatalf("Put: %v", err)
		}
		got, err := s.Get("recipes", "r1")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got["name"] != "Soup" {
			t.Errorf("name = %v", got["name"])
		}
		if got["id"] != "r1" {
			t.Errorf("id = %v, want injected r1", got["id"])
		}
	})
}

func TestGetMissing(t *testing.T) {
	both(t, func(t *testing.T, s Store) {
		_, err := s.Get("recipes", "nope")
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestAddAssignsDistinctIDs(t *testing.T) {
	both(t, func(t *testing.T, s Store) {
		id1, err := s.Add("recipes", Document{"name": "A"})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		id2, err := s.Add("recipes", Document{"name": "B"})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if id1 == "" || id1 == id2 {
			t.Errorf("ids = %q, %q", id1, id2)
		}
		if _, err := s.Get("recipes", id1); err != nil {
			t.Errorf("Get added doc: %v", err)
		}
	})
}

func TestDelete(t *testing.T) {
	both(t, func(t *testing.T, s Store) {
		_ = s.Put("recipes", "r1", Document{"name": "A"})
		if err := s.Delete("recipes", "r1"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := s.Get("recipes", "r1"); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("Get after delete: %v", err)
		}
		if err := s.Delete("recipes", "r1"); !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("second Delete: %v, want ErrNotFound", err)
		}
	})
}

func TestListAllPreservesInsertionOrder(t *testing.T) {
	both(t, func(t *testing.T, s Store) {
		for _, name := range []string{"A", "B", "C"} {
			if err := s.Put("recipes", name, Document{"name": name}); err != nil {
				t.Fatalf("Put %s: %v", name, err)
			}
		}
		docs, err := s.ListAll("recipes")
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		var got []string
		for _, d := range docs {
			got = append(got, d["name"].(string))
		}
		if want := []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
			t.Errorf("order = %v, want %v", got, want)
		}
	})
}

func TestListAllScopedToCollection(t *testing.T) {
	both(t, func(t *testing.T, s Store) {
		_ = s.Put("recipes", "r1", Document{"name": "A"})
		_ = s.Put("meta", "tags", Document{"courses": []string{}})
		docs, err := s.ListAll("recipes")
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if len(docs) != 1 {
			t.Errorf("len = %d, want 1", len(docs))
		}
	})
}

func TestEnsureIsIdempotent(t *testing.T) {
	both(t, func(t *testing.T, s Store) {
		if err := s.Ensure("meta", "tags", Document{"courses": []string{"brunch"}}); err != nil {
			t.Fatalf("Ensure: %v", err)
		}
		// Second Ensure must not clobber the existing document.
		if err := s.Ensure("meta", "tags", Document{"courses": []string{}}); err != nil {
			t.Fatalf("second Ensure: %v", err)
		}
		doc, err := s.Get("meta", "tags")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		courses, _ := doc["courses"].([]any)
		if len(courses) != 1 || courses[0] != "brunch" {
			t.Errorf("courses = %v, want [brunch]", doc["courses"])
		}
	})
}

func TestUnionAppend(t *testing.T) {
	both(t, func(t *testing.T, s Store) {
		_ = s.Put("meta", "tags", Document{"courses": []string{"dinner"}})
		if err := s.UnionAppend("meta", "tags", "courses", "brunch"); err != nil {
			t.Fatalf("UnionAppend: %v", err)
		}
		// Appending an existing value is a no-op.
		if err := s.UnionAppend("meta", "tags", "courses", "brunch"); err != nil {
			t.Fatalf("second UnionAppend: %v", err)
		}
		doc, err := s.Get("meta", "tags")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		courses, _ := doc["courses"].([]any)
		if len(courses) != 2 || courses[0] != "dinner" || courses[1] != "brunch" {
			t.Errorf("courses = %v, want [dinner brunch]", doc["courses"])
		}
	})
}

func TestUnionAppendCreatesMissingField(t *testing.T) {
	both(t, func(t *testing.T, s Store) {
		_ = s.Put("meta", "tags", Document{})
		if err := s.UnionAppend("meta", "tags", "categories", "soup"); err != nil {
			t.Fatalf("UnionAppend: %v", err)
		}
		doc, _ := s.Get("meta", "tags")
		cats, _ := doc["categories"].([]any)
		if len(cats) != 1 || cats[0] != "soup" {
			t.Errorf("categories = %v, want [soup]", doc["categories"])
		}
	})
}

func TestUnionAppendMissingDocument(t *testing.T) {
	both(t, func(t *testing.T, s Store) {
		err := s.UnionAppend("meta", "missing", "courses", "dinner")
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestDocumentBodyNeverStoresID(t *testing.T) {
	both(t, func(t *testing.T, s Store) {
		// Write a document that carries a stale id key; it must be stripped
		// on the way in and re-injected from the key on the way out.
		_ = s.Put("recipes", "real", Document{"id": "stale", "name": "A"})
		doc, err := s.Get("recipes", "real")
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if doc["id"] != "real" {
			t.Errorf("id = %v, want real", doc["id"])
		}
	})
}
