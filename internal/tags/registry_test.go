package tags

import (
	"errors"
	"reflect"
	"testing"

	"github.com/starford/wunjo/internal/apperr"
	"github.com/starford/wunjo/internal/store"
)

func TestGet_LazilyCreatesEmptyRegistry(t *testing.T) {
	r := NewRegistry(store.NewMemory())
	got, err := r.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Courses == nil || len(got.Courses) != 0 {
		t.Errorf("Courses = %v, want empty", got.Courses)
	}
	if got.Categories == nil || len(got.Categories) != 0 {
		t.Errorf("Categories = %v, want empty", got.Categories)
	}
}

func TestGet_IsIdempotent(t *testing.T) {
	s := store.NewMemory()
	r := NewRegistry(s)
	if err := r.Add(FieldCourses, "brunch"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// A later Get must not re-initialize the registry and lose the tag.
	got, err := r.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if want := []string{"brunch"}; !reflect.DeepEqual(got.Courses, want) {
		t.Errorf("Courses = %v, want %v", got.Courses, want)
	}
}

func TestAdd_UnionIsIdempotent(t *testing.T) {
	r := NewRegistry(store.NewMemory())
	for i := 0; i < 2; i++ {
		if err := r.Add(FieldCourses, "brunch"); err != nil {
			t.Fatalf("Add #%d: %v", i+1, err)
		}
	}
	got, err := r.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if want := []string{"brunch"}; !reflect.DeepEqual(got.Courses, want) {
		t.Errorf("Courses = %v, want exactly one brunch", got.Courses)
	}
}

func TestAdd_FieldsAreIndependent(t *testing.T) {
	r := NewRegistry(store.NewMemory())
	_ = r.Add(FieldCourses, "dinner")
	_ = r.Add(FieldCategories, "soup")
	got, err := r.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got.Courses, []string{"dinner"}) {
		t.Errorf("Courses = %v", got.Courses)
	}
	if !reflect.DeepEqual(got.Categories, []string{"soup"}) {
		t.Errorf("Categories = %v", got.Categories)
	}
}

func TestAdd_RejectsUnknownFieldAndEmptyValue(t *testing.T) {
	r := NewRegistry(store.NewMemory())
	if err := r.Add("cuisines", "thai"); !errors.Is(err, apperr.ErrMalformedInput) {
		t.Errorf("unknown field err = %v, want ErrMalformedInput", err)
	}
	if err := r.Add(FieldCourses, "   "); !errors.Is(err, apperr.ErrMalformedInput) {
		t.Errorf("empty value err = %v, want ErrMalformedInput", err)
	}
}

func TestAdd_TrimsValue(t *testing.T) {
	r := NewRegistry(store.NewMemory())
	if err := r.Add(FieldCategories, "  baking "); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, _ := r.Get()
	if want := []string{"baking"}; !reflect.DeepEqual(got.Categories, want) {
		t.Errorf("Categories = %v, want %v", got.Categories, want)
	}
}
