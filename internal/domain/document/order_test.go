package document

import (
	"testing"
)

func titles(docs []Document) []string {
	out := make([]string, len(docs))
	for i := range docs {
		out[i] = docs[i].Title()
	}
	return out
}

func mustCollator(t *testing.T) TitleComparer {
	t.Helper()
	c, err := NewTitleCollator("")
	if err != nil {
		t.Fatalf("NewTitleCollator: %v", err)
	}
	return c
}

func TestSort_OrderThenTitle(t *testing.T) {
	docs := []Document{
		Reconstruct(Params{ID: "1", Title: "Zeta", Order: intPtr(2)}),
		Reconstruct(Params{ID: "2", Title: "Alpha"}),
		Reconstruct(Params{ID: "3", Title: "Beta", Order: intPtr(1)}),
		Reconstruct(Params{ID: "4", Title: "Alpha", Order: intPtr(2)}),
	}

	Sort(docs, mustCollator(t))

	got := []string{docs[0].ID(), docs[1].ID(), docs[2].ID(), docs[3].ID()}
	want := []string{"3", "4", "1", "2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSort_AbsentOrderSortsLast(t *testing.T) {
	docs := []Document{
		Reconstruct(Params{ID: "none", Title: "A"}),
		Reconstruct(Params{ID: "big", Title: "Z", Order: intPtr(1_000_000_000)}),
	}

	Sort(docs, mustCollator(t))

	if docs[0].ID() != "big" || docs[1].ID() != "none" {
		t.Errorf("order = %s, %s; want big, none", docs[0].ID(), docs[1].ID())
	}
}

func TestSort_LocaleAwareTitles(t *testing.T) {
	docs := []Document{
		Reconstruct(Params{ID: "1", Title: "Fan manual"}),
		Reconstruct(Params{ID: "2", Title: "banana guide"}),
		Reconstruct(Params{ID: "3", Title: "Écran setup"}),
		Reconstruct(Params{ID: "4", Title: "Apple notes"}),
	}

	Sort(docs, mustCollator(t))

	// Byte order would put "Fan" and "Apple" before "banana" and "É" last.
	want := []string{"Apple notes", "banana guide", "Écran setup", "Fan manual"}
	got := titles(docs)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("titles = %v, want %v", got, want)
		}
	}
}

func TestSort_StableForFullTies(t *testing.T) {
	docs := []Document{
		Reconstruct(Params{ID: "first", Title: "Same", Order: intPtr(1)}),
		Reconstruct(Params{ID: "second", Title: "Same", Order: intPtr(1)}),
		Reconstruct(Params{ID: "third", Title: "Same", Order: intPtr(1)}),
	}

	Sort(docs, mustCollator(t))

	for i, id := range []string{"first", "second", "third"} {
		if docs[i].ID() != id {
			t.Fatalf("position %d = %s, want %s", i, docs[i].ID(), id)
		}
	}
}

func TestNewTitleCollator_InvalidTag(t *testing.T) {
	if _, err := NewTitleCollator("not a tag!!"); err == nil {
		t.Fatal("expected error for invalid tag")
	}
}

func TestCompare_Adjacent(t *testing.T) {
	cmp := Compare(mustCollator(t))
	a := Reconstruct(Params{Title: "A", Order: intPtr(1)})
	b := Reconstruct(Params{Title: "B", Order: intPtr(1)})
	c := Reconstruct(Params{Title: "A"})

	if cmp(a, b) >= 0 {
		t.Error("expected a < b by title")
	}
	if cmp(b, c) >= 0 {
		t.Error("expected explicit order before absent order")
	}
	if cmp(a, a) != 0 {
		t.Error("expected a == a")
	}
}
