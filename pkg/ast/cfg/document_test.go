package cfg

import (
	"reflect"
	"testing"
)

func TestAddIsFirstComeFirstServed(t *testing.T) {
	doc := NewDocument()

	first, ok := doc.Add("a")
	if !ok || first == nil {
		t.Fatalf("first insert failed")
	}
	first.PutValue("x", "1")

	second, ok := doc.Add("a")
	if ok {
		t.Fatalf("duplicate insert reported success")
	}
	if second != first {
		t.Fatalf("duplicate insert did not return the existing record")
	}
	if doc.Len() != 1 {
		t.Fatalf("Len = %d, want 1", doc.Len())
	}
}

func TestNamesKeepInsertionOrder(t *testing.T) {
	doc := NewDocument()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		doc.Add(name)
	}
	doc.Add("alpha") // duplicate must not reorder

	if got := doc.Names(); !reflect.DeepEqual(got, []string{"zeta", "alpha", "mid"}) {
		t.Fatalf("Names = %v", got)
	}
}

func TestPutValueKeepsFirstBinding(t *testing.T) {
	section := NewSection()
	if !section.PutValue("k", "first") {
		t.Fatalf("first put failed")
	}
	if section.PutValue("k", "second") {
		t.Fatalf("duplicate put reported success")
	}
	if section.Values["k"] != "first" {
		t.Fatalf("first-seen binding lost: %q", section.Values["k"])
	}
	if got := section.Keys(); !reflect.DeepEqual(got, []string{"k"}) {
		t.Fatalf("Keys = %v", got)
	}
}

func TestSetValueOnlyReplacesExisting(t *testing.T) {
	section := NewSection()
	section.PutValue("k", "v")

	if !section.SetValue("k", "w") || section.Values["k"] != "w" {
		t.Fatalf("replace failed")
	}
	if section.SetValue("missing", "v") {
		t.Fatalf("SetValue created a key")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	doc := NewDocument()
	section, _ := doc.Add("a")
	section.PutValue("k", "v")
	section.Inheritances = []string{"base"}

	snapshot := doc.Snapshot()
	snapshot["a"].Values["k"] = "tampered"
	snapshot["a"].Inheritances[0] = "tampered"

	if section.Values["k"] != "v" || section.Inheritances[0] != "base" {
		t.Fatalf("snapshot shares state with the document")
	}
}
