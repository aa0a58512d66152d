package bindings_test

import (
	"testing"

	"github.com/kiwi-lang/kiwi/internal/bindings"
)

func TestNew_PrePopulatesBuiltinsAndConstants(t *testing.T) {
	table := bindings.New()
	for _, name := range []string{"Type", "None", "Module", "str", "bool", "i64", "f64", "True", "False"} {
		if _, ok := table.Find(name); !ok {
			t.Errorf("expected builtin %q to be pre-populated", name)
		}
	}
	if _, ok := table.Find("nonexistent"); ok {
		t.Errorf("expected an unregistered name to not be found")
	}
}

func TestFind_MostRecentWins(t *testing.T) {
	table := bindings.New()
	table.Add("x", nil, nil, -1)
	second := table.Add("x", nil, nil, -1)
	entry, ok := table.Find("x")
	if !ok {
		t.Fatalf("expected x to be found")
	}
	if entry.StoreID != second {
		t.Errorf("expected Find to return the most recently added entry (index %d), got %d", second, entry.StoreID)
	}
}

func TestAdd_ReturnsIncreasingIndices(t *testing.T) {
	table := bindings.New()
	before := table.Len()
	a := table.Add("a", nil, nil, -1)
	b := table.Add("b", nil, nil, -1)
	if a != before || b != before+1 {
		t.Errorf("expected sequential indices starting at %d, got a=%d b=%d", before, a, b)
	}
}

func TestGetValueAndGetType_RoundTripByIndex(t *testing.T) {
	table := bindings.New()
	idx := table.Add("x", nil, nil, -1)
	if table.GetValue(idx) != nil {
		t.Errorf("expected a nil value for an entry added with nil Value")
	}
	if table.GetType(idx) != nil {
		t.Errorf("expected a nil type before SetType")
	}
}

func TestGetValue_OutOfRangeReturnsNil(t *testing.T) {
	table := bindings.New()
	if table.GetValue(-1) != nil {
		t.Errorf("expected GetValue(-1) to return nil")
	}
	if table.GetValue(table.Len()+100) != nil {
		t.Errorf("expected an out-of-range GetValue to return nil")
	}
}

func TestSetType_BackfillsMostRecentEntry(t *testing.T) {
	table := bindings.New()
	idx := table.Add("x", nil, nil, -1)
	if ok := table.SetType("x", nil); !ok {
		t.Fatalf("expected SetType to find the just-added entry")
	}
	_ = idx
	if ok := table.SetType("does-not-exist", nil); ok {
		t.Errorf("expected SetType to report false for an unknown name")
	}
}

func TestScope_ClosesByTruncatingToMark(t *testing.T) {
	table := bindings.New()
	before := table.Len()
	scope := bindings.Open(table)
	table.Add("local", nil, nil, -1)
	table.Add("local2", nil, nil, -1)
	if table.Len() != before+2 {
		t.Fatalf("expected 2 new entries inside the scope")
	}
	scope.Close()
	if table.Len() != before {
		t.Errorf("expected Close to truncate back to %d entries, got %d", before, table.Len())
	}
	if _, ok := table.Find("local"); ok {
		t.Errorf("expected Close to discard bindings added inside the scope")
	}
}

func TestScope_SetsAndRestoresNestedFlag(t *testing.T) {
	table := bindings.New()
	if table.Nested() {
		t.Fatalf("expected a fresh table to start un-nested")
	}
	scope := bindings.Open(table)
	if !table.Nested() {
		t.Errorf("expected Open to set Nested true")
	}
	scope.Close()
	if table.Nested() {
		t.Errorf("expected Close to restore Nested to its prior value")
	}
}
