package timeframe

import "testing"

func TestRegistrySize(t *testing.T) {
	labels := LabelsInOrder()
	if len(labels) != 8 {
		t.Fatalf("Expected 8 timeframes, got %d", len(labels))
	}
}

func TestNoDuplicates(t *testing.T) {
	seenLabels := map[string]bool{}
	seenCodes := map[string]bool{}
	for _, e := range Entries() {
		if seenLabels[e.Label] {
			t.Errorf("Duplicate label %q", e.Label)
		}
		if seenCodes[e.Code] {
			t.Errorf("Duplicate code %q", e.Code)
		}
		seenLabels[e.Label] = true
		seenCodes[e.Code] = true
	}
}

func TestBidirectionalMapping(t *testing.T) {
	for _, e := range Entries() {
		code, ok := CodeFor(e.Label)
		if !ok || code != e.Code {
			t.Errorf("CodeFor(%q) = %q, %v; want %q", e.Label, code, ok, e.Code)
		}
		label, ok := LabelFor(e.Code)
		if !ok || label != e.Label {
			t.Errorf("LabelFor(%q) = %q, %v; want %q", e.Code, label, ok, e.Label)
		}
	}
}

func TestUnknownLookups(t *testing.T) {
	if _, ok := CodeFor("3 fortnights"); ok {
		t.Error("Expected CodeFor to reject an unknown label")
	}
	if _, ok := LabelFor("Q"); ok {
		t.Error("Expected LabelFor to reject an unknown code")
	}
}

func TestIntervalFallback(t *testing.T) {
	daily := IntervalFor("D")
	if daily.Scanner != "1d" || daily.Kline != "1d" {
		t.Fatalf("Unexpected daily interval: %+v", daily)
	}
	if got := IntervalFor("nonsense"); got != daily {
		t.Errorf("IntervalFor(unknown) = %+v, want daily fallback %+v", got, daily)
	}
}

func TestOrderStability(t *testing.T) {
	first := LabelsInOrder()
	second := LabelsInOrder()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Label order changed between calls at index %d", i)
		}
	}
	if first[0] != "5 minutes" || first[len(first)-1] != "1 month" {
		t.Errorf("Unexpected ordering: first=%q last=%q", first[0], first[len(first)-1])
	}
}
