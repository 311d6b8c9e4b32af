package assets

import "testing"

func TestQuotes_LoveCorpus(t *testing.T) {
	texts, err := Quotes("love")
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	if len(texts) == 0 {
		t.Fatal("corpus must not be empty")
	}
	seen := make(map[string]bool, len(texts))
	for _, q := range texts {
		if q == "" {
			t.Fatal("empty quote in corpus")
		}
		if seen[q] {
			t.Fatalf("duplicate quote: %q", q)
		}
		seen[q] = true
	}
}

func TestQuotes_UnknownCategory(t *testing.T) {
	if _, err := Quotes("stoicism"); err == nil {
		t.Fatal("expected error for missing corpus")
	}
}
