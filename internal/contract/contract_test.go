package contract

import "testing"

func TestExtract_WellFormed(t *testing.T) {
	resp, ok := Extract(`{"reply": "Your order is on the way!", "sentiment": "POSITIVO", "score": 0.8}`)
	if !ok {
		t.Fatal("Extract returned no result for well-formed JSON")
	}
	if resp.Reply != "Your order is on the way!" {
		t.Errorf("Reply = %q", resp.Reply)
	}
	if resp.Sentiment != "POSITIVO" {
		t.Errorf("Sentiment = %q, want POSITIVO", resp.Sentiment)
	}
	if resp.Score != 0.8 {
		t.Errorf("Score = %v, want 0.8", resp.Score)
	}
}

func TestExtract_Salvage(t *testing.T) {
	resp, ok := Extract(`Sure! {"reply": "hi", "sentiment": "NEUTRO", "score": 0.0} thanks`)
	if !ok {
		t.Fatal("Extract returned no result for salvageable text")
	}
	if resp.Reply != "hi" || resp.Sentiment != "NEUTRO" || resp.Score != 0.0 {
		t.Errorf("salvaged response = %+v", resp)
	}
}

func TestExtract_FallbackWrap(t *testing.T) {
	raw := "Just plain text, no JSON at all"
	resp, ok := Extract(raw)
	if !ok {
		t.Fatal("Extract returned no result for plain text")
	}
	if resp.Reply != raw {
		t.Errorf("Reply = %q, want raw text", resp.Reply)
	}
	if resp.Sentiment != "NEUTRO" || resp.Score != 0.0 {
		t.Errorf("fallback should be neutral, got %+v", resp)
	}
}

func TestExtract_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		if resp, ok := Extract(text); ok || resp != nil {
			t.Errorf("Extract(%q) = (%+v, %v), want (nil, false)", text, resp, ok)
		}
	}
}

func TestExtract_BrokenBracesWrapAsText(t *testing.T) {
	raw := `{"reply": "never closed`
	resp, ok := Extract(raw)
	if !ok {
		t.Fatal("Extract returned no result")
	}
	if resp.Reply != raw {
		t.Errorf("broken JSON should fall back to raw text wrap, got %+v", resp)
	}
	if resp.Sentiment != "NEUTRO" {
		t.Errorf("Sentiment = %q, want NEUTRO", resp.Sentiment)
	}
}

func TestExtract_SurroundingWhitespace(t *testing.T) {
	resp, ok := Extract("  \n" + `{"reply": "ok", "sentiment": "NEGATIVO", "score": -0.7}` + "\n ")
	if !ok {
		t.Fatal("Extract returned no result")
	}
	if resp.Sentiment != "NEGATIVO" || resp.Score != -0.7 {
		t.Errorf("response = %+v", resp)
	}
}

func TestExtract_MissingKeysStillParse(t *testing.T) {
	// A valid object without a reply parses; the caller treats the empty
	// reply as a retry condition.
	resp, ok := Extract(`{"sentiment": "POSITIVO"}`)
	if !ok {
		t.Fatal("Extract returned no result")
	}
	if resp.Reply != "" {
		t.Errorf("Reply = %q, want empty", resp.Reply)
	}
	if resp.Sentiment != "POSITIVO" {
		t.Errorf("Sentiment = %q", resp.Sentiment)
	}
}

func TestExtract_NestedBraces(t *testing.T) {
	resp, ok := Extract(`noise {"reply": "use {pix}", "sentiment": "NEUTRO", "score": 0.1} noise`)
	if !ok {
		t.Fatal("Extract returned no result")
	}
	// First '{' to last '}' spans the full object including the inner braces.
	if resp.Reply != "use {pix}" {
		t.Errorf("Reply = %q", resp.Reply)
	}
}
