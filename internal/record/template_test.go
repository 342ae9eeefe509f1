package record

import (
	"reflect"
	"testing"
)

func TestNewTemplate_RoundTrip(t *testing.T) {
	tokens := []Token{
		{IsPath: false, Dynamic: 10},
		{IsPath: true, Dynamic: 20},
		{IsPath: false, Dynamic: 30},
		{IsPath: true, Dynamic: 40},
		{IsPath: false, Dynamic: 50},
		{IsPath: true, Dynamic: 60},
	}

	tmpl := NewTemplate(tokens)

	if !tmpl.IsTemplate() {
		t.Fatal("IsTemplate() = false, want true")
	}
	if tmpl.NumTokens() != 6 {
		t.Fatalf("NumTokens() = %d, want 6", tmpl.NumTokens())
	}
	if got := tmpl.Tokens(); !reflect.DeepEqual(got, tokens) {
		t.Errorf("Tokens() = %+v, want %+v", got, tokens)
	}
}

func TestNewTemplate_SingleToken(t *testing.T) {
	tokens := []Token{{IsPath: true, Dynamic: 99}}
	tmpl := NewTemplate(tokens)

	if tmpl.NumTokens() != 1 {
		t.Fatalf("NumTokens() = %d, want 1", tmpl.NumTokens())
	}
	if got := tmpl.Token(0); got != tokens[0] {
		t.Errorf("Token(0) = %+v, want %+v", got, tokens[0])
	}
}

func TestNewTemplate_Empty(t *testing.T) {
	tmpl := NewTemplate(nil)
	if !tmpl.IsTemplate() {
		t.Fatal("IsTemplate() = false, want true for an initialized zero-token template")
	}
	if tmpl.NumTokens() != 0 {
		t.Fatalf("NumTokens() = %d, want 0", tmpl.NumTokens())
	}
}

func TestNewTemplate_PanicsOverLimit(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for > MaxTemplateTokens tokens")
		}
	}()
	tokens := make([]Token, MaxTemplateTokens+1)
	NewTemplate(tokens)
}

func TestTemplate_ZeroValueIsNotATemplate(t *testing.T) {
	var tmpl Template
	if tmpl.IsTemplate() {
		t.Error("zero-value Template should report IsTemplate() = false")
	}
}
