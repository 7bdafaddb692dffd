package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg != "invalid type" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_Data(t *testing.T) {
	if msg := T("unknown_key", map[string]string{"key": "extra"}); msg != "unknown key: extra" {
		t.Fatalf("got %q", msg)
	}
	if msg := T("unknown_tag", map[string]string{"tag": "kind"}); msg != "discriminator tag has no mapping: kind" {
		t.Fatalf("got %q", msg)
	}
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("nope", nil); msg != "nope" {
		t.Fatalf("got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if msg := T("required", nil); msg != "X:required" {
		t.Fatalf("got %q", msg)
	}
}
