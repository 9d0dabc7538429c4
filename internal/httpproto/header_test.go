package httpproto_test

import (
	"testing"

	"github.com/coregate/originwire/internal/httpproto"
)

func TestHeader_CaseInsensitiveLookupPreservesEmitCasing(t *testing.T) {
	h := httpproto.NewHeader()
	h.Add("Content-Type", "text/plain")

	if _, ok := h.Get("content-type"); !ok {
		t.Fatal("Get(\"content-type\") not found, want found")
	}
	if _, ok := h.Get("CONTENT-TYPE"); !ok {
		t.Fatal("Get(\"CONTENT-TYPE\") not found, want found")
	}

	keys := h.Keys()
	if len(keys) != 1 || keys[0] != "Content-Type" {
		t.Fatalf("Keys() = %v, want original casing [Content-Type]", keys)
	}
}

func TestHeader_AddAccumulatesMultipleValues(t *testing.T) {
	h := httpproto.NewHeader()
	h.Add("X-Forwarded-For", "1.1.1.1")
	h.Add("x-forwarded-for", "2.2.2.2")

	values := h.Values("X-Forwarded-For")
	if len(values) != 2 || values[0] != "1.1.1.1" || values[1] != "2.2.2.2" {
		t.Fatalf("Values = %v, want [1.1.1.1 2.2.2.2]", values)
	}

	last, ok := h.Get("X-Forwarded-For")
	if !ok || last != "2.2.2.2" {
		t.Fatalf("Get = %q, %v, want 2.2.2.2, true", last, ok)
	}
}

func TestHeader_Set_ReplacesExistingValues(t *testing.T) {
	h := httpproto.NewHeader()
	h.Add("Connection", "keep-alive")
	h.Set("Connection", "close")

	values := h.Values("Connection")
	if len(values) != 1 || values[0] != "close" {
		t.Fatalf("Values after Set = %v, want [close]", values)
	}
}

func TestHeader_Contains_TokenMatchIsCaseInsensitiveAndCommaSplit(t *testing.T) {
	h := httpproto.NewHeader()
	h.Add("Connection", "Keep-Alive, Upgrade")

	if !h.Contains("Connection", "upgrade") {
		t.Error("Contains(\"Connection\", \"upgrade\") = false, want true")
	}
	if !h.Contains("connection", "KEEP-ALIVE") {
		t.Error("Contains(\"connection\", \"KEEP-ALIVE\") = false, want true")
	}
	if h.Contains("Connection", "close") {
		t.Error("Contains(\"Connection\", \"close\") = true, want false")
	}
}

func TestHeader_Clear_EmptiesInPlace(t *testing.T) {
	h := httpproto.NewHeader()
	h.Add("A", "1")
	h.Add("B", "2")
	h.Clear()

	if h.Has("A") || h.Has("B") {
		t.Fatal("Clear did not remove existing keys")
	}
	if len(h.Keys()) != 0 {
		t.Fatalf("Keys() after Clear = %v, want empty", h.Keys())
	}

	h.Add("C", "3")
	if v, ok := h.Get("C"); !ok || v != "3" {
		t.Fatalf("Header unusable after Clear: Get(C) = %q, %v", v, ok)
	}
}

func TestHeader_GetDefault(t *testing.T) {
	h := httpproto.NewHeader()
	if got := h.GetDefault("Missing", "fallback"); got != "fallback" {
		t.Errorf("GetDefault = %q, want fallback", got)
	}
	h.Add("Present", "value")
	if got := h.GetDefault("Present", "fallback"); got != "value" {
		t.Errorf("GetDefault = %q, want value", got)
	}
}
