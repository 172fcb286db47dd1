package service

import (
	"reflect"
	"testing"
)

func TestLanguageRoundTrip(t *testing.T) {
	tests := []struct {
		code, name string
	}{
		{"hi", "Hindi"},
		{"en", "English"},
		{"ko", "Korean"},
	}
	for _, tt := range tests {
		if got := LanguageName(tt.code); got != tt.name {
			t.Errorf("LanguageName(%q) = %q, want %q", tt.code, got, tt.name)
		}
		if got := LanguageCode(tt.name); got != tt.code {
			t.Errorf("LanguageCode(%q) = %q, want %q", tt.name, got, tt.code)
		}
	}
}

// 未知代码原样返回，未知名字返回空串
func TestLanguageUnknown(t *testing.T) {
	if got := LanguageName("xx"); got != "xx" {
		t.Errorf("LanguageName(xx) = %q, want 原样返回", got)
	}
	if got := LanguageCode("Klingon"); got != "" {
		t.Errorf("LanguageCode(Klingon) = %q, want 空串", got)
	}
}

func TestLanguageCodesOf(t *testing.T) {
	got := LanguageCodesOf([]string{"Hindi", " tamil ", "Klingon", "English"})
	want := []string{"hi", "ta", "en"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LanguageCodesOf = %v, want %v", got, want)
	}
}
