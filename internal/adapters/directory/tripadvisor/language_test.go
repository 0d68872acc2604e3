package tripadvisor

import (
	"errors"
	"testing"
)

func TestLanguages_ClosedSet(t *testing.T) {
	all := Languages()
	if len(all) != 45 {
		t.Fatalf("got %d languages", len(all))
	}
	seen := map[string]bool{}
	for _, l := range all {
		code := l.String()
		if seen[code] {
			t.Fatalf("duplicate code %q", code)
		}
		seen[code] = true
		back, err := ParseLanguage(code)
		if err != nil || back != l {
			t.Fatalf("ParseLanguage(%q)=%v,%v want %v", code, back, err, l)
		}
	}
	if all[0] != LangEnglish {
		t.Fatal("english must be first")
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"zh_TW", LangChineseTaiwan},
		{"en-au", LangEnglishAustralia},
		{"EN_UK", LangEnglishUnitedKingdom},
		{"en-GB", LangEnglishUnitedKingdom},
		{"he", LangHebrew},
		{"iw", LangHebrew},
		{"id", LangIndonesian},
		{"pt_PT", LangPortuguesePortugal},
	}
	for _, tc := range tests {
		got, err := ParseLanguage(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseLanguage(%q)=%v,%v want %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseLanguage("klingon"); !errors.Is(err, ErrUnknownEnum) {
		t.Fatalf("expected ErrUnknownEnum, got %v", err)
	}
}

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   Language
	}{
		{"", LangEnglish},
		{"fr-CA", LangFrenchCanada},
		{"da, en;q=0.5", LangDanish},
		{"xx-YY", LangEnglish},
		{";;;", LangEnglish},
	}
	for _, tc := range tests {
		if got := MatchLanguage(tc.header); got != tc.want {
			t.Fatalf("MatchLanguage(%q)=%v want %v", tc.header, got, tc.want)
		}
	}
}

func TestLanguage_Text(t *testing.T) {
	b, err := LangEnglishUnitedKingdom.MarshalText()
	if err != nil || string(b) != "en_UK" {
		t.Fatalf("got %s,%v", b, err)
	}
	var l Language
	if err := l.UnmarshalText([]byte("es-mx")); err != nil || l != LangSpanishMexico {
		t.Fatalf("got %v,%v", l, err)
	}
	if _, err := Language(200).MarshalText(); err == nil {
		t.Fatal("expected error for out of range language")
	}
	if Language(200).Tag().String() != "en" {
		t.Fatal("out of range tag should fall back to english")
	}
}

func TestRadiusUnit(t *testing.T) {
	tests := []struct {
		in   string
		want RadiusUnit
	}{
		{"km", RadiusKm},
		{"Miles", RadiusMi},
		{"metres", RadiusM},
	}
	for _, tc := range tests {
		got, err := ParseRadiusUnit(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseRadiusUnit(%q)=%v,%v", tc.in, got, err)
		}
	}
	if _, err := ParseRadiusUnit("feet"); !errors.Is(err, ErrUnknownEnum) {
		t.Fatalf("feet is a geo unit but not a radius unit, got %v", err)
	}
	if RadiusUnit(9).String() != "RadiusUnit(9)" {
		t.Fatal("out of range string")
	}
}

func TestPhotoSource(t *testing.T) {
	for _, p := range PhotoSources() {
		back, err := ParsePhotoSource(p.String())
		if err != nil || back != p {
			t.Fatalf("round trip %v: %v,%v", p, back, err)
		}
	}
	if p, err := ParsePhotoSource("traveler"); err != nil || p != PhotoTraveler {
		t.Fatalf("got %v,%v", p, err)
	}
	if _, err := ParsePhotoSource("drone"); !errors.Is(err, ErrUnknownEnum) {
		t.Fatalf("got %v", err)
	}
}
