package tripadvisor

import (
	"fmt"

	"tripmaker/internal/core/normalize"

	"golang.org/x/text/language"
)

// Language is a content language the directory can localize into
type Language uint8

const (
	LangEnglish Language = iota
	LangArabic
	LangChinese
	LangChineseTaiwan
	LangDanish
	LangDutch
	LangEnglishAustralia
	LangEnglishCanada
	LangEnglishHongKong
	LangEnglishIndia
	LangEnglishIreland
	LangEnglishMalaysia
	LangEnglishNewZealand
	LangEnglishPhilippines
	LangEnglishSingapore
	LangEnglishSouthAfrica
	LangEnglishUnitedKingdom
	LangFrench
	LangFrenchBelgium
	LangFrenchCanada
	LangFrenchSwitzerland
	LangGerman
	LangGermanAustria
	LangGreek
	LangHebrew
	LangIndonesian
	LangItalian
	LangItalianSwitzerland
	LangJapanese
	LangKorean
	LangNorwegian
	LangPortuguese
	LangPortuguesePortugal
	LangRussian
	LangSpanish
	LangSpanishArgentina
	LangSpanishChile
	LangSpanishColombia
	LangSpanishMexico
	LangSpanishPeru
	LangSpanishVenezuela
	LangSwedish
	LangThai
	LangTurkish
	LangVietnamese
)

// code is the directory's wire token, tag the BCP 47 form used for negotiation
var languages = [...]struct {
	code string
	tag  string
}{
	LangEnglish:              {"en", "en"},
	LangArabic:               {"ar", "ar"},
	LangChinese:              {"zh", "zh"},
	LangChineseTaiwan:        {"zh_TW", "zh-TW"},
	LangDanish:               {"da", "da"},
	LangDutch:                {"nl", "nl"},
	LangEnglishAustralia:     {"en_AU", "en-AU"},
	LangEnglishCanada:        {"en_CA", "en-CA"},
	LangEnglishHongKong:      {"en_HK", "en-HK"},
	LangEnglishIndia:         {"en_IN", "en-IN"},
	LangEnglishIreland:       {"en_IE", "en-IE"},
	LangEnglishMalaysia:      {"en_MY", "en-MY"},
	LangEnglishNewZealand:    {"en_NZ", "en-NZ"},
	LangEnglishPhilippines:   {"en_PH", "en-PH"},
	LangEnglishSingapore:     {"en_SG", "en-SG"},
	LangEnglishSouthAfrica:   {"en_ZA", "en-ZA"},
	LangEnglishUnitedKingdom: {"en_UK", "en-GB"},
	LangFrench:               {"fr", "fr"},
	LangFrenchBelgium:        {"fr_BE", "fr-BE"},
	LangFrenchCanada:         {"fr_CA", "fr-CA"},
	LangFrenchSwitzerland:    {"fr_CH", "fr-CH"},
	LangGerman:               {"de", "de"},
	LangGermanAustria:        {"de_AT", "de-AT"},
	LangGreek:                {"el", "el"},
	LangHebrew:               {"iw", "he"},
	LangIndonesian:           {"in", "id"},
	LangItalian:              {"it", "it"},
	LangItalianSwitzerland:   {"it_CH", "it-CH"},
	LangJapanese:             {"ja", "ja"},
	LangKorean:               {"ko", "ko"},
	LangNorwegian:            {"no", "no"},
	LangPortuguese:           {"pt", "pt"},
	LangPortuguesePortugal:   {"pt_PT", "pt-PT"},
	LangRussian:              {"ru", "ru"},
	LangSpanish:              {"es", "es"},
	LangSpanishArgentina:     {"es_AR", "es-AR"},
	LangSpanishChile:         {"es_CL", "es-CL"},
	LangSpanishColombia:      {"es_CO", "es-CO"},
	LangSpanishMexico:        {"es_MX", "es-MX"},
	LangSpanishPeru:          {"es_PE", "es-PE"},
	LangSpanishVenezuela:     {"es_VE", "es-VE"},
	LangSwedish:              {"sv", "sv"},
	LangThai:                 {"th", "th"},
	LangTurkish:              {"tr", "tr"},
	LangVietnamese:           {"vi", "vi"},
}

var (
	langByKey = map[string]Language{}
	langTags  []language.Tag
	matcher   language.Matcher
)

func init() {
	langTags = make([]language.Tag, len(languages))
	for i, l := range languages {
		langByKey[normalize.Key(l.code)] = Language(i)
		langTags[i] = language.MustParse(l.tag)
	}
	// LangEnglish is first so it is the matcher's fallback
	matcher = language.NewMatcher(langTags)
}

// Languages lists every language in declaration order
func Languages() []Language {
	out := make([]Language, len(languages))
	for i := range languages {
		out[i] = Language(i)
	}
	return out
}

// ParseLanguage accepts the wire code ("zh_TW", "en-au") or an exact BCP 47 tag ("en-GB", "he")
func ParseLanguage(s string) (Language, error) {
	if l, ok := langByKey[normalize.Key(s)]; ok {
		return l, nil
	}
	if t, err := language.Parse(s); err == nil {
		for i, lt := range langTags {
			if lt == t {
				return Language(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w language %q", ErrUnknownEnum, s)
}

// MatchLanguage negotiates an Accept-Language header against the closed set,
// falling back to English when nothing matches
func MatchLanguage(acceptLanguage string) Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LangEnglish
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return LangEnglish
	}
	return Language(idx)
}

// Valid reports membership in the closed set
func (l Language) Valid() bool { return int(l) < len(languages) }

// String returns the wire code
func (l Language) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Language(%d)", uint8(l))
	}
	return languages[l].code
}

// Tag returns the BCP 47 form
func (l Language) Tag() language.Tag {
	if !l.Valid() {
		return language.English
	}
	return langTags[l]
}

func (l Language) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w language %d", ErrUnknownEnum, uint8(l))
	}
	return []byte(languages[l].code), nil
}

func (l *Language) UnmarshalText(b []byte) error {
	v, err := ParseLanguage(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
