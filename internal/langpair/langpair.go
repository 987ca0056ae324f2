package langpair

import (
	"slices"
	"strings"
)

// Delimiter separates the language pair prefix from the rest of a doc_id.
const Delimiter = "_#"

// FromDocID returns the language pair prefix of a doc_id.
// Ids without the delimiter are returned whole.
func FromDocID(docID string) string {
	pair, _, _ := strings.Cut(docID, Delimiter)
	return pair
}

// Recognized lists the WMT25 general MT language pairs.
var Recognized = []string{
	"cs-de_DE",
	"cs-uk_UA",
	"en-ar_EG",
	"en-bho_IN",
	"en-cs_CZ",
	"en-et_EE",
	"en-is_IS",
	"en-it_IT",
	"en-ja_JP",
	"en-ko_KR",
	"en-mas_KE",
	"en-ru_RU",
	"en-sr_Cyrl_RS",
	"en-uk_UA",
	"en-zh_CN",
	"ja-zh_CN",
}

func IsRecognized(pair string) bool {
	return slices.Contains(Recognized, pair)
}

// IsDirName reports whether pair maps to exactly one directory level.
func IsDirName(pair string) bool {
	return pair != "" && pair != "." && pair != ".." && !strings.ContainsAny(pair, `/\`)
}
