package resolver

// stopwords is the closed list of common four-letter Indonesian words that
// must never be mistaken for a ticker by the four-letter heuristic. A lone
// stopword can still come back through the single-word fallback.
var stopwords = map[string]struct{}{
	"YANG": {},
	"DARI": {},
	"PADA": {},
	"SAJA": {},
	"JUGA": {},
	"BISA": {},
	"ATAU": {},
	"KITA": {},
	"KAMU": {},
	"ANDA": {},
	"MANA": {},
	"CARA": {},
	"KODE": {},
	"INFO": {},
	"DATA": {},
	"BANK": {},
	"BELI": {},
	"JUAL": {},
	"NAIK": {},
	"HARI": {},
	"MAKA": {},
	"TADI": {},
	"LAGI": {},
	"MASI": {},
	"DONG": {},
}

// isStopword reports whether an uppercased token is on the stopword list.
func isStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}
