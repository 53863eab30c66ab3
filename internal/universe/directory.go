// Package universe provides the static directory of listed IDX tickers.
package universe

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"saham-analyst/internal/models"
)

//go:embed data/stocks.json
var stocksJSON []byte

// Directory is a read-only membership test and metadata lookup for listed
// tickers. It is loaded once and never mutated.
type Directory struct {
	byTicker map[string]models.StockInfo
}

// Load parses the embedded directory data.
func Load() (*Directory, error) {
	var infos []models.StockInfo
	if err := json.Unmarshal(stocksJSON, &infos); err != nil {
		return nil, fmt.Errorf("parsing embedded stock directory: %w", err)
	}

	byTicker := make(map[string]models.StockInfo, len(infos))
	for _, info := range infos {
		byTicker[strings.ToUpper(info.Ticker)] = info
	}

	return &Directory{byTicker: byTicker}, nil
}

// MustLoad is Load for initialization paths where the embedded data is
// guaranteed well-formed.
func MustLoad() *Directory {
	d, err := Load()
	if err != nil {
		panic(err)
	}
	return d
}

// Contains reports whether token is a known ticker.
func (d *Directory) Contains(token string) bool {
	_, ok := d.byTicker[strings.ToUpper(token)]
	return ok
}

// Lookup returns the metadata for a ticker.
func (d *Directory) Lookup(ticker string) (models.StockInfo, bool) {
	info, ok := d.byTicker[strings.ToUpper(ticker)]
	return info, ok
}

// Len returns the number of known tickers.
func (d *Directory) Len() int {
	return len(d.byTicker)
}

// Sectors returns the distinct sector names, sorted.
func (d *Directory) Sectors() []string {
	seen := make(map[string]struct{})
	for _, info := range d.byTicker {
		seen[info.Sector] = struct{}{}
	}
	sectors := make([]string, 0, len(seen))
	for s := range seen {
		sectors = append(sectors, s)
	}
	sort.Strings(sectors)
	return sectors
}

// Tickers returns all known tickers, sorted.
func (d *Directory) Tickers() []string {
	tickers := make([]string, 0, len(d.byTicker))
	for t := range d.byTicker {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}
