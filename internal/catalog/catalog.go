// Package catalog holds the static list of tickers a report can be
// requested for.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
	"github.com/ndewijer/Stock-AI-Report/internal/model"
)

//go:embed tickers.yaml
var defaultTickers []byte

// Ticker is one catalog entry.
type Ticker struct {
	Code     string `yaml:"code"`
	Name     string `yaml:"name"`
	Exchange string `yaml:"exchange"`
	Currency string `yaml:"currency"`
	Country  string `yaml:"country"`
	Type     string `yaml:"type"`
}

// Selection returns the fields the report pipeline needs.
func (t Ticker) Selection() model.TickerSelection {
	return model.TickerSelection{
		Code:     t.Code,
		Exchange: t.Exchange,
		Name:     t.Name,
		Currency: t.Currency,
	}
}

// Catalog is an immutable, ordered set of tickers keyed by code.
type Catalog struct {
	tickers []Ticker
	byCode  map[string]int
}

// Default returns the embedded NGX catalog.
func Default() (*Catalog, error) {
	return Parse(defaultTickers)
}

// Parse reads a catalog document of the form "tickers: [...]". Codes must
// be unique (case-insensitively) and every entry needs a code and exchange.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Tickers []Ticker `yaml:"tickers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse ticker catalog: %w", err)
	}

	c := &Catalog{
		tickers: make([]Ticker, 0, len(doc.Tickers)),
		byCode:  make(map[string]int, len(doc.Tickers)),
	}
	for i, t := range doc.Tickers {
		t.Code = strings.TrimSpace(t.Code)
		t.Exchange = strings.TrimSpace(t.Exchange)
		if t.Code == "" || t.Exchange == "" {
			return nil, fmt.Errorf("ticker catalog entry %d: code and exchange are required", i)
		}
		key := strings.ToUpper(t.Code)
		if _, dup := c.byCode[key]; dup {
			return nil, fmt.Errorf("ticker catalog: duplicate code %s", t.Code)
		}
		c.byCode[key] = len(c.tickers)
		c.tickers = append(c.tickers, t)
	}
	return c, nil
}

// All returns every ticker in catalog order.
func (c *Catalog) All() []Ticker {
	return append([]Ticker(nil), c.tickers...)
}

// Len returns the number of tickers.
func (c *Catalog) Len() int {
	return len(c.tickers)
}

// Find looks a ticker up by code, ignoring case.
func (c *Catalog) Find(code string) (Ticker, error) {
	i, ok := c.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Ticker{}, fmt.Errorf("%w: %s", apperrors.ErrTickerNotFound, code)
	}
	return c.tickers[i], nil
}

// Search returns tickers whose code or name contains query, ignoring case,
// in catalog order. An empty query matches everything.
func (c *Catalog) Search(query string) []Ticker {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.All()
	}

	var out []Ticker
	for _, t := range c.tickers {
		if strings.Contains(strings.ToLower(t.Code), q) || strings.Contains(strings.ToLower(t.Name), q) {
			out = append(out, t)
		}
	}
	return out
}
