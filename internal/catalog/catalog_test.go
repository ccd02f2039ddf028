package catalog

import (
	"errors"
	"testing"

	"github.com/ndewijer/Stock-AI-Report/internal/apperrors"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Expected embedded catalog to parse, got %v", err)
	}
	if c.Len() == 0 {
		t.Fatal("Expected a non-empty catalog")
	}
	for _, tk := range c.All() {
		if tk.Exchange != "XNSA" || tk.Currency != "NGN" {
			t.Errorf("Expected XNSA/NGN for %s, got %s/%s", tk.Code, tk.Exchange, tk.Currency)
		}
	}
}

func TestCatalog_Find(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	t.Run("finds by code ignoring case", func(t *testing.T) {
		tk, err := c.Find("dangcem")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		sel := tk.Selection()
		if sel.Code != "DANGCEM" || sel.Exchange != "XNSA" || sel.Name != "Dangote Cement Plc" || sel.Currency != "NGN" {
			t.Errorf("Unexpected selection: %+v", sel)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := c.Find("NOPE")
		if !errors.Is(err, apperrors.ErrTickerNotFound) {
			t.Errorf("Expected ErrTickerNotFound, got %v", err)
		}
	})
}

func TestCatalog_Search(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	t.Run("matches names", func(t *testing.T) {
		got := c.Search("dangote")
		if len(got) != 2 {
			t.Fatalf("Expected 2 Dangote tickers, got %d", len(got))
		}
		if got[0].Code != "DANGCEM" || got[1].Code != "DANGSUGAR" {
			t.Errorf("Expected catalog order, got %s, %s", got[0].Code, got[1].Code)
		}
	})

	t.Run("matches codes", func(t *testing.T) {
		got := c.Search("mtn")
		if len(got) != 1 || got[0].Code != "MTNN" {
			t.Errorf("Expected MTNN, got %+v", got)
		}
	})

	t.Run("empty query returns everything", func(t *testing.T) {
		if got := c.Search("  "); len(got) != c.Len() {
			t.Errorf("Expected %d tickers, got %d", c.Len(), len(got))
		}
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid yaml", "tickers: [:"},
		{"missing code", "tickers:\n  - exchange: XNSA\n"},
		{"missing exchange", "tickers:\n  - code: ABC\n"},
		{"duplicate code", "tickers:\n  - {code: ABC, exchange: XNSA}\n  - {code: abc, exchange: XNSA}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
