package money

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		v        float64
		currency string
		want     string
	}{
		{1234.5, "KRW", "₩1,234.50"},
		{88123456.789, "KRW", "₩88,123,456.79"},
		{45.67, "USD", "$45.67"},
		{1000000, "USD", "$1,000,000.00"},
		{0, "KRW", "₩0.00"},
		{-1234, "KRW", "₩-1,234.00"},
		{999.999, "USD", "$1,000.00"},
	}
	for _, c := range cases {
		if got := Format(c.v, c.currency); got != c.want {
			t.Errorf("Format(%v, %s): expected %s, got %s", c.v, c.currency, c.want, got)
		}
	}
}

func TestCurrencyForSymbol(t *testing.T) {
	if got := CurrencyForSymbol("BTC"); got != "KRW" {
		t.Errorf("Expected KRW for BTC, got %s", got)
	}
	if got := CurrencyForSymbol(" btc "); got != "KRW" {
		t.Errorf("Expected KRW for padded lowercase btc, got %s", got)
	}
	if got := CurrencyForSymbol("TQQQ"); got != "USD" {
		t.Errorf("Expected USD for TQQQ, got %s", got)
	}
	if got := CurrencyForSymbol("SOXL"); got != "USD" {
		t.Errorf("Expected USD default, got %s", got)
	}
}

func TestCurrencyForSheetTitle(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"TQQQ 무한매수 2026", "USD"},
		{"BTC 적립식", "KRW"},
		{"비트코인 장부", "KRW"},
		{"기타 시트", "USD"},
	}
	for _, c := range cases {
		if got := CurrencyForSheetTitle(c.title); got != c.want {
			t.Errorf("CurrencyForSheetTitle(%q): expected %s, got %s", c.title, c.want, got)
		}
	}
}
