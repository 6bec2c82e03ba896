package parser

import "testing"

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"空值", "", ""},
		{"仅空白", "   ", ""},
		{"大写去空白", "  pago de honorarios ", "PAGO DE HONORARIOS"},
		{"不间断空格", "certificado\u00a0de \u00a0saldo", "CERTIFICADO DE SALDO"},
		{"连续空白", "INICIO  -\tTÉRMINO   DE DÍA\nCONTABLE", "INICIO - TÉRMINO DE DÍA CONTABLE"},
		{"重音字母", "simulación de créditos", "SIMULACIÓN DE CRÉDITOS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.want {
				t.Fatalf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		" a  b ",
		"Fogape: curses prorrogas , modificaciones y seguimiento",
		"\t\n",
		"ANB emisión de vale vista",
		"ß straße",
	}
	for _, in := range inputs {
		once := NormalizeText(in)
		if twice := NormalizeText(once); twice != once {
			t.Fatalf("not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}

func TestParseMonth(t *testing.T) {
	t.Parallel()

	ok := map[string]int{"1": 1, "07": 7, "12.0": 12, " 3 ": 3}
	for in, want := range ok {
		got, found := ParseMonth(in)
		if !found || got != want {
			t.Fatalf("ParseMonth(%q) = %d,%v want %d", in, got, found, want)
		}
	}
	for _, in := range []string{"", "0", "13", "7.5", "julio"} {
		if _, found := ParseMonth(in); found {
			t.Fatalf("ParseMonth(%q) should fail", in)
		}
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	if got, ok := ParseNumber("1,250.5"); !ok || got != 1250.5 {
		t.Fatalf("ParseNumber thousands = %v,%v", got, ok)
	}
	if _, ok := ParseNumber("n/a"); ok {
		t.Fatalf("ParseNumber should reject text")
	}
}
