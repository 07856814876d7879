package offers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleHeader = "RH;20181116;OFER_CPA;header line"

// offerLine builds one 16-field data line with the symbol padded the way B3
// writes it.
func offerLine(symbol, hour, price string) string {
	return strings.Join([]string{
		"2018-11-16",
		symbol + strings.Repeat(" ", 50-len(symbol)),
		"1",
		"000000000010",
		"1",
		"1",
		hour,
		"1",
		price,
		"100",
		"0",
		"2018-11-16",
		"2018-11-16 09:00:00",
		"0",
		"0",
		"8",
	}, ";")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

// sampleFile has one header line, two allowed symbols and one other.
func sampleFile() string {
	return sampleHeader + "\n" +
		offerLine("PETR4", "09:00:01.000", "18,50") + "\n" +
		offerLine("PETR3", "09:00:02.000", "19,10") + "\n" +
		offerLine("VALE3", "09:00:03.000", "55,20") + "\n"
}

func testOptions(side Side) Options {
	return Options{
		Side:        side,
		Comma:       ';',
		HeaderLines: 1,
		Symbols:     []string{"PETR4", "VALE3"},
		SymbolWidth: 50,
	}
}
