package offers

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/guttosm/b3ofer/config"
)

func TestPipeline_Run(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "OFER_CPA_20181116.txt", sampleFile())
	out := filepath.Join(dir, "out", "OFER_CPA_20181005.csv")

	p, err := NewPipeline(testOptions(SideBuy))
	if err != nil {
		t.Fatalf("new pipeline: %v", err)
	}
	res, err := p.Run(context.Background(), in, out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.RowsRead != 3 || res.RowsWritten != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !reflect.DeepEqual(res.Columns, []string{SymbolColumn, "Hora_Prioridade", "Preço_Of_Compra"}) {
		t.Fatalf("columns = %v", res.Columns)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[1], "PETR4 ") || !strings.HasPrefix(lines[2], "VALE3 ") {
		t.Fatalf("unexpected rows: %q", lines[1:])
	}
}

func TestPipeline_Idempotent(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", sampleFile())
	out := filepath.Join(dir, "out.csv")

	p, err := NewPipeline(testOptions(SideBuy))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run(context.Background(), in, out); err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(out)
	if _, err := p.Run(context.Background(), in, out); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(out)
	if !bytes.Equal(first, second) {
		t.Fatal("second run produced different output")
	}
}

func TestPipeline_SellSide(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", sampleFile())
	out := filepath.Join(dir, "out.csv")

	p, err := NewPipeline(testOptions(SideSell))
	if err != nil {
		t.Fatal(err)
	}
	res, err := p.Run(context.Background(), in, out)
	if err != nil {
		t.Fatal(err)
	}
	if res.Columns[2] != "Preço_Of_Venda" {
		t.Fatalf("columns = %v", res.Columns)
	}
}

func TestPipeline_NoMatchesWritesHeader(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.txt", sampleHeader+"\n"+offerLine("ITUB4", "10:00:00.000", "30,00")+"\n")
	out := filepath.Join(dir, "out.csv")

	p, err := NewPipeline(testOptions(SideBuy))
	if err != nil {
		t.Fatal(err)
	}
	res, err := p.Run(context.Background(), in, out)
	if err != nil || res.RowsWritten != 0 {
		t.Fatalf("res=%+v err=%v", res, err)
	}
	b, _ := os.ReadFile(out)
	if string(b) != "Símbolo_do_Instrumento,Hora_Prioridade,Preço_Of_Compra\n" {
		t.Fatalf("got %q", b)
	}
}

func TestPipeline_FailureLeavesNoOutput(t *testing.T) {
	cases := []struct {
		name    string
		content string
		opts    func(*Options)
		wantErr string
	}{
		{name: "bad row", content: sampleHeader + "\na;b;c\n", wantErr: "invalid column count"},
		{name: "empty input", content: "", wantErr: "read header line 1"},
		{name: "unknown drop column", content: sampleFile(), opts: func(o *Options) { o.DropColumns = []string{"Nope"} }, wantErr: "drop columns not found: Nope"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			in := writeFile(t, dir, "in.txt", tc.content)
			out := filepath.Join(dir, "out.csv")

			opts := testOptions(SideBuy)
			if tc.opts != nil {
				tc.opts(&opts)
			}
			p, err := NewPipeline(opts)
			if err != nil {
				t.Fatal(err)
			}
			_, err = p.Run(context.Background(), in, out)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("want error containing %q, got %v", tc.wantErr, err)
			}
			if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
				t.Fatalf("output must not exist, stat err=%v", statErr)
			}
		})
	}
}

func TestNewPipeline_Validation(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*Options)
	}{
		{name: "bad side", mod: func(o *Options) { o.Side = "XYZ" }},
		{name: "empty symbols", mod: func(o *Options) { o.Symbols = nil }},
		{name: "negative header", mod: func(o *Options) { o.HeaderLines = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := testOptions(SideBuy)
			tc.mod(&o)
			if _, err := NewPipeline(o); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	p, err := NewPipeline(testOptions(SideSell))
	if err != nil {
		t.Fatal(err)
	}
	if p.Side() != SideSell || p.Format() != FormatCSV {
		t.Fatalf("defaults not applied: %s %s", p.Side(), p.Format())
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.OffersConfig{
		Side:         "vda",
		Delimiter:    ";",
		HeaderLines:  2,
		Symbols:      []string{"PETR4"},
		SymbolWidth:  50,
		SymbolMatch:  "trim",
		OutputFormat: "xlsx",
	}
	o, err := OptionsFromConfig(cfg)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if o.Side != SideSell || o.Comma != ';' || o.HeaderLines != 2 || o.Match != MatchTrim || o.Format != FormatXLSX {
		t.Fatalf("unexpected options %+v", o)
	}

	bad := []func(*config.OffersConfig){
		func(c *config.OffersConfig) { c.Side = "X" },
		func(c *config.OffersConfig) { c.SymbolMatch = "fuzzy" },
		func(c *config.OffersConfig) { c.OutputFormat = "json" },
		func(c *config.OffersConfig) { c.Delimiter = ";;" },
	}
	for i, mod := range bad {
		c := cfg
		mod(&c)
		if _, err := OptionsFromConfig(c); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}
