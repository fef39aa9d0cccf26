// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package param_test

import (
	"os"
	"testing"

	"github.com/js-arias/genetree/param"
	"github.com/js-arias/genetree/species"
)

func TestParam(t *testing.T) {
	name := "tmp-parameters-for-test.tab"
	p := param.New(name)
	testParam(t, p, nil, name)

	if err := p.SetThreshold(0.25); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.SetMethod("Zmasek"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.SetNaming("prefix"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.SetPrefix(5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.SetDelimiter("|"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.SetField(1)

	defer os.Remove(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := param.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testParam(t, np, p, name)
}

func TestParamErrors(t *testing.T) {
	p := param.New("")
	if err := p.SetThreshold(1.5); err == nil {
		t.Errorf("threshold: expecting error")
	}
	if err := p.SetMethod("parsimony"); err == nil {
		t.Errorf("method: expecting error")
	}
	if err := p.SetNaming("ncbi"); err == nil {
		t.Errorf("naming: expecting error")
	}
	if err := p.SetPrefix(0); err == nil {
		t.Errorf("prefix: expecting error")
	}
	if err := p.SetDelimiter(""); err == nil {
		t.Errorf("delimiter: expecting error")
	}
	testParam(t, p, nil, "")
}

func TestSpecies(t *testing.T) {
	p := param.New("")

	nm, err := p.Species(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := nm("A_human"); got != "human" {
		t.Errorf("delimiter: got %q, want %q", got, "human")
	}

	p.SetNaming(param.ByPrefix)
	nm, _ = p.Species(nil)
	if got := nm("HUMAN_12"); got != "HUM" {
		t.Errorf("prefix: got %q, want %q", got, "HUM")
	}

	p.SetNaming(param.ByTable)
	if _, err := p.Species(nil); err == nil {
		t.Errorf("table: expecting error without a table")
	}
	tb := species.NewTable()
	tb.Add("BRCA1", "human")
	nm, err = p.Species(tb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := nm("BRCA1"); got != "human" {
		t.Errorf("table: got %q, want %q", got, "human")
	}
}

func testParam(t testing.TB, p, want *param.P, name string) {
	t.Helper()

	if want == nil {
		want = param.New(name)
	}

	if p.Name() != want.Name() {
		t.Errorf("name: got %q, want %q", p.Name(), want.Name())
	}
	if p.Threshold() != want.Threshold() {
		t.Errorf("threshold: got %.6f, want %.6f", p.Threshold(), want.Threshold())
	}
	if p.Method() != want.Method() {
		t.Errorf("method: got %q, want %q", p.Method(), want.Method())
	}
	if p.Naming() != want.Naming() {
		t.Errorf("naming: got %q, want %q", p.Naming(), want.Naming())
	}
	if p.Prefix() != want.Prefix() {
		t.Errorf("prefix: got %d, want %d", p.Prefix(), want.Prefix())
	}
	if p.Delimiter() != want.Delimiter() {
		t.Errorf("delimiter: got %q, want %q", p.Delimiter(), want.Delimiter())
	}
	if p.Field() != want.Field() {
		t.Errorf("field: got %d, want %d", p.Field(), want.Field())
	}
}
