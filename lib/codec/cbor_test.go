// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

// sampleRecord mirrors the shape of a persisted annotation: json tags
// only, a free-form option map and recursive children.
type sampleRecord struct {
	Start    uint64         `json:"start"`
	Length   uint64         `json:"length"`
	Kind     string         `json:"kind,omitempty"`
	Options  map[string]any `json:"options,omitempty"`
	Children []sampleRecord `json:"children,omitempty"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleRecord{
		Start:  16,
		Length: 4,
		Kind:   "uint32_le",
		Children: []sampleRecord{
			{Start: 16, Length: 2},
		},
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleRecord
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Start != 16 || decoded.Kind != "uint32_le" || len(decoded.Children) != 1 {
		t.Errorf("roundtrip mismatch: got %+v", decoded)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	// Map iteration order is random; the encoding must not be.
	options := map[string]any{"width": 4, "byte order": "le", "signed": true, "decimal places": 2}

	first, err := Marshal(sampleRecord{Options: options})
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}
	for range 20 {
		again, err := Marshal(sampleRecord{Options: options})
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic encoding violated: %x != %x", first, again)
		}
	}
}

func TestOptionMapsDecodeWithStringKeys(t *testing.T) {
	data, err := Marshal(sampleRecord{Options: map[string]any{"width": 8, "charset": "UTF-8"}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded struct {
		Options any `json:"options"`
	}
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	options, ok := decoded.Options.(map[string]any)
	if !ok {
		t.Fatalf("options decoded as %T, want map[string]any", decoded.Options)
	}
	if options["width"] != uint64(8) {
		t.Errorf("width = %#v, want uint64(8)", options["width"])
	}
	if options["charset"] != "UTF-8" {
		t.Errorf("charset = %#v", options["charset"])
	}
}

func TestOmitemptyRespected(t *testing.T) {
	withKind, err := Marshal(sampleRecord{Start: 1, Length: 1, Kind: "bool"})
	if err != nil {
		t.Fatal(err)
	}
	withoutKind, err := Marshal(sampleRecord{Start: 1, Length: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(withoutKind) >= len(withKind) {
		t.Errorf("omitempty not effective: without=%d bytes, with=%d bytes", len(withoutKind), len(withKind))
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var record sampleRecord
	if err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &record); err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(sampleRecord{Start: 3, Length: 1, Kind: "uint8"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}
	if !strings.Contains(notation, `"kind"`) || !strings.Contains(notation, `"uint8"`) {
		t.Errorf("notation %q is missing the kind", notation)
	}
}

func TestUnmarshalJSONC(t *testing.T) {
	input := []byte(`{
		// header magic
		"start": 0,
		"length": 4,
		"kind": "uint32_be", /* big endian on disk */
		"options": {"width": 4,},
		"children": [
			{"start": 0, "length": 2,},
		],
	}`)

	var record sampleRecord
	if err := UnmarshalJSONC(input, &record); err != nil {
		t.Fatalf("UnmarshalJSONC: %v", err)
	}
	if record.Kind != "uint32_be" || record.Length != 4 || len(record.Children) != 1 {
		t.Errorf("decoded %+v", record)
	}
	if record.Options["width"] != float64(4) {
		t.Errorf("width = %#v, want float64(4)", record.Options["width"])
	}
}

func TestUnmarshalJSONCRejects(t *testing.T) {
	for name, input := range map[string]string{
		"unknown field": `{"start": 0, "lenght": 4}`,
		"trailing data": `{"start": 0} {"start": 1}`,
		"malformed":     `{"start": }`,
	} {
		var record sampleRecord
		if err := UnmarshalJSONC([]byte(input), &record); err == nil {
			t.Errorf("%s: UnmarshalJSONC succeeded", name)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := MarshalJSON(sampleRecord{Start: 2, Length: 1})
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"start\": 2") {
		t.Errorf("output not indented: %s", data)
	}
}

func BenchmarkMarshal(b *testing.B) {
	record := sampleRecord{Start: 16, Length: 4, Kind: "fixed_point", Options: map[string]any{"width": 4}}

	b.ReportAllocs()
	for b.Loop() {
		Marshal(record)
	}
}
