package notebook

import "testing"

func TestCloneSnapshotsContent(t *testing.T) {
	c := newTestCell(t, CellOptions{
		Source:   "print('x')",
		Language: "python",
		Kind:     CodeCell,
		Metadata: &CellMetadata{
			Editable:       Bool(true),
			ExecutionOrder: Int(3),
			Custom:         map[string]any{"tag": "demo"},
		},
		Outputs: []OutputData{
			{Items: []OutputItem{{Mime: "text/plain", Data: []byte("x")}}},
		},
	})

	data := CloneCell(c)

	if data.Source != "print('x')" {
		t.Errorf("Unexpected source %q", data.Source)
	}
	if data.Language != "python" || data.Kind != CodeCell {
		t.Errorf("Unexpected language/kind %q/%v", data.Language, data.Kind)
	}
	if data.Metadata.Editable == nil || !*data.Metadata.Editable {
		t.Error("Expected editable flag carried over")
	}
	if data.Metadata.ExecutionOrder != nil {
		t.Error("Expected execution order dropped from the clone")
	}
	if data.Metadata.Custom["tag"] != "demo" {
		t.Errorf("Expected custom data carried over, got %v", data.Metadata.Custom)
	}
}

func TestCloneRegeneratesOutputIdentifiers(t *testing.T) {
	c := newTestCell(t, CellOptions{Outputs: []OutputData{
		{Items: []OutputItem{{Mime: "text/plain", Data: []byte("a")}}},
		{Items: []OutputItem{{Mime: "text/plain", Data: []byte("b")}}},
	}})

	data := CloneCell(c)
	if len(data.Outputs) != 2 {
		t.Fatalf("Expected 2 outputs, got %d", len(data.Outputs))
	}

	sourceIDs := make(map[string]bool)
	for _, o := range c.Outputs() {
		sourceIDs[o.ID] = true
	}
	for i, o := range data.Outputs {
		if o.ID == "" {
			t.Errorf("Output %d: expected a generated identifier", i)
		}
		if sourceIDs[o.ID] {
			t.Errorf("Output %d: identifier %q collides with the source", i, o.ID)
		}
		if string(o.Items[0].Data) != string(c.Outputs()[i].Items[0].Data) {
			t.Errorf("Output %d: content differs from the source", i)
		}
	}
}

func TestCloneIsDetached(t *testing.T) {
	c := newTestCell(t, CellOptions{
		Metadata: &CellMetadata{Custom: map[string]any{"k": "original"}},
	})

	data := CloneCell(c)
	data.Metadata.Custom["k"] = "mutated"

	if c.Metadata().Custom["k"] != "original" {
		t.Error("Expected clone mutation not to reach the source cell")
	}
}

func TestCloneRoundTripsThroughConstruction(t *testing.T) {
	c := newTestCell(t, CellOptions{Source: "a\nb", Language: "go"})

	data := CloneCell(c)
	pasted, err := NewCell(CellOptions{
		URI:      "test:/cell/copy",
		Handle:   2,
		Source:   data.Source,
		Language: data.Language,
		Kind:     data.Kind,
		Metadata: &data.Metadata,
		Outputs:  data.Outputs,
	})
	if err != nil {
		t.Fatalf("NewCell failed: %v", err)
	}

	if pasted.Value() != c.Value() {
		t.Errorf("Expected equal values, got %q and %q", pasted.Value(), c.Value())
	}
	if pasted.HashValue() != c.HashValue() {
		t.Error("Expected a pasted clone to hash identically to its source")
	}
}
