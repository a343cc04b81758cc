package strict

import "testing"

type cfg struct {
	Gap   float64 `json:"gap"`
	Label string  `json:"label"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		src     map[string]any
		want    cfg
		wantErr bool
	}{
		{"empty keeps defaults", nil, cfg{Gap: 20}, false},
		{"override", map[string]any{"gap": 5}, cfg{Gap: 5}, false},
		{"type skipped", map[string]any{"type": "list-row", "label": "x"}, cfg{Gap: 20, Label: "x"}, false},
		{"unknown field", map[string]any{"gapp": 5}, cfg{}, true},
		{"wrong type", map[string]any{"gap": "wide"}, cfg{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg{Gap: 20}
			err := Decode(tt.src, &got, "type")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Decode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
