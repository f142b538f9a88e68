package cmd

import (
	"image"
	"testing"
)

func TestParseRegionSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    image.Rectangle
		wantErr bool
	}{
		{name: "basic", spec: "100,100,800x600", want: image.Rect(100, 100, 900, 700)},
		{name: "origin", spec: "0,0,1920x1080", want: image.Rect(0, 0, 1920, 1080)},
		{name: "negative origin", spec: "-1920,0,1920x1080", want: image.Rect(-1920, 0, 0, 1080)},
		{name: "spaces tolerated", spec: " 10, 20, 30x40", want: image.Rect(10, 20, 40, 60)},
		{name: "missing parts", spec: "100,100", wantErr: true},
		{name: "bad size separator", spec: "0,0,800*600", wantErr: true},
		{name: "zero width", spec: "0,0,0x600", wantErr: true},
		{name: "negative height", spec: "0,0,800x-600", wantErr: true},
		{name: "not numbers", spec: "a,b,cxd", wantErr: true},
		{name: "empty", spec: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRegionSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseRegionSpec(%q) expected error, got %v", tt.spec, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRegionSpec(%q) unexpected error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("parseRegionSpec(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}
