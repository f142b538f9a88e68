package window

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseShellGeometry(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want image.Rectangle
	}{
		{
			name: "typical output",
			out:  "WINDOW=6291462\nX=100\nY=200\nWIDTH=1280\nHEIGHT=720\nSCREEN=0\n",
			want: image.Rect(100, 200, 1380, 920),
		},
		{
			name: "missing dimensions",
			out:  "X=100\nY=200\n",
			want: image.Rectangle{},
		},
		{
			name: "zero size",
			out:  "X=0\nY=0\nWIDTH=0\nHEIGHT=0\n",
			want: image.Rectangle{},
		},
		{
			name: "garbage lines ignored",
			out:  "not a var\nWIDTH=abc\nX=5\nY=5\nWIDTH=10\nHEIGHT=10\n",
			want: image.Rect(5, 5, 15, 15),
		},
		{
			name: "empty output",
			out:  "",
			want: image.Rectangle{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseShellGeometry(tt.out))
		})
	}
}

func TestStaticProvider(t *testing.T) {
	p := &StaticProvider{Info: Info{Title: "Editor", Bounds: image.Rect(0, 0, 800, 600)}}
	got := p.Active()
	assert.Equal(t, "Editor", got.Title)
	assert.Equal(t, image.Rect(0, 0, 800, 600), got.Bounds)
}
