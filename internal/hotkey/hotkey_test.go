package hotkey

import (
	"testing"

	"github.com/snapvault/snapvault/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCombo(t *testing.T) {
	tests := []struct {
		spec    string
		want    []string
		wantErr bool
	}{
		{spec: "ctrl+shift+s", want: []string{"ctrl", "shift", "s"}},
		{spec: "Ctrl+Shift+S", want: []string{"ctrl", "shift", "s"}},
		{spec: " ctrl + alt + 4 ", want: []string{"ctrl", "alt", "4"}},
		{spec: "win+p", want: []string{"cmd", "p"}},
		{spec: "super+p", want: []string{"cmd", "p"}},
		{spec: "esc", want: []string{"escape"}},
		{spec: "f12", want: []string{"f12"}},
		{spec: "", wantErr: true},
		{spec: "ctrl++s", wantErr: true},
		{spec: "ctrl+", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			combo, err := ParseCombo(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, combo.Keys())
		})
	}
}

func TestComboString(t *testing.T) {
	combo, err := ParseCombo("Ctrl+Shift+S")
	require.NoError(t, err)
	assert.Equal(t, "ctrl+shift+s", combo.String())
}

func TestBindValidation(t *testing.T) {
	l := NewListener(logging.Noop())

	require.NoError(t, l.Bind("quick", "ctrl+shift+s"))

	err := l.Bind("quick", "ctrl+shift+w")
	assert.Error(t, err, "duplicate binding name")

	err = l.Bind("bad", "ctrl++")
	assert.Error(t, err)
}

func TestStartRequiresBindings(t *testing.T) {
	l := NewListener(logging.Noop())
	assert.Error(t, l.Start())
}
