// Package clipboard puts captured images and file paths on the system
// clipboard via golang.design/x/clipboard.
package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error

	// The underlying clipboard is not safe under parallel writes.
	writeMu sync.Mutex
)

// Init prepares the clipboard backend. Safe to call more than once;
// later calls return the first result.
func Init() error {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	if initErr != nil {
		return fmt.Errorf("clipboard: init: %w", initErr)
	}
	return nil
}

// WriteImage places an image on the clipboard as PNG.
func WriteImage(img image.Image) error {
	if err := Init(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("clipboard: encode image: %w", err)
	}

	writeMu.Lock()
	defer writeMu.Unlock()
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	return nil
}

// WriteText places a string on the clipboard. Used to hand saved file
// paths to other applications.
func WriteText(text string) error {
	if err := Init(); err != nil {
		return err
	}

	writeMu.Lock()
	defer writeMu.Unlock()
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
