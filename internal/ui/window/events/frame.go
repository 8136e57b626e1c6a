package events

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

var frameEncoder = png.Encoder{CompressionLevel: png.NoCompression}

// EncodeFrame serializes a composited frame for gdk.NewTextureFromBytes.
func EncodeFrame(frame image.Image) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(frame.Bounds().Dx() * frame.Bounds().Dy() * 4)
	if err := frameEncoder.Encode(&buf, frame); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	return buf.Bytes(), nil
}
