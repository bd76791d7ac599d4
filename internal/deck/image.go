package deck

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Registers the jpeg decoder for hand-imported cards
	"image/png"

	"github.com/conorfennell/kioku/internal/domain"
)

var encoder = png.Encoder{CompressionLevel: png.BestSpeed}

// ReadImage decodes the raster stored in an artifact.
func ReadImage(store Store, artifact domain.Artifact) (image.Image, error) {
	rc, err := store.Open(string(artifact))
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", artifact, err)
	}
	return img, nil
}

// WriteImage stores img as a PNG artifact.
func WriteImage(store Store, artifact domain.Artifact, img image.Image) error {
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode %s: %w", artifact, err)
	}
	return store.WriteFile(string(artifact), buf.Bytes())
}
