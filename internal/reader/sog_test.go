package reader

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landate83/gopointpack/internal/data"
)

// Pre-encoded 2x1 lossless WebP planes for a two point archive. Pixel
// channels carry, per point, the three axis bytes: meansLowPlane holds
// (10,20,30) and (1,2,3), meansHighPlane (0,0,0) and (1,0,0), and
// sh0IndexPlane the codebook indices (0,0,0) and (1,2,3).
var (
	meansLowPlane = []byte{
		0x52, 0x49, 0x46, 0x46, 0x1c, 0x00, 0x00, 0x00, 0x57, 0x45, 0x42, 0x50,
		0x56, 0x50, 0x38, 0x4c, 0x0f, 0x00, 0x00, 0x00, 0x2f, 0x01, 0x00, 0x00,
		0x00, 0xb8, 0x00, 0xc5, 0x2a, 0x7c, 0xc0, 0xa3, 0xff, 0x71, 0x00, 0x00,
	}
	meansHighPlane = []byte{
		0x52, 0x49, 0x46, 0x46, 0x16, 0x00, 0x00, 0x00, 0x57, 0x45, 0x42, 0x50,
		0x56, 0x50, 0x38, 0x4c, 0x0a, 0x00, 0x00, 0x00, 0x2f, 0x01, 0x00, 0x00,
		0x00, 0x88, 0x09, 0x88, 0xfe, 0x87,
	}
	sh0IndexPlane = []byte{
		0x52, 0x49, 0x46, 0x46, 0x1a, 0x00, 0x00, 0x00, 0x57, 0x45, 0x42, 0x50,
		0x56, 0x50, 0x38, 0x4c, 0x0d, 0x00, 0x00, 0x00, 0x2f, 0x01, 0x00, 0x00,
		0x00, 0x18, 0x81, 0x09, 0x98, 0x81, 0xfe, 0x07, 0x0e, 0x00,
	}
)

func writeSogArchive(t *testing.T, members map[string][]byte) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range members {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "cloud.sog")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestReadSog_DecodesPositionsAndColors(t *testing.T) {
	t.Parallel()

	path := writeSogArchive(t, map[string][]byte{
		"meta.json": []byte(`{
			"count": 2,
			"means": {"mins": [0, 0, 0], "maxs": [255, 255, 255]},
			"sh0": {"codebook": [0, 1, -1, 0.5], "files": ["sh0.webp"]}
		}`),
		"means_l.webp": meansLowPlane,
		"means_u.webp": meansHighPlane,
		"sh0.webp":     sh0IndexPlane,
	})

	cloud, err := ReadSog(path)
	require.NoError(t, err)
	require.Equal(t, 2, cloud.Len())

	// coordinate = (low/255 + high*256/255) * (max-min) + min; with a
	// range of 255 that collapses to low + 256*high
	p0 := cloud.Positions[0]
	assert.InDelta(t, 10.0, p0.X(), 1e-9)
	assert.InDelta(t, 20.0, p0.Y(), 1e-9)
	assert.InDelta(t, 30.0, p0.Z(), 1e-9)

	p1 := cloud.Positions[1]
	assert.InDelta(t, 257.0, p1.X(), 1e-9)
	assert.InDelta(t, 2.0, p1.Y(), 1e-9)
	assert.InDelta(t, 3.0, p1.Z(), 1e-9)

	// codebook entry 0 is the neutral DC coefficient, 1/-1/0.5 land on
	// the rounded SH values
	assert.Equal(t, data.RGB{R: 128, G: 128, B: 128}, cloud.Colors[0])
	assert.Equal(t, data.RGB{R: 199, G: 56, B: 163}, cloud.Colors[1])
}

func TestReadSog_WhiteFallbackWithoutSh0(t *testing.T) {
	t.Parallel()

	path := writeSogArchive(t, map[string][]byte{
		"meta.json": []byte(`{
			"count": 2,
			"means": {"mins": [0, 0, 0], "maxs": [255, 255, 255]}
		}`),
		"means_l.webp": meansLowPlane,
		"means_u.webp": meansHighPlane,
	})

	cloud, err := ReadSog(path)
	require.NoError(t, err)
	require.Equal(t, 2, cloud.Len())
	assert.Equal(t, data.White, cloud.Colors[0])
	assert.Equal(t, data.White, cloud.Colors[1])
}

func TestReadSog_NotAnArchive(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.sog")
	require.NoError(t, os.WriteFile(path, []byte("plain bytes"), 0644))

	_, err := ReadSog(path)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "SOG")
}

func TestReadSog_MissingMeta(t *testing.T) {
	t.Parallel()

	path := writeSogArchive(t, map[string][]byte{
		"readme.txt": []byte("no meta here"),
	})

	_, err := ReadSog(path)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "meta.json")
}

func TestReadSog_MalformedMeta(t *testing.T) {
	t.Parallel()

	path := writeSogArchive(t, map[string][]byte{
		"meta.json": []byte("{ not json"),
	})

	_, err := ReadSog(path)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "malformed meta.json")
}

func TestReadSog_MetaWithoutMeansRange(t *testing.T) {
	t.Parallel()

	path := writeSogArchive(t, map[string][]byte{
		"meta.json": []byte(`{"count": 10}`),
	})

	_, err := ReadSog(path)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "means range")
}

func TestReadSog_MissingMeansPlanes(t *testing.T) {
	t.Parallel()

	path := writeSogArchive(t, map[string][]byte{
		"meta.json": []byte(`{"count": 1, "means": {"mins": [0,0,0], "maxs": [1,1,1]}}`),
	})

	_, err := ReadSog(path)
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "means_l.webp")
}
