package reader

import (
	"archive/zip"
	"encoding/json"
	"image"
	"io"

	"github.com/EliCDavis/vector/vector3"
	"github.com/landate83/gopointpack/internal/data"
	"golang.org/x/image/webp"
)

// Metadata stored in the meta.json member of a SOG archive. Only the
// fields needed for position and DC color recovery are decoded.
type sogMeta struct {
	Count int `json:"count"`
	Means struct {
		Mins []float64 `json:"mins"`
		Maxs []float64 `json:"maxs"`
	} `json:"means"`
	Sh0 struct {
		Codebook []float64 `json:"codebook"`
		Files    []string  `json:"files"`
	} `json:"sh0"`
}

// ReadSog reads a point cloud from a SOG archive, the WebP based container
// used by gaussian splatting tools. Positions are reassembled from the
// low/high byte planes (means_l/means_u) and denormalized against the
// means min/max range; colors come from the sh0 codebook when present,
// otherwise fall back to opaque white.
func ReadSog(path string) (*data.PointCloud, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "not a readable SOG archive", Err: err}
	}
	defer zr.Close()

	metaRaw, err := readSogMember(&zr.Reader, "meta.json")
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "missing meta.json", Err: err}
	}

	var meta sogMeta
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return nil, &FormatError{Path: path, Reason: "malformed meta.json", Err: err}
	}
	if meta.Count < 0 || len(meta.Means.Mins) < 3 || len(meta.Means.Maxs) < 3 {
		return nil, &FormatError{Path: path, Reason: "meta.json lacks count or means range"}
	}

	lowPlane, err := readSogPlane(&zr.Reader, "means_l.webp")
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "cannot decode means_l.webp", Err: err}
	}
	highPlane, err := readSogPlane(&zr.Reader, "means_u.webp")
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "cannot decode means_u.webp", Err: err}
	}

	needed := meta.Count * 3
	if len(lowPlane) < needed || len(highPlane) < needed {
		return nil, &FormatError{Path: path, Reason: "means planes shorter than declared point count"}
	}

	colors, err := readSogColors(path, &zr.Reader, &meta)
	if err != nil {
		return nil, err
	}

	cloud := data.NewEmptyPointCloud(meta.Count)
	for i := 0; i < meta.Count; i++ {
		var coord [3]float64
		for axis := 0; axis < 3; axis++ {
			j := i*3 + axis
			// low plane holds the lower 8 bits, high plane the upper ones
			v := float64(lowPlane[j])/255.0 + float64(highPlane[j])*256.0/255.0
			coord[axis] = v*(meta.Means.Maxs[axis]-meta.Means.Mins[axis]) + meta.Means.Mins[axis]
		}
		cloud.Append(vector3.New(coord[0], coord[1], coord[2]), colors[i])
	}

	return cloud, nil
}

// Decodes the per point colors of a SOG archive through the sh0 codebook.
// Archives without color data yield an all white slice.
func readSogColors(path string, zr *zip.Reader, meta *sogMeta) ([]data.RGB, error) {
	colors := make([]data.RGB, meta.Count)
	for i := range colors {
		colors[i] = data.White
	}

	if len(meta.Sh0.Codebook) == 0 || len(meta.Sh0.Files) == 0 {
		return colors, nil
	}

	indices, err := readSogPlane(zr, "sh0.webp")
	if err != nil {
		return nil, &FormatError{Path: path, Reason: "cannot decode sh0.webp", Err: err}
	}
	if len(indices) < meta.Count*3 {
		return colors, nil
	}

	lookup := func(idx uint8) float64 {
		if int(idx) >= len(meta.Sh0.Codebook) {
			return 0
		}
		return meta.Sh0.Codebook[idx]
	}

	for i := 0; i < meta.Count; i++ {
		colors[i] = data.RGB{
			R: shToChannel(lookup(indices[i*3])),
			G: shToChannel(lookup(indices[i*3+1])),
			B: shToChannel(lookup(indices[i*3+2])),
		}
	}

	return colors, nil
}

func readSogMember(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// Decodes a WebP plane into a flat channel slice, three bytes per pixel in
// row major order.
func readSogPlane(zr *zip.Reader, name string) ([]uint8, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := webp.Decode(f)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	out := make([]uint8, 0, bounds.Dx()*bounds.Dy()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b := channelsAt(img, x, y)
			out = append(out, r, g, b)
		}
	}

	return out, nil
}

func channelsAt(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
