package export

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/EliCDavis/polyform/formats/ply"
	"github.com/EliCDavis/polyform/modeling"
	"github.com/EliCDavis/vector/vector3"
	"github.com/google/uuid"
	"github.com/qmuntal/gltf"

	"github.com/landate83/gopointpack/internal/data"
)

const (
	dracoEncoderTool = "draco_encoder"

	dracoCompressionLevel = 7
	dracoPositionBits     = 14
	dracoColorBits        = 10
)

// ExportDRC writes the point cloud as a bare Draco bitstream through the
// external draco_encoder tool. Returns the output file size.
func (e *Exporter) ExportDRC(cloud *data.PointCloud, outputPath string) (int, error) {
	positions := e.transform.ApplyAll(cloud.Positions)

	if err := e.encodeDraco(positions, cloud.Colors, outputPath); err != nil {
		return 0, err
	}
	return fileSize(outputPath)
}

// ExportGLBDraco writes a GLB whose sole buffer is the Draco bitstream,
// referenced through KHR_draco_mesh_compression. The accessors describe
// the decompressed float attributes, not the compressed bytes.
func (e *Exporter) ExportGLBDraco(cloud *data.PointCloud, outputPath string) (int, error) {
	positions := e.transform.ApplyAll(cloud.Positions)

	drcPath := tempFilePath(".drc")
	defer os.Remove(drcPath)
	if err := e.encodeDraco(positions, cloud.Colors, drcPath); err != nil {
		return 0, err
	}

	dracoData, err := os.ReadFile(drcPath)
	if err != nil {
		return 0, err
	}

	bbMin, bbMax := float32Bounds(positions)

	doc := newPointsDocument()
	doc.Meshes[0].Primitives[0].Extensions = gltf.Extensions{
		"KHR_draco_mesh_compression": map[string]interface{}{
			"bufferView": 0,
			"attributes": map[string]int{
				gltf.POSITION: 0,
				gltf.COLOR_0:  1,
			},
		},
	}
	doc.Buffers = []*gltf.Buffer{{
		ByteLength: uint32(len(dracoData)),
		Data:       dracoData,
	}}
	doc.BufferViews = []*gltf.BufferView{
		{Buffer: 0, ByteOffset: 0, ByteLength: uint32(len(dracoData))},
	}
	doc.Accessors = []*gltf.Accessor{
		{
			BufferView:    gltf.Index(0),
			ComponentType: gltf.ComponentFloat,
			Count:         uint32(cloud.Len()),
			Type:          gltf.AccessorVec3,
			Max:           bbMax,
			Min:           bbMin,
		},
		{
			BufferView:    gltf.Index(0),
			ComponentType: gltf.ComponentFloat,
			Count:         uint32(cloud.Len()),
			Type:          gltf.AccessorVec3,
		},
	}
	doc.ExtensionsUsed = []string{"KHR_draco_mesh_compression"}
	doc.ExtensionsRequired = []string{"KHR_draco_mesh_compression"}

	if err := gltf.SaveBinary(doc, outputPath); err != nil {
		return 0, err
	}
	return fileSize(outputPath)
}

// Round-trips the cloud through a temporary binary PLY, the only input
// format draco_encoder accepts here. The intermediate is removed whether
// or not the encoder succeeds.
func (e *Exporter) encodeDraco(positions []vector3.Float64, colors []data.RGB, outputPath string) error {
	plyPath := tempFilePath(".ply")
	defer os.Remove(plyPath)
	if err := writeCompressionPly(plyPath, positions, colors); err != nil {
		return err
	}

	return e.runner.Run(dracoEncoderTool,
		"-point_cloud",
		"-i", plyPath,
		"-o", outputPath,
		"-cl", strconv.Itoa(dracoCompressionLevel),
		"-qp", strconv.Itoa(dracoPositionBits),
		"-qc", strconv.Itoa(dracoColorBits),
	)
}

func writeCompressionPly(path string, positions []vector3.Float64, colors []data.RGB) error {
	colorData := make([]vector3.Float64, len(colors))
	for i, c := range colors {
		colorData[i] = vector3.New(float64(c.R), float64(c.G), float64(c.B)).DivByConstant(255.)
	}

	pc := modeling.NewPointCloud(
		map[string][]vector3.Vector[float64]{
			modeling.PositionAttribute: positions,
			modeling.ColorAttribute:    colorData,
		},
		nil,
		nil,
		nil,
	)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return ply.WriteBinary(f, pc)
}

func tempFilePath(suffix string) string {
	return filepath.Join(os.TempDir(), uuid.NewString()+suffix)
}
