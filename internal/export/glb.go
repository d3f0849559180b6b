// Package export writes point clouds into their binary output containers:
// glTF binary (GLB) with optional int16 position quantization, GLB with
// geometry compressed through the external draco_encoder or gltfpack
// tools, and the raw Draco .drc bitstream.
package export

import (
	"encoding/binary"
	"math"
	"os"

	"github.com/EliCDavis/vector/vector3"
	"github.com/qmuntal/gltf"

	"github.com/landate83/gopointpack/internal/converters"
	"github.com/landate83/gopointpack/internal/data"
)

const defaultMeshoptPositionBits = 16

type Exporter struct {
	runner      ToolRunner
	transform   converters.AxisTransform
	meshoptBits int
}

// NewExporter builds an exporter. A nil runner falls back to invoking the
// compression tools through os/exec.
func NewExporter(runner ToolRunner, transform converters.AxisTransform, meshoptBits int) *Exporter {
	if runner == nil {
		runner = NewExecToolRunner()
	}
	if meshoptBits <= 0 {
		meshoptBits = defaultMeshoptPositionBits
	}

	return &Exporter{
		runner:      runner,
		transform:   transform,
		meshoptBits: meshoptBits,
	}
}

// ExportGLB writes an uncompressed GLB holding one POINTS primitive with
// POSITION and COLOR_0 attributes. With quantize set, positions are packed
// as int16 and colors as normalized bytes under KHR_mesh_quantization;
// otherwise both attributes are plain floats. Returns the output file size.
func (e *Exporter) ExportGLB(cloud *data.PointCloud, outputPath string, quantize bool) (int, error) {
	positions := e.transform.ApplyAll(cloud.Positions)

	var doc *gltf.Document
	if quantize {
		doc = buildQuantizedDocument(positions, cloud.Colors)
	} else {
		doc = buildFloatDocument(positions, cloud.Colors)
	}

	if err := gltf.SaveBinary(doc, outputPath); err != nil {
		return 0, err
	}
	return fileSize(outputPath)
}

// Skeleton shared by every GLB flavour: one scene, one node, one mesh with
// a single POINTS primitive reading accessors 0 and 1.
func newPointsDocument() *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "gopointpack"

	doc.Meshes = []*gltf.Mesh{{
		Primitives: []*gltf.Primitive{{
			Attributes: map[string]uint32{
				gltf.POSITION: 0,
				gltf.COLOR_0:  1,
			},
			Mode: gltf.PrimitivePoints,
		}},
	}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)

	return doc
}

func buildFloatDocument(positions []vector3.Float64, colors []data.RGB) *gltf.Document {
	posBytes := packPositionsFloat(positions)
	colBytes := packColorsFloat(colors)
	bbMin, bbMax := float32Bounds(positions)

	doc := newPointsDocument()
	setTwoViewBuffer(doc, posBytes, colBytes)
	doc.Accessors = []*gltf.Accessor{
		{
			BufferView:    viewIndex(0, posBytes),
			ComponentType: gltf.ComponentFloat,
			Count:         uint32(len(positions)),
			Type:          gltf.AccessorVec3,
			Max:           bbMax,
			Min:           bbMin,
		},
		{
			BufferView:    viewIndex(1, colBytes),
			ComponentType: gltf.ComponentFloat,
			Count:         uint32(len(colors)),
			Type:          gltf.AccessorVec3,
		},
	}

	return doc
}

func buildQuantizedDocument(positions []vector3.Float64, colors []data.RGB) *gltf.Document {
	quantized, offset, scale := quantizePositions(positions)
	posBytes := packInt16(quantized)
	colBytes := packColorsByte(colors)
	bbMin, bbMax := float32Bounds(positions)

	doc := newPointsDocument()
	setTwoViewBuffer(doc, posBytes, colBytes)
	doc.Accessors = []*gltf.Accessor{
		{
			BufferView:    viewIndex(0, posBytes),
			ComponentType: gltf.ComponentShort,
			Count:         uint32(len(positions)),
			Type:          gltf.AccessorVec3,
			Max:           bbMax,
			Min:           bbMin,
			Extensions: gltf.Extensions{
				"KHR_mesh_quantization": map[string]interface{}{
					"quantizedAttributes": []string{gltf.POSITION},
					"quantizationOffset":  offset[:],
					"quantizationScale":   scale[:],
				},
			},
		},
		{
			BufferView:    viewIndex(1, colBytes),
			ComponentType: gltf.ComponentUbyte,
			Normalized:    true,
			Count:         uint32(len(colors)),
			Type:          gltf.AccessorVec3,
		},
	}
	doc.ExtensionsUsed = []string{"KHR_mesh_quantization"}
	doc.ExtensionsRequired = []string{"KHR_mesh_quantization"}

	return doc
}

// Packs positions and colors back to back into the single GLB buffer with
// one buffer view over each region. An empty cloud gets no buffer at all:
// zero length GLB buffers are invalid, so its count-0 accessors reference
// no buffer view either.
func setTwoViewBuffer(doc *gltf.Document, posBytes, colBytes []byte) {
	if len(posBytes)+len(colBytes) == 0 {
		return
	}

	doc.Buffers = []*gltf.Buffer{{
		ByteLength: uint32(len(posBytes) + len(colBytes)),
		Data:       append(posBytes, colBytes...),
	}}
	doc.BufferViews = []*gltf.BufferView{
		{Buffer: 0, ByteOffset: 0, ByteLength: uint32(len(posBytes))},
		{Buffer: 0, ByteOffset: uint32(len(posBytes)), ByteLength: uint32(len(colBytes))},
	}
}

func viewIndex(view uint32, region []byte) *uint32 {
	if len(region) == 0 {
		return nil
	}
	return gltf.Index(view)
}

func packPositionsFloat(positions []vector3.Float64) []byte {
	out := make([]byte, 0, len(positions)*12)
	for _, p := range positions {
		out = appendFloat32(out, float32(p.X()))
		out = appendFloat32(out, float32(p.Y()))
		out = appendFloat32(out, float32(p.Z()))
	}
	return out
}

func packColorsFloat(colors []data.RGB) []byte {
	out := make([]byte, 0, len(colors)*12)
	for _, c := range colors {
		out = appendFloat32(out, float32(c.R)/255)
		out = appendFloat32(out, float32(c.G)/255)
		out = appendFloat32(out, float32(c.B)/255)
	}
	return out
}

func packColorsByte(colors []data.RGB) []byte {
	out := make([]byte, 0, len(colors)*3)
	for _, c := range colors {
		out = append(out, c.R, c.G, c.B)
	}
	return out
}

func packInt16(values []int16) []byte {
	out := make([]byte, 0, len(values)*2)
	for _, v := range values {
		out = binary.LittleEndian.AppendUint16(out, uint16(v))
	}
	return out
}

func appendFloat32(b []byte, v float32) []byte {
	return binary.LittleEndian.AppendUint32(b, math.Float32bits(v))
}

// Per-axis float32 bounds for the accessor min/max fields; nil for an
// empty cloud so the fields are omitted.
func float32Bounds(positions []vector3.Float64) (bbMin, bbMax []float32) {
	if len(positions) == 0 {
		return nil, nil
	}

	first := positions[0]
	mins := [3]float64{first.X(), first.Y(), first.Z()}
	maxs := mins
	for _, p := range positions[1:] {
		for axis, v := range [3]float64{p.X(), p.Y(), p.Z()} {
			mins[axis] = math.Min(mins[axis], v)
			maxs[axis] = math.Max(maxs[axis], v)
		}
	}

	bbMin = []float32{float32(mins[0]), float32(mins[1]), float32(mins[2])}
	bbMax = []float32{float32(maxs[0]), float32(maxs[1]), float32(maxs[2])}
	return bbMin, bbMax
}

func fileSize(path string) (int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return int(info.Size()), nil
}
