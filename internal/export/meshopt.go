package export

import (
	"os"
	"strconv"

	"github.com/landate83/gopointpack/internal/data"
)

const gltfpackTool = "gltfpack"

// ExportGLBMeshopt writes a meshopt-compressed GLB by first producing a
// quantized GLB and then handing it to gltfpack. Quantization is mandatory
// here: EXT_meshopt_compression operates on integer attribute streams.
func (e *Exporter) ExportGLBMeshopt(cloud *data.PointCloud, outputPath string) (int, error) {
	// removed even when the write below fails halfway
	tmpPath := tempFilePath(".glb")
	defer os.Remove(tmpPath)
	if _, err := e.ExportGLB(cloud, tmpPath, true); err != nil {
		return 0, err
	}

	if err := e.runner.Run(gltfpackTool,
		"-i", tmpPath,
		"-o", outputPath,
		"-c",
		"-vp", strconv.Itoa(e.meshoptBits),
	); err != nil {
		return 0, err
	}

	return fileSize(outputPath)
}
