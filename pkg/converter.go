package pkg

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"

	"github.com/landate83/gopointpack/internal/conv"
	"github.com/landate83/gopointpack/internal/data"
	"github.com/landate83/gopointpack/internal/export"
	"github.com/landate83/gopointpack/internal/filter"
	"github.com/landate83/gopointpack/internal/reader"
	"github.com/landate83/gopointpack/internal/sampler"
	"github.com/landate83/gopointpack/tools"
)

type IConverter interface {
	RunConverter(opts *conv.Options) error
}

type Converter struct {
	fileFinder tools.FileFinder
	runner     export.ToolRunner
}

func NewConverter(fileFinder tools.FileFinder, runner export.ToolRunner) IConverter {
	return &Converter{
		fileFinder: fileFinder,
		runner:     runner,
	}
}

// Report summarizes what one conversion produced
type Report struct {
	SourcePoints   int
	FilteredPoints int
	FinalPoints    int
	OutputSize     int
	OutputPath     string
}

// Starts the conversion process
func (c *Converter) RunConverter(opts *conv.Options) error {
	tools.LogOutput("Preparing list of files to process...")

	inputFiles := c.fileFinder.GetInputFilesToProcess(opts)
	for i, filePath := range inputFiles {
		tools.LogOutput("Processing file " + strconv.Itoa(i+1) + "/" + strconv.Itoa(len(inputFiles)))

		report, err := c.ConvertFile(filePath, opts)
		if err != nil {
			glog.Error("failed to convert ", filePath, ": ", err)
			return err
		}

		tools.LogOutput("> wrote", report.OutputPath,
			"points", conv.FormatPointCount(report.FinalPoints),
			"size", conv.FormatFileSize(report.OutputSize))
		tools.LogOutput("> done processing", filepath.Base(filePath))
	}

	return nil
}

// ConvertFile runs the full pipeline on a single input file: read, filter,
// downsample, export.
func (c *Converter) ConvertFile(filePath string, opts *conv.Options) (*Report, error) {
	tools.LogOutput("> reading point data...", filepath.Base(filePath))
	cloud, err := reader.ReadPointCloud(filePath)
	if err != nil {
		return nil, err
	}

	report := &Report{
		SourcePoints:   cloud.Len(),
		FilteredPoints: cloud.Len(),
	}
	tools.LogOutput("> source points:", conv.FormatPointCount(cloud.Len()))

	if cloud, err = c.applyFilter(cloud, opts, report); err != nil {
		return nil, err
	}

	if cloud, err = c.applyDownsampling(cloud, opts); err != nil {
		return nil, err
	}
	report.FinalPoints = cloud.Len()

	outputPath := opts.Output
	if outputPath == "" {
		outputPath = GenerateOutputFilename(filePath, opts)
	}
	report.OutputPath = outputPath

	if err := tools.CreateDirectoryIfDoesNotExist(filepath.Dir(outputPath)); err != nil {
		glog.Error("cannot create output directory for ", outputPath, ": ", err)
		return nil, err
	}

	tools.LogOutput("> exporting data...")
	size, err := c.exportCloud(cloud, outputPath, opts)
	if err != nil {
		return nil, err
	}
	report.OutputSize = size

	return report, nil
}

func (c *Converter) applyFilter(cloud *data.PointCloud, opts *conv.Options, report *Report) (*data.PointCloud, error) {
	if opts.FilterShape == "" {
		return cloud, nil
	}

	filtered, stats := filter.Apply(cloud, filter.Spec{
		Shape:          opts.FilterShape,
		RadiusFraction: opts.FilterRadius,
		Center:         opts.FilterCenter,
	})
	report.FilteredPoints = filtered.Len()

	tools.LogOutput("> filter", string(opts.FilterShape),
		fmt.Sprintf("center (%.2f, %.2f, %.2f) radius %.2f kept %s of %s points",
			stats.Center.X(), stats.Center.Y(), stats.Center.Z(), stats.Radius,
			conv.FormatPointCount(stats.PointsAfter), conv.FormatPointCount(stats.PointsBefore)))

	return filtered, nil
}

func (c *Converter) applyDownsampling(cloud *data.PointCloud, opts *conv.Options) (*data.PointCloud, error) {
	if !opts.HasTarget() {
		return cloud, nil
	}

	target := sampler.Target{
		Count:  opts.Points,
		Format: outputFormatFor(opts),
		Draco:  opts.Draco,
	}
	if !opts.Percent.IsZero() {
		target.Count = conv.PercentOf(cloud.Len(), opts.Percent)
	}
	if target.Count == 0 && opts.Size != "" {
		sizeBytes, err := conv.ParseByteSize(opts.Size)
		if err != nil {
			return nil, err
		}
		target.SizeBytes = sizeBytes
		tools.LogOutput("> target size:", conv.FormatFileSize(sizeBytes))
	}

	tools.LogOutput("> downsampling...")
	downsampled, err := sampler.DownsampleToTarget(cloud, target)
	if err != nil {
		return nil, err
	}

	tools.LogOutput("> downsampled to", conv.FormatPointCount(downsampled.Len()), "points")
	return downsampled, nil
}

func (c *Converter) exportCloud(cloud *data.PointCloud, outputPath string, opts *conv.Options) (int, error) {
	exporter := export.NewExporter(c.runner, opts.Transform, opts.MeshoptBits)

	switch {
	case strings.EqualFold(filepath.Ext(outputPath), ".drc"):
		return exporter.ExportDRC(cloud, outputPath)
	case opts.Draco:
		return exporter.ExportGLBDraco(cloud, outputPath)
	case opts.Meshopt:
		return exporter.ExportGLBMeshopt(cloud, outputPath)
	default:
		return exporter.ExportGLB(cloud, outputPath, opts.Quantize)
	}
}

func outputFormatFor(opts *conv.Options) sampler.OutputFormat {
	if strings.EqualFold(filepath.Ext(opts.Output), ".drc") {
		return sampler.FormatDRC
	}
	return sampler.FormatGLB
}
