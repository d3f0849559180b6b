package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/landate83/gopointpack/internal/conv"
	"github.com/landate83/gopointpack/internal/converters"
	"github.com/landate83/gopointpack/internal/export"
	"github.com/landate83/gopointpack/internal/filter"
	"github.com/landate83/gopointpack/internal/geometry"
	"github.com/landate83/gopointpack/internal/reader"
	"github.com/landate83/gopointpack/pkg"
	"github.com/landate83/gopointpack/tools"
)

const VERSION = "1.0.0"

const logo = `
                         _       _                    _
  __ _  ___  _ __   ___ (_)_ __ | |_ _ __   __ _  ___| | __
 / _  |/ _ \| '_ \ / _ \| | '_ \| __| '_ \ / _  |/ __| |/ /
| (_| | (_) | |_) | (_) | | | | | |_| |_) | (_| | (__|   <
 \__, |\___/| .__/ \___/|_|_| |_|\__| .__/ \__,_|\___|_|\_\
 |___/      |_| A point cloud to GLB/Draco converter
                written in golang
`

func main() {
	log.SetPrefix("[gopointpack] ")
	log.SetFlags(log.LUTC | log.Ldate | log.Lmicroseconds | log.Lshortfile)

	flagsGlobal := tools.ParseFlagsGlobal()
	log.Println(tools.FmtJSONString(flagsGlobal))

	args := flag.Args()
	if len(args) == 0 {
		log.Fatal("Please specify a subcommand [convert|info].")
	}
	cmd, args := args[0], args[1:]

	switch cmd {
	case tools.CommandConvert:
		mainCommandConvert(args)
	case tools.CommandInfo:
		mainCommandInfo(args)
	default:
		log.Fatalf("Unrecognized command [%q]. Command must be one of [convert|info]", cmd)
	}
}

func mainCommandConvert(args []string) {
	// Retrieve command line args
	flags := tools.ParseFlagsForCommandConvert(args)

	// Prints the command line flag description
	if *flags.Help {
		showHelp()
		return
	}

	if *flags.Version {
		printVersion()
		return
	}

	// set logging and timestamp logging
	if *flags.Silent {
		tools.DisableLogger()
	} else {
		printLogo()
	}
	if !*flags.LogTimestamp {
		tools.DisableLoggerTimestamp()
	}

	// Put args inside an Options struct
	opts, err := buildConvertOptions(&flags)
	if err != nil {
		log.Fatal("Error parsing input parameters: ", err)
	}

	// Validate Options
	if msg, res := validateOptionsForCommandConvert(opts); !res {
		log.Fatal("Error parsing input parameters: " + msg)
	}

	// Starts the converter
	err = pkg.NewConverter(tools.NewStandardFileFinder(), export.NewExecToolRunner()).RunConverter(opts)

	if err != nil {
		log.Fatal("Error while converting: ", err)
	} else {
		tools.LogOutput("Conversion Completed")
	}
}

func buildConvertOptions(flags *tools.FlagsForCommandConvert) (*conv.Options, error) {
	converterFlags := flags.ConverterFlags

	opts := &conv.Options{
		Input:            *converterFlags.Input,
		Output:           *converterFlags.Output,
		Points:           *converterFlags.Points,
		Size:             *converterFlags.Size,
		Draco:            *converterFlags.Draco,
		Meshopt:          *converterFlags.Meshopt,
		Quantize:         *converterFlags.Quant,
		QuantExplicit:    *converterFlags.Quant,
		MeshoptBits:      *converterFlags.MeshoptBits,
		FilterRadius:     *converterFlags.FilterRadius,
		FolderProcessing: *converterFlags.FolderProcessing,
		Recursive:        *converterFlags.RecursiveFolderProcessing,
		Silent:           *flags.Silent,
		LogTimestamp:     *flags.LogTimestamp,
		Command:          tools.CommandConvert,
	}

	if *converterFlags.Percent != "" {
		percent, err := conv.ParsePercent(*converterFlags.Percent)
		if err != nil {
			return nil, err
		}
		opts.Percent = percent
	}

	switch {
	case *converterFlags.FilterSphere:
		opts.FilterShape = filter.Sphere
	case *converterFlags.FilterHemisphere:
		opts.FilterShape = filter.Hemisphere
	}

	center, err := filter.ParseCenter(*converterFlags.FilterCenter)
	if err != nil {
		return nil, err
	}
	opts.FilterCenter = center

	transform, err := converters.ParseAxisTransform(*converterFlags.Transform)
	if err != nil {
		return nil, err
	}
	opts.Transform = transform

	// Draco carries its own quantization, an extra int16 pass buys nothing
	if opts.Draco && opts.Quantize {
		log.Println("quantization is redundant with draco compression, ignoring -quant")
		opts.Quantize = false
		opts.QuantExplicit = false
	}

	// gltfpack needs integer attribute streams
	if opts.Meshopt {
		opts.Quantize = true
	}

	return opts, nil
}

// Validates the input options provided to the command line tool checking
// that the input exists and that the requested parameter combination is
// consistent.
func validateOptionsForCommandConvert(opts *conv.Options) (string, bool) {
	if _, err := os.Stat(opts.Input); os.IsNotExist(err) {
		return "Input file/folder not found", false
	}

	if !opts.HasTarget() {
		return "Specify a downsampling target with -points, -size or -percent", false
	}

	targets := 0
	if opts.Points > 0 {
		targets++
	}
	if opts.Size != "" {
		targets++
	}
	if !opts.Percent.IsZero() {
		targets++
	}
	if targets > 1 {
		return "Specify only one of -points, -size and -percent", false
	}
	if opts.Points < 0 {
		return "points parameter cannot be negative", false
	}
	if opts.Size != "" {
		if _, err := conv.ParseByteSize(opts.Size); err != nil {
			return err.Error(), false
		}
	}

	if opts.Draco && opts.Meshopt {
		return "draco and meshopt compression are mutually exclusive", false
	}

	if opts.FilterShape != "" && opts.FilterRadius <= 0 {
		return "filter-radius must be positive when a filter shape is given", false
	}
	if opts.FilterShape == "" && opts.FilterRadius > 0 {
		return "filter-radius requires -filter-sphere or -filter-hemisphere", false
	}

	return "", true
}

func mainCommandInfo(args []string) {
	flags := tools.ParseFlagsForCommandInfo(args)

	if *flags.Help {
		showHelp()
		return
	}

	if *flags.Input == "" {
		log.Fatal("Please specify an input file with -input.")
	}

	info, err := os.Stat(*flags.Input)
	if err != nil {
		log.Fatal("Input file not found: ", err)
	}

	cloud, err := reader.ReadPointCloud(*flags.Input)
	if err != nil {
		log.Fatal("Error reading input file: ", err)
	}

	fmt.Println("File:", *flags.Input)
	fmt.Println("  Points:", conv.FormatPointCount(cloud.Len()))
	fmt.Println("  File size:", conv.FormatFileSize(int(info.Size())))

	if cloud.Len() > 0 {
		box := geometry.NewBoundingBoxFromPoints(cloud.Positions)
		fmt.Printf("  Bounds: [%.3f, %.3f, %.3f] .. [%.3f, %.3f, %.3f]\n",
			box.Xmin, box.Ymin, box.Zmin, box.Xmax, box.Ymax, box.Zmax)
		fmt.Printf("  Diagonal: %.3f\n", box.Diagonal())
	}
}

func printLogo() {
	fmt.Printf("%s\n", logo)
}

func showHelp() {
	printLogo()
	fmt.Println("***")
	fmt.Println("gopointpack reads PLY and SOG point clouds, optionally crops and downsamples them, and writes GLB or Draco assets")
	printVersion()
	fmt.Println("***")
	fmt.Println("")
	fmt.Println("Command line flags: ")
	flag.CommandLine.SetOutput(os.Stdout)
	flag.PrintDefaults()
}

func printVersion() {
	fmt.Println("v." + VERSION)
}
