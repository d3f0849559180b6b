package tools

import (
	"flag"
	"log"

	"github.com/landate83/gopointpack/internal/conv"
)

const (
	CommandConvert = "convert"
	CommandInfo    = "info"
)

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

type ConverterFlags struct {
	Input   *string `json:"input"`
	Output  *string `json:"output"`
	Points  *int    `json:"points"`
	Size    *string `json:"size"`
	Percent *string `json:"percent"`

	Draco       *bool
	Meshopt     *bool
	Quant       *bool
	MeshoptBits *int `json:"meshopt_bits"`

	FilterSphere     *bool
	FilterHemisphere *bool
	FilterRadius     *float64 `json:"filter_radius"`
	FilterCenter     *string  `json:"filter_center"`

	Transform *string

	FolderProcessing          *bool
	RecursiveFolderProcessing *bool
}

type FlagsForCommandConvert struct {
	ConverterFlags
	Silent       *bool
	LogTimestamp *bool
	Help         *bool
	Version      *bool
}

type FlagsForCommandInfo struct {
	Input *string
	Help  *bool
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	version := defineBoolFlag("version", "v", false, "Displays the version of gopointpack.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

func ParseFlagsForCommandConvert(args []string) FlagsForCommandConvert {
	log.Println(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-convert", flag.ExitOnError)

	input := defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input PLY/SOG file or folder.")
	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Specifies the output file. If omitted the name is derived from the input file and the conversion parameters. A .drc extension selects the raw Draco container.")
	points := defineIntFlagCommand(flagCommand, "points", "p", 0, "Downsampling target as an absolute number of points.")
	size := defineStringFlagCommand(flagCommand, "size", "", "", "Downsampling target as an output file size, e.g. 500kb, 10mb. A bare number is read as kilobytes.")
	percent := defineStringFlagCommand(flagCommand, "percent", "", "", "Downsampling target as a percentage of the input points, e.g. 5 or 2.5.")
	draco := defineBoolFlagCommand(flagCommand, "draco", "", false, "Compress geometry with the external draco_encoder tool (KHR_draco_mesh_compression).")
	meshopt := defineBoolFlagCommand(flagCommand, "meshopt", "", false, "Compress the output through gltfpack (EXT_meshopt_compression). Implies quantization.")
	quant := defineBoolFlagCommand(flagCommand, "quant", "q", false, "Pack positions as int16 under KHR_mesh_quantization.")
	meshoptBits := defineIntFlagCommand(flagCommand, "meshopt-bits", "", conv.DefaultMeshoptBits, "Position quantization bits handed to gltfpack -vp.")
	filterSphere := defineBoolFlagCommand(flagCommand, "filter-sphere", "", false, "Keep only the points inside a sphere before downsampling.")
	filterHemisphere := defineBoolFlagCommand(flagCommand, "filter-hemisphere", "", false, "Keep only the points inside the upper half of a sphere before downsampling.")
	filterRadius := defineFloat64FlagCommand(flagCommand, "filter-radius", "", 0, "Filter radius as a fraction of the bounding box diagonal, e.g. 0.5.")
	filterCenter := defineStringFlagCommand(flagCommand, "filter-center", "", "origin", "Filter center: 'origin', 'geometric' or three numbers like '1.0,2.0,3.0'.")
	transform := defineStringFlagCommand(flagCommand, "transform", "", "none", "Axis transform applied to positions: none, neg_x, neg_y, neg_z, swap_yz, swap_yz_neg_y, swap_yz_neg_z.")
	folderProcessing := defineBoolFlagCommand(flagCommand, "folder", "f", false, "Enables processing of all PLY/SOG files from the input folder. Input must be a folder if specified.")
	recursiveFolderProcessing := defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Enables recursive lookup for input files inside the subfolders.")
	silent := defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages.")
	logTimestamp := defineBoolFlagCommand(flagCommand, "timestamp", "t", false, "Adds timestamp to log messages.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")
	version := defineBoolFlagCommand(flagCommand, "version", "v", false, "Displays the version of gopointpack.")

	flagCommand.Parse(args)

	return FlagsForCommandConvert{
		ConverterFlags: ConverterFlags{
			Input:                     input,
			Output:                    output,
			Points:                    points,
			Size:                      size,
			Percent:                   percent,
			Draco:                     draco,
			Meshopt:                   meshopt,
			Quant:                     quant,
			MeshoptBits:               meshoptBits,
			FilterSphere:              filterSphere,
			FilterHemisphere:          filterHemisphere,
			FilterRadius:              filterRadius,
			FilterCenter:              filterCenter,
			Transform:                 transform,
			FolderProcessing:          folderProcessing,
			RecursiveFolderProcessing: recursiveFolderProcessing,
		},
		Silent:       silent,
		LogTimestamp: logTimestamp,
		Help:         help,
		Version:      version,
	}
}

func ParseFlagsForCommandInfo(args []string) FlagsForCommandInfo {
	log.Println(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-info", flag.ExitOnError)

	input := defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input PLY/SOG file.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")

	flagCommand.Parse(args)

	return FlagsForCommandInfo{
		Input: input,
		Help:  help,
	}
}

func defineStringFlag(name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flag.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlag(name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flag.IntVar(&output, name, defaultValue, usage)
	if shortHand != name {
		flag.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64Flag(name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flag.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name {
		flag.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}
