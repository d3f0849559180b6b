package tools

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/landate83/gopointpack/internal/conv"
)

type FileFinder interface {
	GetInputFilesToProcess(opts *conv.Options) []string
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

func (f *StandardFileFinder) GetInputFilesToProcess(opts *conv.Options) []string {
	// If folder processing is not enabled the input file is given by the -input flag,
	// otherwise look for supported files in the -input folder, eventually excluding
	// nested folders if the Recursive flag is disabled
	if !opts.FolderProcessing {
		return []string{opts.Input}
	}

	return f.getInputFilesFromFolder(opts)
}

func (f *StandardFileFinder) getInputFilesFromFolder(opts *conv.Options) []string {
	var inputFiles = make([]string, 0)

	baseInfo, _ := os.Stat(opts.Input)
	err := filepath.Walk(
		opts.Input,
		func(path string, info os.FileInfo, err error) error {
			if info.IsDir() && !opts.Recursive && !os.SameFile(info, baseInfo) {
				return filepath.SkipDir
			} else if IsSupportedInput(info.Name()) {
				inputFiles = append(inputFiles, path)
			}
			return nil
		},
	)

	if err != nil {
		log.Fatal(err)
	}

	return inputFiles
}

// IsSupportedInput reports whether the file name carries one of the point
// cloud extensions the reader understands.
func IsSupportedInput(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ply", ".sog":
		return true
	}
	return false
}
