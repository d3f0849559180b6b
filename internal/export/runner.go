package export

import (
	"bytes"
	"log"
	"os/exec"
)

// ToolRunner abstracts the external compression binaries so exports can be
// exercised without draco_encoder or gltfpack installed.
type ToolRunner interface {
	Run(tool string, args ...string) error
}

type execToolRunner struct{}

func NewExecToolRunner() ToolRunner {
	return &execToolRunner{}
}

func (r *execToolRunner) Run(tool string, args ...string) error {
	runCmd := exec.Command(tool, args...)

	var cmdStdout, cmdStderr bytes.Buffer
	runCmd.Stdout = &cmdStdout
	runCmd.Stderr = &cmdStderr

	if err := runCmd.Run(); err != nil {
		log.Println("run failed", runCmd.String(), "cmd-stdout", cmdStdout.String(), "cmd-stderr", cmdStderr.String(), err.Error())
		return &CompressionToolError{Tool: tool, Stderr: cmdStderr.String(), Err: err}
	}
	return nil
}
