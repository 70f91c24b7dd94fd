package commands

import (
	"fmt"
	"io"

	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

// reportBackendError prints a failed API call and returns the exit code.
// Domain errors are shown verbatim; transport failures get the generic
// message with the underlying error appended.
func reportBackendError(errOut io.Writer, err error, generic string) int {
	if de, ok := service.AsDomain(err); ok {
		fmt.Fprintf(errOut, "error: %s\n", de.Message)
	} else {
		fmt.Fprintf(errOut, "error: %s: %v\n", generic, err)
	}
	return exitcode.BackendError
}
