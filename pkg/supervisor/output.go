package supervisor

import (
	"bufio"
	"io"

	"github.com/model-tools/inferd-entry/pkg/logging"
)

// maxOutputLine bounds a single forwarded log line from a child.
const maxOutputLine = 256 * 1024

// forwardOutput streams a child's combined stdout/stderr into the
// supervisor log, one line per entry, until the child exits and the pipe
// reaches EOF. Runs on its own goroutine per child.
func forwardOutput(role Role, output io.ReadCloser, logger logging.Logger) {
	defer output.Close()

	scanner := bufio.NewScanner(output)
	scanner.Buffer(make([]byte, 64*1024), maxOutputLine)

	for scanner.Scan() {
		logger.Infof("[%s] %s", role, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		logger.Debugf("Output stream closed, role: %s, error: %v", role, err)
	}
}
