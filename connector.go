package taphubspot

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/streamzip/tap-hubspot/protocol"
	"github.com/streamzip/tap-hubspot/utils/logger"
)

// RegisterDriver wires the driver into the command tree and runs it. A panic
// anywhere in the run is logged with its stack before the process dies.
func RegisterDriver(driver protocol.Driver) {
	defer func() {
		if r := recover(); r != nil {
			for _, line := range strings.Split(string(debug.Stack()), "\n") {
				logger.Errorf("%s", strings.ReplaceAll(line, "\t", ""))
			}
			logger.Fatal(fmt.Errorf("panic: %v", r))
		}
	}()

	// Execute the root command
	if err := protocol.CreateRootCommand(driver).Execute(); err != nil {
		logger.Fatal(err)
	}
}
