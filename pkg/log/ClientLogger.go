// =================================================================
//
// Work of the U.S. Department of Defense, Defense Digital Service.
// Released as open source under the MIT License.  See LICENSE file.
//
// =================================================================

package log

import (
	"fmt"
	"strings"

	"github.com/aws/smithy-go/logging"
	"github.com/rs/zerolog"
)

// clientEvents maps the first line of an AWS client event to a log message.
var clientEvents = []struct {
	prefix string
	msg    string
}{
	{prefix: "Request Signature:\n", msg: "Request Signature"},
	{prefix: "Request\n", msg: "Request"},
	{prefix: "Response\n", msg: "Response"},
}

// ClientLogger writes the log messages of the AWS client to a SimpleLogger.
// Warnings are logged at the warn level and everything else at the debug level.
type ClientLogger struct {
	logger *SimpleLogger
}

func (c ClientLogger) Logf(classification logging.Classification, format string, v ...interface{}) {
	details := fmt.Sprintf(format, v...)
	msg := "Client Event"
	for _, e := range clientEvents {
		if strings.HasPrefix(details, e.prefix) {
			msg = e.msg
			details = details[len(e.prefix):]
			break
		}
	}
	level := zerolog.DebugLevel
	if classification == logging.Warn {
		level = zerolog.WarnLevel
	}
	l := c.logger.Logger()
	l.WithLevel(level).
		Str("classification", string(classification)).
		Str("details", details).
		Msg(msg)
}

var _ logging.Logger = ClientLogger{}

func NewClientLogger(logger *SimpleLogger) *ClientLogger {
	return &ClientLogger{logger: logger}
}
