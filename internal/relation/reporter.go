package relation

import "github.com/linrel/linrel/pkg"

// Reporter receives diagnostics for recoverable problems encountered
// during scans (unparsable literals, unknown operators). Operators
// report and move on instead of failing the whole operation.
type Reporter interface {
	Report(source, message string)
}

// LogReporter is the default Reporter, writing through the package
// logger at warn level.
type LogReporter struct{}

func (LogReporter) Report(source, message string) {
	pkg.WarnLog(source+":", message)
}
