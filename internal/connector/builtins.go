package connector

import "github.com/dialogchain-go/dialogchain/internal/ports"

// RegisterBuiltins installs the scheme set spec.md §4.2 names: rtsp, file,
// imap, timer as sources; http, https, smtp, file, log as destinations.
// rtsp/imap/smtp are external collaborators (see external.go) registered
// as documented stubs so an unknown-scheme check at startup still passes
// while the actual transport remains unimplemented, matching spec.md §1's
// framing of them as "specified only by the interface".
func RegisterBuiltins(m *Manager, logger ports.Logger) {
	m.RegisterSource("timer", NewTimerSource)
	m.RegisterSource("file", NewFileSource)
	m.RegisterSource("rtsp", NewUnimplementedSource("rtsp"))
	m.RegisterSource("imap", NewUnimplementedSource("imap"))

	m.RegisterDestination("file", NewFileDestination)
	m.RegisterDestination("log", NewLogDestination(logger))
	m.RegisterDestination("http", NewHTTPDestination("http"))
	m.RegisterDestination("https", NewHTTPDestination("https"))
	m.RegisterDestination("smtp", NewUnimplementedDestination("smtp"))
}
