package probe

import "context"

// Response is a canned probe outcome.
type Response struct {
	Output string
	Err    error
}

// Static answers probes from a fixed table keyed by CommandLine. Commands
// missing from the table fail with ErrNotFound, like an uninstalled binary.
type Static map[string]Response

// Run implements Runner.
func (s Static) Run(_ context.Context, name string, args ...string) (string, error) {
	command := CommandLine(name, args...)
	resp, ok := s[command]
	if !ok {
		return "", &Failure{Command: command, Kind: ErrNotFound}
	}
	return resp.Output, resp.Err
}

// Fail builds a Response that fails with the given kind.
func Fail(command string, kind error) Response {
	return Response{Err: &Failure{Command: command, Kind: kind}}
}
