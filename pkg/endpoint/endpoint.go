// Package endpoint parses and represents the two sides of a comparison:
// a local filesystem path, or a remote host+path reachable over SSH.
package endpoint

import (
	"fmt"
	"strings"

	"github.com/jverlinden/treecompare/internal/platform"
)

// Kind identifies whether an endpoint is local or remote
type Kind string

const (
	// KindLocal is a plain filesystem path
	KindLocal Kind = "local"
	// KindRemote is a user@host:path spec reached over SSH
	KindRemote Kind = "remote"
)

// Endpoint is the normalized, immutable representation of one
// comparison side
type Endpoint struct {
	// Kind is local or remote
	Kind Kind

	// Path is the filesystem path on the endpoint; never empty. It is
	// not validated for existence before the probe runs.
	Path string

	// Host and User are set for remote endpoints only
	Host string
	User string

	// Secret optionally holds a pre-supplied password for
	// non-interactive authentication; empty means agent/interactive
	Secret string
}

// InvalidSpecError indicates an endpoint string that matches neither the
// local-path nor the user@host:path form
type InvalidSpecError struct {
	Spec   string
	Reason string
}

func (e *InvalidSpecError) Error() string {
	return fmt.Sprintf("invalid endpoint %q: %s", e.Spec, e.Reason)
}

// Parse converts a user-supplied endpoint string into an Endpoint.
// Accepted forms:
//   - /path/to/dir or relative/dir           (local)
//   - user@host:/path or host:/path          (remote)
//
// Windows drive-letter paths ("C:\data") parse as local even though they
// contain a colon. Parse performs no filesystem or network access.
func Parse(spec string) (*Endpoint, error) {
	if spec == "" {
		return nil, &InvalidSpecError{Spec: spec, Reason: "empty endpoint"}
	}

	if platform.HasDrivePrefix(spec) {
		return &Endpoint{Kind: KindLocal, Path: spec}, nil
	}

	// A colon before any slash marks the host:path boundary
	colon := strings.Index(spec, ":")
	slash := strings.Index(spec, "/")
	if colon < 0 || (slash >= 0 && slash < colon) {
		return &Endpoint{Kind: KindLocal, Path: spec}, nil
	}

	hostPart := spec[:colon]
	remotePath := spec[colon+1:]
	if remotePath == "" {
		return nil, &InvalidSpecError{Spec: spec, Reason: "remote path is empty"}
	}

	ep := &Endpoint{Kind: KindRemote, Path: remotePath}
	if at := strings.Index(hostPart, "@"); at >= 0 {
		ep.User = hostPart[:at]
		ep.Host = hostPart[at+1:]
		if ep.User == "" {
			return nil, &InvalidSpecError{Spec: spec, Reason: "user is empty"}
		}
	} else {
		ep.Host = hostPart
	}
	if ep.Host == "" {
		return nil, &InvalidSpecError{Spec: spec, Reason: "host is empty"}
	}

	return ep, nil
}

// IsRemote reports whether the endpoint needs a transport connection
func (e *Endpoint) IsRemote() bool {
	return e.Kind == KindRemote
}

// ProbeArg renders the endpoint in the form the probe executable
// expects on its command line
func (e *Endpoint) ProbeArg() string {
	if e.Kind == KindLocal {
		return e.Path
	}
	if e.User != "" {
		return e.User + "@" + e.Host + ":" + e.Path
	}
	return e.Host + ":" + e.Path
}

// String renders the endpoint without credentials, for logs and reports
func (e *Endpoint) String() string {
	return e.ProbeArg()
}
