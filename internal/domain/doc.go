// Package domain contains the core model for echoloop.
//
// The domain is I/O-agnostic: it does not depend on YAML parsing, terminals,
// or the process's standard streams. Infra/adapters map into/from these types.
package domain
