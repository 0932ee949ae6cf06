package ports

// ConfigLocator finds an echoloop.yaml starting from an arbitrary directory.
type ConfigLocator interface {
	FindConfig(startDir string) (string, error)
}
