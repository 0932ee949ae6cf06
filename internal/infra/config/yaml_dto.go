package config

// YAMLFile mirrors echoloop.yaml. Pointers distinguish "unset" from zero values.
type YAMLFile struct {
	Echoloop YAMLConfig `yaml:"echoloop"`
}

type YAMLConfig struct {
	Retry  YAMLRetry  `yaml:"retry"`
	Output YAMLOutput `yaml:"output"`
	Log    YAMLLog    `yaml:"log"`
}

type YAMLRetry struct {
	MaxConsecutiveFailures *int   `yaml:"max_consecutive_failures"`
	InitialBackoff         string `yaml:"initial_backoff"`
	MaxBackoff             string `yaml:"max_backoff"`
}

type YAMLOutput struct {
	Newline string `yaml:"newline"`
}

type YAMLLog struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}
