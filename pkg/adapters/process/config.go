package process

// Config represents an external program that commands are allowed to run.
type Config struct {
	Name        string            `mapstructure:"name" yaml:"name" json:"name" toml:"name"`
	Command     string            `mapstructure:"command" yaml:"command" json:"command" toml:"command"`
	Args        []string          `mapstructure:"args" yaml:"args" json:"args" toml:"args"`
	Environment map[string]string `mapstructure:"env" yaml:"env" json:"env" toml:"env"`
	Dir         string            `mapstructure:"dir" yaml:"dir" json:"dir" toml:"dir"`
}
