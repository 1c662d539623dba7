package store

// Config holds configuration for the Store.
type Config struct {
	// TableParameter is the parameter store key holding the table name.
	// Default: "/dev/rucsystem/database/table-name"
	TableParameter string `mapstructure:"table_parameter"`

	// IndexParameter is the parameter store key holding the name of the
	// secondary index keyed by KeyAttribute.
	// Default: "/dev/rucsystem/database/index-name"
	IndexParameter string `mapstructure:"index_parameter"`

	// KeyAttribute is the registration-number attribute queried through the index.
	// Default: "NRO_RUC"
	KeyAttribute string `mapstructure:"key_attribute"`
}

// DefaultConfig returns the parameter names used by the dev stage.
func DefaultConfig() Config {
	return Config{
		TableParameter: "/dev/rucsystem/database/table-name",
		IndexParameter: "/dev/rucsystem/database/index-name",
		KeyAttribute:   "NRO_RUC",
	}
}

// validate fills unset values with defaults.
func (c *Config) validate() {
	defaults := DefaultConfig()
	if c.TableParameter == "" {
		c.TableParameter = defaults.TableParameter
	}
	if c.IndexParameter == "" {
		c.IndexParameter = defaults.IndexParameter
	}
	if c.KeyAttribute == "" {
		c.KeyAttribute = defaults.KeyAttribute
	}
}
