// Package config manages user-level settings stored at ~/.skilltool/config.yaml.
// Every key can be overridden with a SKILLTOOL_-prefixed environment variable,
// e.g. SKILLTOOL_ON_VALIDATION_FAILURE=abort.
package config
