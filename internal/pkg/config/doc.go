// Package config provides the settings of the rsa-oaep binaries and loads them from YAML files
// and RSA_OAEP_* environment variables.
//
// Each settings struct validates itself; AppConfig.Validate checks all of them.
package config
