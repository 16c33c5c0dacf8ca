// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml (or the file named by
// TRANSITHUB_CONFIG), overlaid with environment variables from the process
// and an optional .env file, validated using struct tags, and finally
// completed with defaults. With no config file at all the service starts
// against the public MTA feed endpoints.
package config
