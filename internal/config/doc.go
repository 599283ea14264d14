// Package config resolves user-level settings for the prior CLI: the API
// root, an API key override, logging knobs, and the location of the
// persisted credential file under ~/.prior/. Values come from PRIOR_*
// environment variables through Viper, falling back to branding defaults.
package config
