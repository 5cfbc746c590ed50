// Package config resolves the service configuration from defaults, an
// optional YAML file, a .env file, DEMO_* environment variables and command
// line flags. The result is validated once and passed by value to every
// component; nothing reads configuration after startup.
package config
