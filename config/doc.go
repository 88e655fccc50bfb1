// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file and validated using struct tags.
// A .env file and selected environment variables (DATASET_PATH, NATS_URL,
// SQLITE_PATH, POSTGRES_DSN, PORT, ...) override the file values, so the
// same config ships unchanged across deployments.
package config
