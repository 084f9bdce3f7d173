/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/trustbloc/sidetree-didcache-go/pkg/internal/log"
)

var logger = log.New("sidetree-config")

// Key is a configuration key.
type Key string

// Configuration keys.
const (
	Port                   Key = "port"
	CasNodeURI             Key = "casNodeUri"
	BlockchainNodeURI      Key = "BlockchainNodeUri"
	BatchIntervalInSeconds Key = "batchIntervalInSeconds"
	DIDNamespace           Key = "didNamespace"
	ProtocolFile           Key = "protocolFile"
	DocumentCacheSize      Key = "documentCacheSize"
)

// DevModeEnv is the environment variable that, when set, allows secret values to be read from the config file.
const DevModeEnv = "DEV_MODE"

//nolint:gochecknoglobals
var (
	keys = []Key{
		Port, CasNodeURI, BlockchainNodeURI, BatchIntervalInSeconds,
		DIDNamespace, ProtocolFile, DocumentCacheSize,
	}

	// secrets maps the keys whose values must come from the environment to the environment variable name.
	secrets = map[Key]string{
		Port: "PORT",
	}
)

// Config holds the configuration values. It is read-only after Load.
type Config struct {
	values map[Key]string
}

// Load reads the configuration from the given file (json, yaml or toml, selected by extension).
// Secret values are taken from the environment; if a secret is not set in the environment
// the load fails unless DEV_MODE is set, in which case the file value is used.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config file [%s]", path)
	}

	values := make(map[Key]string, len(keys))

	for _, key := range keys {
		value, err := getValue(v, key)
		if err != nil {
			return nil, err
		}

		values[key] = value
	}

	logger.Debug("Loaded configuration", log.WithURIString(path))

	return &Config{values: values}, nil
}

func getValue(v *viper.Viper, key Key) (string, error) {
	envName, isSecret := secrets[key]
	if !isSecret {
		return v.GetString(string(key)), nil
	}

	if value := os.Getenv(envName); value != "" {
		return value, nil
	}

	if os.Getenv(DevModeEnv) != "" {
		logger.Warn("Secret not set in environment; using config file value in dev mode", log.WithConfigKey(string(key)))

		return v.GetString(string(key)), nil
	}

	return "", errors.Errorf("no config value set for environment variable: %s", envName)
}

// Get returns the value of the given key ("" if not configured).
func (c *Config) Get(key Key) string {
	return c.values[key]
}

// BatchInterval returns the batch interval.
func (c *Config) BatchInterval() (time.Duration, error) {
	value := c.Get(BatchIntervalInSeconds)

	seconds, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid value for %s: [%s]", BatchIntervalInSeconds, value)
	}

	if seconds == 0 {
		return 0, errors.Errorf("%s must be greater than zero", BatchIntervalInSeconds)
	}

	return time.Duration(seconds) * time.Second, nil
}

// DocumentCacheSize returns the number of materialized documents to cache. Zero disables the
// document cache.
func (c *Config) DocumentCacheSize() (int, error) {
	value := c.Get(DocumentCacheSize)
	if value == "" {
		return 0, nil
	}

	size, err := strconv.ParseUint(value, 10, 31)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid value for %s: [%s]", DocumentCacheSize, value)
	}

	return int(size), nil
}
