//
//  Copyright © Manetu Inc. All rights reserved.
//

package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	orig, ok := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if ok {
			_ = os.Setenv(key, orig)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestGetConfigPath(t *testing.T) {
	t.Run("from env", func(t *testing.T) {
		t.Setenv(ConfigPathEnv, "/custom/config/path")
		assert.Equal(t, "/custom/config/path", getConfigPath())
	})

	t.Run("default", func(t *testing.T) {
		unsetEnv(t, ConfigPathEnv)
		assert.Equal(t, ConfigDefaultPath, getConfigPath())
	})
}

func TestGetConfigFileName(t *testing.T) {
	t.Run("from env", func(t *testing.T) {
		t.Setenv(ConfigFileNameEnv, "custom-config-name")
		assert.Equal(t, "custom-config-name", getConfigFileName())
	})

	t.Run("default", func(t *testing.T) {
		unsetEnv(t, ConfigFileNameEnv)
		assert.Equal(t, ConfigDefaultFilename, getConfigFileName())
	})
}
