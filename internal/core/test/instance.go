//
//  Copyright © Manetu Inc. All rights reserved.
//

package test

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/Chavda-Mitul/AI-Logger/internal/core/transport"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/config"
	"github.com/Chavda-Mitul/AI-Logger/pkg/core/options"
)

// TestConfigFilename is the name of the test configuration file (without extension).
const TestConfigFilename = "ailog-config"

// GetTestdataPath returns the absolute path to the testdata directory.
// This uses runtime.Caller to locate the source file and compute the path
// relative to it, ensuring tests work regardless of the working directory.
func GetTestdataPath() string {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		return "testdata"
	}
	// thisFile is internal/core/test/instance.go
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(filepath.Dir(thisFile))))
	return filepath.Join(projectRoot, "testdata")
}

// SetupTestConfig points the configuration at testdata/ailog-config.yaml and
// reloads it, so tests see the same settings regardless of the user's
// environment.
func SetupTestConfig() error {
	if err := os.Setenv(config.ConfigPathEnv, GetTestdataPath()); err != nil {
		return err
	}
	if err := os.Setenv(config.ConfigFileNameEnv, TestConfigFilename); err != nil {
		return err
	}
	config.ResetConfig()
	return nil
}

// NewTestComplianceLogger instantiates a ComplianceLogger suitable for
// unit-testing. Every request the logger sends is published on the returned
// channel, which holds up to depth requests.
func NewTestComplianceLogger(depth int, opts ...options.LoggerOptionsFunc) (core.ComplianceLogger, *transport.ChannelTransport, chan transport.Request, error) {
	if err := SetupTestConfig(); err != nil {
		return nil, nil, nil, err
	}

	ch := make(chan transport.Request, depth)
	tr := transport.NewChannelTransport(ch)
	logger, err := core.NewComplianceLogger(append([]options.LoggerOptionsFunc{options.WithTransport(tr)}, opts...)...)
	if err != nil {
		return nil, nil, nil, err
	}

	return logger, tr, ch, nil
}
