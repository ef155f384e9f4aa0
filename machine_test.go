package camcal

import (
	"context"
	"testing"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/utils"
	"go.viam.com/test"
)

func TestConnectToMachineFromEnvMissingVars(t *testing.T) {
	logger := logging.NewTestLogger(t)
	t.Setenv(utils.MachineFQDNEnvVar, "")
	t.Setenv(utils.APIKeyIDEnvVar, "")
	t.Setenv(utils.APIKeyEnvVar, "")

	_, err := ConnectToMachineFromEnv(context.Background(), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, utils.MachineFQDNEnvVar)
}

func TestConnectToHostFromCLITokenNeedsHost(t *testing.T) {
	logger := logging.NewTestLogger(t)
	_, err := ConnectToHostFromCLIToken(context.Background(), "", logger)
	test.That(t, err, test.ShouldNotBeNil)
}
