// Package loader_test 提供 config_loader 包的黑盒测试。
package loader_test

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-greeting/internal/conf"
	loader "github.com/bionicotaku/lingo-services-greeting/internal/infrastructure/config_loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// isolate 切换到空的临时工作目录并清理相关环境变量。
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, key := range []string{"CONF_PATH", "SERVICE_NAME", "SERVICE_VERSION", "APP_ENV"} {
		unsetEnv(t, key)
	}
	return dir
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestBuildFallsBackToDefaultsWithoutConfigDir(t *testing.T) {
	isolate(t)

	bundle, err := loader.Build(loader.Params{})
	require.NoError(t, err)

	http := bundle.Bootstrap.Server.HTTP
	assert.Equal(t, conf.GreetingAddr, http.Addr)
	assert.Equal(t, "tcp", http.Network)
	assert.Equal(t, time.Second, http.Timeout.AsDuration())
	assert.Nil(t, bundle.Bootstrap.Server.GetAdmin())
	assert.True(t, bundle.Bootstrap.Observability.GetMetrics().IsEnabled())

	assert.Equal(t, "greeting-responder", bundle.Service.Name)
	assert.Equal(t, "dev", bundle.Service.Version)
	assert.Equal(t, "development", bundle.Service.Environment)
	assert.NotEmpty(t, bundle.Service.InstanceID)
}

func TestBuildMissingExplicitPathFails(t *testing.T) {
	dir := isolate(t)

	_, err := loader.Build(loader.Params{ConfPath: filepath.Join(dir, "missing")})
	require.Error(t, err)

	var buildErr loader.BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.Equal(t, "load", buildErr.Stage)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestBuildMissingConfPathEnvFails(t *testing.T) {
	dir := isolate(t)
	t.Setenv("CONF_PATH", filepath.Join(dir, "nowhere"))

	_, err := loader.Build(loader.Params{})
	var buildErr loader.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "load", buildErr.Stage)
}

func TestBuildReadsConfigFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
server:
  http:
    timeout: 2.5s
  admin:
    addr: 127.0.0.1:9100
    timeout: 3s
observability:
  metrics:
    enabled: false
`)

	bundle, err := loader.Build(loader.Params{ConfPath: dir})
	require.NoError(t, err)

	server := bundle.Bootstrap.Server
	assert.Equal(t, 2500*time.Millisecond, server.HTTP.Timeout.AsDuration())
	require.NotNil(t, server.Admin)
	assert.Equal(t, "127.0.0.1:9100", server.Admin.Addr)
	assert.Equal(t, 3*time.Second, server.Admin.Timeout.AsDuration())
	assert.False(t, bundle.Bootstrap.Observability.GetMetrics().IsEnabled())
}

func TestBuildIgnoresConfiguredGreetingAddress(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
server:
  http:
    addr: 0.0.0.0:9999
    network: unix
`)

	bundle, err := loader.Build(loader.Params{ConfPath: dir})
	require.NoError(t, err)
	assert.Equal(t, conf.GreetingAddr, bundle.Bootstrap.Server.HTTP.Addr)
	assert.Equal(t, "tcp", bundle.Bootstrap.Server.HTTP.Network)
	assert.Equal(t, time.Second, bundle.Bootstrap.Server.HTTP.Timeout.AsDuration())
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{
			name:   "negative timeout",
			config: "server:\n  http:\n    timeout: -1s\n",
		},
		{
			name:   "admin collides with greeting address",
			config: "server:\n  admin:\n    addr: 127.0.0.1:3000\n",
		},
		{
			name:   "admin address without port",
			config: "server:\n  admin:\n    addr: localhost\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			writeConfig(t, dir, tt.config)

			_, err := loader.Build(loader.Params{ConfPath: dir})
			var buildErr loader.BuildError
			require.ErrorAs(t, err, &buildErr)
			assert.Equal(t, "validate", buildErr.Stage)
		})
	}
}

func TestBuildScanError(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "server:\n  http:\n    timeout: soon\n")

	_, err := loader.Build(loader.Params{ConfPath: dir})
	var buildErr loader.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.Equal(t, "scan", buildErr.Stage)
}

func TestBuildServiceMetadata(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		params  loader.Params
		wantNm  string
		wantVer string
		wantEnv string
	}{
		{
			name:    "build-time values",
			params:  loader.Params{ServiceName: "built", ServiceVersion: "v1.2.3"},
			wantNm:  "built",
			wantVer: "v1.2.3",
			wantEnv: "development",
		},
		{
			name:    "env overrides build-time values",
			env:     map[string]string{"SERVICE_NAME": "from-env", "SERVICE_VERSION": "v9", "APP_ENV": "PROD"},
			params:  loader.Params{ServiceName: "built", ServiceVersion: "v1.2.3"},
			wantNm:  "from-env",
			wantVer: "v9",
			wantEnv: "production",
		},
		{
			name:    "dev alias",
			env:     map[string]string{"APP_ENV": "dev"},
			wantNm:  "greeting-responder",
			wantVer: "dev",
			wantEnv: "development",
		},
		{
			name:    "stg alias",
			env:     map[string]string{"APP_ENV": "stg"},
			wantNm:  "greeting-responder",
			wantVer: "dev",
			wantEnv: "staging",
		},
		{
			name:    "custom environment kept lowercased",
			env:     map[string]string{"APP_ENV": "QA"},
			wantNm:  "greeting-responder",
			wantVer: "dev",
			wantEnv: "qa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			bundle, err := loader.Build(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNm, bundle.Service.Name)
			assert.Equal(t, tt.wantVer, bundle.Service.Version)
			assert.Equal(t, tt.wantEnv, bundle.Service.Environment)

			logCfg := bundle.Service.LoggerConfig()
			assert.Equal(t, bundle.Service.Name, logCfg.Service)
			assert.Equal(t, bundle.Service.InstanceID, logCfg.HostID)
		})
	}
}

func TestBuildLoadsEnvFiles(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "server: {}\n")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVICE_NAME=from-dotenv\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("SERVICE_NAME") })

	bundle, err := loader.Build(loader.Params{ConfPath: dir})
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", bundle.Service.Name)
}

func TestParseConfPath(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	got, err := loader.ParseConfPath(fs, []string{"-conf", "/etc/greeting"})
	require.NoError(t, err)
	assert.Equal(t, "/etc/greeting", got)

	assert.Equal(t, "/etc/greeting", loader.ResolveConfPath("/etc/greeting"))
}

func TestProviders(t *testing.T) {
	isolate(t)
	bundle, err := loader.Build(loader.Params{})
	require.NoError(t, err)

	assert.Same(t, bundle.Bootstrap.Server, loader.ProvideServerConfig(bundle))
	assert.Same(t, bundle.Bootstrap.Observability, loader.ProvideObservabilityConfig(bundle))
	assert.Equal(t, bundle.Service, loader.ProvideServiceMetadata(bundle))
	assert.Nil(t, loader.ProvideServerConfig(nil))
}
