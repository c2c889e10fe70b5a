package tunnelhub_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/tunnelhub/pkg/hubsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Common constants and helper functions for the tunnelhub end-to-end tests.
 * This includes container setup and login helpers.
 */

const (
	testImageName = "tunnelhub-test:latest"

	adminPassword = "E2e-Admin-Pass!"

	// Accounts point at a closed port so tunnel listing fails fast and
	// degrades to an empty list.
	testUsers = `[
		{"id": "alice", "name": "Alice", "ngrok_tokens": ["tok_alice_0001"], "ngrok_api_urls": ["http://127.0.0.1:1"]},
		{"id": "bob", "ngrok_tokens": ["tok_bob_0002"], "ngrok_api_urls": ["http://127.0.0.1:1"]}
	]`
)

// TestMain builds the Docker image once before all tests and removes it
// after they complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building TunnelHub Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up TunnelHub Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/tunnelhub/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupHubContainer starts the dashboard in a container and returns the base
// URL. extraEnv overrides the defaults.
func setupHubContainer(t *testing.T, extraEnv map[string]string) string {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"ADMIN_PASSWORD":   adminPassword,
		"KEY_STORAGE_MODE": "persistent",
		"NAME_STORE":       "sqlite",
		"USERS":            testUsers,
		"RELAY_TIMEOUT":    "1s",
		"RATE_LIMIT_RPM":   "1000",
		"ENV":              "test",
		"LOG_LEVEL":        "info",
		"LOG_FORMAT":       "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8000/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("8000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8000")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
}

// login signs in as admin and fails the test on error.
func login(t *testing.T, client *hubsdk.Client) *hubsdk.Session {
	t.Helper()
	session, err := client.Login(context.Background(), adminPassword)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token())
	return session
}
