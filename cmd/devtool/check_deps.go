package main

import (
	"fmt"
	"os"
	"strings"
)

type CheckDepsCommand struct{}

func (c *CheckDepsCommand) Name() string {
	return "check-deps"
}

func (c *CheckDepsCommand) Description() string {
	return "Check for required development dependencies"
}

func (c *CheckDepsCommand) Run(args []string) error {
	PrintHeader("Checking dependencies...")

	hasError := false

	// Check Go
	if version, err := getCommandOutput("go", "version"); err == nil {
		// Output: go version go1.24.0 linux/amd64
		parts := strings.Fields(version)
		if len(parts) >= 3 {
			PrintSuccess("Go installed: %s", parts[2])
		} else {
			PrintSuccess("Go installed: %s", version)
		}
	} else {
		PrintError("Go not found!")
		fmt.Println("   Install from: https://go.dev/dl/")
		hasError = true
	}

	// Check Docker
	if version, err := getCommandOutput("docker", "--version"); err == nil {
		// Output: Docker version 24.0.5, build ced0996
		parts := strings.Fields(version)
		if len(parts) >= 3 {
			PrintSuccess("Docker installed: %s", strings.TrimRight(parts[2], ","))
		} else {
			PrintSuccess("Docker installed: %s", version)
		}
	} else {
		PrintError("Docker not found!")
		fmt.Println("   Install from: https://docs.docker.com/get-docker/")
		hasError = true
	}

	// Check Docker Compose
	if version, err := getCommandOutput("docker", "compose", "version"); err == nil {
		// Output: Docker Compose version v2.20.2
		parts := strings.Fields(version)
		if len(parts) >= 4 {
			PrintSuccess("Docker Compose installed: %s", parts[3])
		} else {
			PrintSuccess("Docker Compose installed: %s", version)
		}
	} else {
		PrintWarning("Docker Compose not found (needed to run the dev database)")
	}

	// Check psql, handy for poking at the quest tables directly
	if version, err := getCommandOutput("psql", "--version"); err == nil {
		parts := strings.Fields(version)
		if len(parts) >= 3 {
			PrintSuccess("psql installed: %s", parts[2])
		} else {
			PrintSuccess("psql installed: %s", version)
		}
	} else {
		PrintWarning("psql not found (optional, cmd/debug covers most inspection)")
	}

	// Check Goose
	if version, err := c.gooseVersion(); err == nil {
		PrintSuccess("Goose installed: %s", version)
	} else {
		PrintWarning("Goose not found (recommended for migrations)")
		fmt.Println("   Install: go install github.com/pressly/goose/v3/cmd/goose@latest")
	}

	if hasError {
		return fmt.Errorf("missing required dependencies")
	}

	PrintSuccess("Environment check complete")
	return nil
}

func (c *CheckDepsCommand) gooseVersion() (string, error) {
	version, err := getCommandOutput("goose", "--version")
	if err != nil {
		// Check GOPATH/bin
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return "", err
		}
		version, err = getCommandOutput(fmt.Sprintf("%s/go/bin/goose", home), "--version")
		if err != nil {
			return "", err
		}
	}

	// Format might be "goose version:v3.15.0" or "goose version v3.15.0"
	parts := strings.Fields(version)
	if len(parts) == 0 {
		return version, nil
	}
	return strings.TrimPrefix(parts[len(parts)-1], "version:"), nil
}
