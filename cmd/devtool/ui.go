package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

func printTagged(color, tag, format string, a ...interface{}) {
	fmt.Printf(color+tag+" "+format+colorReset+"\n", a...)
}

func PrintInfo(format string, a ...interface{})    { printTagged(colorBlue, "ℹ", format, a...) }
func PrintSuccess(format string, a ...interface{}) { printTagged(colorGreen, "✓", format, a...) }
func PrintWarning(format string, a ...interface{}) { printTagged(colorYellow, "⚠", format, a...) }
func PrintError(format string, a ...interface{})   { printTagged(colorRed, "✗", format, a...) }

func PrintHeader(title string) {
	fmt.Printf("\n"+colorYellow+"=== %s ==="+colorReset+"\n", title)
}

// shellMetaPatterns never belong in devtool arguments. Arguments reach
// exec.Command directly, but some invocations (docker compose exec) hand
// them to a further shell.
var shellMetaPatterns = []string{"|", "`", "$(", "&&", "||", ">", "<"}

func vetArgs(inputs ...string) error {
	for _, s := range inputs {
		if strings.ContainsAny(s, "\n\r") {
			return fmt.Errorf("refusing argument with line breaks: %q", s)
		}
		if strings.Contains(s, "\x00") {
			return fmt.Errorf("refusing argument with null byte: %q", s)
		}
		for _, p := range shellMetaPatterns {
			if strings.Contains(s, p) {
				return fmt.Errorf("refusing argument with shell pattern %q: %q", p, s)
			}
		}
	}
	return nil
}

// buildCommand vets every argument before constructing the exec.Cmd
func buildCommand(name string, args ...string) (*exec.Cmd, error) {
	if err := vetArgs(append([]string{name}, args...)...); err != nil {
		return nil, err
	}
	// #nosec G204 - arguments are vetted above
	return exec.Command(name, args...), nil
}

// getCommandOutput runs a command and returns its trimmed stdout
func getCommandOutput(name string, args ...string) (string, error) {
	cmd, err := buildCommand(name, args...)
	if err != nil {
		return "", err
	}
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// runCommand runs a command silently
func runCommand(name string, args ...string) error {
	cmd, err := buildCommand(name, args...)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// runCommandVerbose runs a command with output passed through to the terminal
func runCommandVerbose(name string, args ...string) error {
	cmd, err := buildCommand(name, args...)
	if err != nil {
		return err
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
