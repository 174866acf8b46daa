package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/sangga/config"
)

// Run executes the config init command.
func (c *ConfigInitCmd) Run(deps *Dependencies) error {
	path, err := config.Init(deps.ConfigPath)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	if path == "" {
		existing := deps.ConfigPath
		if existing == "" {
			existing, _ = config.ConfigPath()
		}
		fmt.Fprintf(deps.Stdout, "Config already exists at %s\n", existing)
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Created %s\n", path)
	return nil
}

// Run executes the config show command. The API key is reported as set or
// unset, never printed.
func (c *ConfigShowCmd) Run(deps *Dependencies) error {
	data, err := json.MarshalIndent(deps.Config, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(data))

	key := "unset"
	if deps.Config.APIKey != "" {
		key = "set"
	}
	fmt.Fprintf(deps.Stdout, "GEMINI_API_KEY: %s\n", key)
	return nil
}
