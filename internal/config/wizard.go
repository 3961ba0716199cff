package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docbrowser! Let's point it at your documents API.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Backend URL.
	urlPrompt := promptui.Prompt{
		Label:    "Documents API base URL",
		Default:  cfg.API.BaseURL,
		Validate: validateBaseURL,
	}
	baseURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	cfg.API.BaseURL = baseURL

	// 2. Listen port.
	portPrompt := promptui.Prompt{
		Label:   "Port to serve the browser on",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 3. Data directory for the activity log.
	dataPrompt := promptui.Prompt{
		Label:   "Directory for local data",
		Default: cfg.DataDir,
	}
	cfg.DataDir, err = dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 4. Log format.
	formatPrompt := promptui.Select{
		Label: "Log format",
		Items: []string{
			"console: human readable",
			"json:    for log shippers",
		},
	}
	formatIdx, _, err := formatPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("log format: %w", err)
	}
	cfg.Log.Format = []LogFormat{LogFormatConsole, LogFormatJSON}[formatIdx]

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Printf("Set %sAPI__TOKEN if your documents API requires a bearer token.\n", EnvPrefix)
	return cfg, nil
}
