package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/dudrev/s3ftp/params"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Create the object parameter config file",
	Long: `Create the object parameter config file interactively.

The file holds default per-object upload parameters (server-side
encryption, canned ACL, storage class) applied to every put and mkdir.
Parameters given at the call site override these defaults.

The file is written to ~/.s3ftp.json unless --config names a path.`,
	RunE: runConfigure,
}

var (
	sseChoices = []string{"none", "AES256", "aws:kms"}
	aclChoices = []string{
		"none", "private", "public-read", "public-read-write",
		"authenticated-read", "bucket-owner-full-control",
	}
	storageClassChoices = []string{
		"none", "STANDARD", "STANDARD_IA", "ONEZONE_IA",
		"INTELLIGENT_TIERING", "GLACIER", "DEEP_ARCHIVE",
	}
)

func runConfigure(_ *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, params.ConfigName+".json")
	}

	if _, err := os.Stat(path); err == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("%s already exists. Overwrite it", path),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // user declined, not an error
		}
	}

	settings := params.Params{}

	sse, err := selectChoice("Server-side encryption", sseChoices)
	if err != nil {
		return handlePromptError(err)
	}
	if sse != "none" {
		settings["ServerSideEncryption"] = sse
	}
	if sse == "aws:kms" {
		keyPrompt := promptui.Prompt{
			Label: "KMS key ID (empty for the account default key)",
		}
		keyID, promptErr := keyPrompt.Run()
		if promptErr != nil {
			return handlePromptError(promptErr)
		}
		if keyID != "" {
			settings["SSEKMSKeyId"] = keyID
		}
	}

	acl, err := selectChoice("Canned ACL", aclChoices)
	if err != nil {
		return handlePromptError(err)
	}
	if acl != "none" {
		settings["ACL"] = acl
	}

	class, err := selectChoice("Storage class", storageClassChoices)
	if err != nil {
		return handlePromptError(err)
	}
	if class != "none" {
		settings["StorageClass"] = class
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func selectChoice(label string, choices []string) (string, error) {
	sel := promptui.Select{
		Label: label,
		Items: choices,
	}
	_, choice, err := sel.Run()
	return choice, err
}

// handlePromptError maps promptui cancellation to a clean exit.
func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
