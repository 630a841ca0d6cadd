package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spass-tools/unseal/internal/client"
	"github.com/spass-tools/unseal/internal/config"
	"github.com/spass-tools/unseal/internal/models"
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt <archive.spass>",
	Short: "Decrypt an archive and export its credentials",
	Long: `Decrypt reads a sealed archive, derives the key from the master
password, and writes the recovered credentials to the chosen format.

The password is taken from --password, the UNSEAL_PASSWORD environment
variable, or a hidden terminal prompt, in that order.`,
	Example: `  unseal decrypt backup.spass
  unseal decrypt backup.spass -f md -o passwords.md
  unseal decrypt backup.spass --on-bad-record abort`,
	Args: cobra.ExactArgs(1),
	RunE: runDecrypt,
}

var (
	decryptPassword    string
	decryptFormat      string
	decryptOutput      string
	decryptOnBadRecord string
)

func init() {
	rootCmd.AddCommand(decryptCmd)

	decryptCmd.Flags().StringVarP(&decryptPassword, "password", "p", "",
		"Master password (will prompt if not provided)")
	decryptCmd.Flags().StringVarP(&decryptFormat, "format", "f", "",
		"Output format: "+strings.Join(config.ExportFormats, ", "))
	decryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "",
		"Output file path (default: input path with the format extension)")
	decryptCmd.Flags().StringVar(&decryptOnBadRecord, "on-bad-record", "",
		"Undecodable-record policy: skip or abort")
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if decryptOnBadRecord != "" {
		cfg.Parse.OnBadRecord = decryptOnBadRecord
		if err := cfg.Validate(); err != nil {
			return err
		}
		rebuilt, err := client.New(cfg, logger)
		if err != nil {
			return err
		}
		app = rebuilt
	}

	exporter, err := app.Exporter(decryptFormat)
	if err != nil {
		return err
	}

	outputPath := decryptOutput
	if outputPath == "" {
		outputPath = cfg.Output.Path
	}
	if outputPath == "" {
		outputPath = replaceExtension(inputPath, exporter.Extension())
	}

	password, err := resolvePassword()
	if err != nil {
		return err
	}

	status("[*] Reading %s", inputPath)
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}

	status("[*] Decrypting with the provided password")
	result, err := app.Unseal.Unseal(raw, password)
	if err != nil {
		if errors.Is(err, models.ErrBadPadding) {
			return errors.New("decryption failed: check your password and archive file")
		}
		return err
	}

	for _, warning := range result.Warnings {
		color.Yellow("[!] %v", warning)
	}

	if len(result.Records) == 0 {
		status("[*] Archive decrypted but holds no credential entries")
		return nil
	}

	status("[*] Found %d credentials, writing %s", len(result.Records), outputPath)
	if err := exporter.Export(result.Records, outputPath); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	color.Green("[+] Done: %s", outputPath)
	return nil
}

// resolvePassword finds the master password from flag, environment, or
// an interactive prompt.
func resolvePassword() (string, error) {
	if decryptPassword != "" {
		return decryptPassword, nil
	}
	if env := os.Getenv("UNSEAL_PASSWORD"); env != "" {
		return env, nil
	}

	fmt.Fprint(os.Stderr, "Master password: ")
	entered, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(entered) == 0 {
		return "", errors.New("password is required")
	}
	return string(entered), nil
}

// replaceExtension swaps the file extension of path for ext.
func replaceExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}

func status(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
