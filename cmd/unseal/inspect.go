package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive.spass>",
	Short: "Show archive geometry without decrypting",
	Long: `Inspect decodes the outer container and reports the sizes of its
components. It needs no password and performs no decryption, which
makes it useful for checking whether a file is a plausible archive
before trying passwords against it.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}

	sealed, err := app.Unseal.Describe(raw)
	if err != nil {
		return err
	}

	fmt.Printf("salt:       %d bytes (%s)\n", len(sealed.Salt), hex.EncodeToString(sealed.Salt))
	fmt.Printf("iv:         %d bytes (%s)\n", len(sealed.IV), hex.EncodeToString(sealed.IV))
	fmt.Printf("ciphertext: %d bytes, %d blocks\n", len(sealed.Ciphertext), sealed.Blocks())

	return nil
}
