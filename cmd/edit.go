package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ooz/internal/editor"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <hdfs-path>",
	Short: "Edit a remote file",
	Long:  `Download an HDFS file through the file gateway, open it in your editor, and upload changes.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	profile, err := GetCurrentProfile()
	if err != nil {
		return err
	}

	path := args[0]
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("expected an absolute HDFS path, got %q", path)
	}

	gw, err := openGateway(profile)
	if err != nil {
		return err
	}
	defer gw.Close()

	content, err := gw.ReadFile(path)
	if err != nil {
		return err
	}

	tmpFile, err := writeTempFile(filepath.Base(path), content)
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile)

	if err := editor.Open(tmpFile); err != nil {
		return err
	}

	modified, err := os.ReadFile(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to read edited file: %w", err)
	}

	if bytes.Equal(content, modified) {
		fmt.Println("No changes, skipping upload")
		return nil
	}

	if err := gw.WriteFile(path, modified, true); err != nil {
		return err
	}

	fmt.Printf("Uploaded %s\n", path)
	return nil
}

func writeTempFile(name string, content []byte) (string, error) {
	ext := filepath.Ext(name)
	if ext == "" {
		ext = ".txt"
	}
	prefix := strings.TrimSuffix(name, ext) + "-"

	f, err := os.CreateTemp("", prefix+"*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}

	f.Close()
	return f.Name(), nil
}
