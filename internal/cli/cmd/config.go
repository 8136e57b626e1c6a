package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bnema/moto/internal/cli/styles"
	"github.com/bnema/moto/internal/infrastructure/config"
)

var schemaWrite string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
	Long: `Show where the configuration lives, print the effective settings, or emit
the JSON schema used by editors to validate config.toml.`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file location",
	RunE:  runConfigPath,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print or write the configuration JSON schema",
	RunE:  runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configSchemaCmd)

	configSchemaCmd.Flags().StringVarP(&schemaWrite, "write", "w", "",
		"write the schema to a file instead of stdout (use '-' for next to config.toml)")
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	path, err := app.ConfigFile()
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	_, statErr := os.Stat(path)
	fmt.Println(renderer.RenderPath(path, !errors.Is(statErr, fs.ErrNotExist)))
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	data, err := config.Render(app.Config)
	if err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	path, _ := app.ConfigFile()
	fmt.Print(renderer.RenderDocument(styles.IconConfig+" "+path, string(data)))
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	renderer := styles.NewConfigRenderer(app.Theme)

	if schemaWrite == "" {
		data, err := config.Schema()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	target := schemaWrite
	if target == "-" {
		cfgFile, err := app.ConfigFile()
		if err != nil {
			fmt.Println(renderer.RenderError(err))
			return nil
		}
		target = filepath.Join(filepath.Dir(cfgFile), "config.schema.json")
	}
	if err := config.WriteSchemaFile(target); err != nil {
		fmt.Println(renderer.RenderError(err))
		return nil
	}
	fmt.Println(renderer.RenderSchemaWritten(target))
	return nil
}
