package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default global config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := newConfigService(cmd)
			if err := svc.CreateGlobalConfig(cmd.Context()); err != nil {
				return fmt.Errorf("creating global config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Global config written")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show [dir]",
		Short: "Print the effective configuration for a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			cfg, err := loadConfig(cmd, dir, map[string]interface{}{})
			if err != nil {
				return err
			}

			encoder := toml.NewEncoder(cmd.OutOrStdout())
			encoder.Indent = "  "
			return encoder.Encode(cfg)
		},
	})

	return cmd
}
