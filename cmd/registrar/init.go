package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/registrar/internal/config"
	"github.com/jackzampolin/registrar/internal/home"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the registrar home directory and default config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := home.New(homePath)
		if err != nil {
			return err
		}

		if err := h.EnsureExists(); err != nil {
			return err
		}

		if h.ConfigExists() {
			fmt.Printf("Config already exists at %s\n", h.ConfigPath())
			return nil
		}

		if err := config.WriteDefault(h.ConfigPath()); err != nil {
			return err
		}

		fmt.Printf("Initialized registrar home at %s\n", h.Path())
		fmt.Printf("Wrote default config to %s\n", h.ConfigPath())
		return nil
	},
}
