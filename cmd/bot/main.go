// Package main is the entry point for the campaign bot CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aditya-ig10/Dungeons-Dragons-DBot/internal/errors"
)

var rootCmd = &cobra.Command{
	Use:   "bot",
	Short: "Tabletop campaign bot core",
	Long:  `Dice rolling and campaign state tooling for the tabletop bot. The roll command evaluates dice notation locally.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errors.GetMessage(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(attackCmd)
}
