package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     appConfig
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "safari-content-blocker",
	Short: "Convert AdGuard/uBlock filter lists to Safari content blocker JSON",
	Long: `A tool that converts AdGuard/uBlock Origin filter-list rules into the
Safari/WebKit content blocker JSON format.`,
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert filter lists to content blocker JSON",
	RunE:  runConvert,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured filter lists",
	RunE:  runList,
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	RunE:  runInit,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./configs/filter_lists.toml)")

	convertCmd.Flags().StringP("output", "o", "./output", "output directory")
	convertCmd.Flags().Bool("dry-run", false, "parse and convert without writing files")
	convertCmd.Flags().Bool("combined", true, "generate combined output file")
	convertCmd.Flags().Bool("verbose", false, "verbose output")

	rootCmd.AddCommand(convertCmd, listCmd, initCmd)
}
