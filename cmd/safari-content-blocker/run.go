package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AdguardTeam/golibs/log"
	"github.com/bnema/safari-content-blocker/internal/convert"
	"github.com/bnema/safari-content-blocker/internal/fetcher"
	"github.com/bnema/safari-content-blocker/internal/finalize"
	"github.com/bnema/safari-content-blocker/internal/models"
	"github.com/bnema/safari-content-blocker/internal/regexconf"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// ListResult records one filter list's conversion outcome for the run
// manifest.
type ListResult struct {
	Name         string `json:"name" yaml:"name"`
	URL          string `json:"source_url" yaml:"source_url"`
	RulesCount   int    `json:"rules_count" yaml:"rules_count"`
	ErrorsCount  int    `json:"errors_count" yaml:"errors_count"`
	OverLimit    bool   `json:"over_limit,omitempty" yaml:"over_limit,omitempty"`
}

// CombinedInfo describes the deduplicated, split combined output.
type CombinedInfo struct {
	TotalRules int      `json:"total_rules" yaml:"total_rules"`
	Files      []string `json:"files" yaml:"files"`
}

// Manifest is the run's summary record, written alongside the converted
// JSON files so a caller can audit what a given run produced.
type Manifest struct {
	RunID       string                `json:"run_id" yaml:"run_id"`
	Version     string                `json:"version" yaml:"version"`
	GeneratedAt string                `json:"generated_at" yaml:"generated_at"`
	Lists       map[string]ListResult `json:"lists" yaml:"lists"`
	Combined    CombinedInfo          `json:"combined" yaml:"combined"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	generateCombined, _ := cmd.Flags().GetBool("combined")
	verbose, _ := cmd.Flags().GetBool("verbose")

	enabledLists := cfg.EnabledLists()
	if len(enabledLists) == 0 {
		return fmt.Errorf("no enabled filter lists found in config")
	}

	fmt.Printf("Converting %d filter lists...\n", len(enabledLists))
	if dryRun {
		fmt.Println("[DRY RUN] No files will be written")
	}

	ctx := context.Background()
	f := fetcher.New(cfg.HTTP)
	splitter := finalize.NewSplitter(cfg.Output.MaxRulesPerFile)

	var allRules []models.WebKitRule
	results := make(map[string]ListResult)

	for _, list := range enabledLists {
		fmt.Printf("\n  Processing %s...\n", list.Name)

		data, err := f.Fetch(ctx, list.URL)
		if err != nil {
			log.Errorf("convert: fetching %s: %s", list.Name, err)
			fmt.Printf("    ERROR: %v\n", err)
			continue
		}
		fmt.Printf("    Downloaded: %d bytes\n", len(data))

		lines, err := readLines(data)
		if err != nil {
			fmt.Printf("    ERROR reading: %v\n", err)
			continue
		}

		summary := convert.ConvertArray(lines, cfg.Convert.Limit, cfg.Convert.Optimize, regexconf.Default)
		fmt.Printf("    Converted: %d rules (errors: %d)\n", summary.ConvertedCount, summary.ErrorsCount)

		if verbose {
			fmt.Printf("    Converted before limit: %d total\n", summary.TotalCount)
			for _, e := range summary.Errors {
				fmt.Printf("      - %s\n", e)
			}
		}
		if summary.OverLimit {
			fmt.Printf("    WARNING: %s\n", list.Name)
		}

		results[list.Name] = ListResult{
			Name:        list.Name,
			URL:         list.URL,
			RulesCount:  summary.ConvertedCount,
			ErrorsCount: summary.ErrorsCount,
			OverLimit:   summary.OverLimit,
		}

		if !dryRun {
			parts := splitter.Split(summary.Rules, list.Name)
			for name, partRules := range parts {
				if err := writeJSON(outputDir, name+".json", partRules); err != nil {
					fmt.Printf("    ERROR writing %s: %v\n", name, err)
				}
			}
		}

		allRules = append(allRules, summary.Rules...)
	}

	if generateCombined && len(allRules) > 0 {
		fmt.Printf("\nGenerating combined output...\n")
		allRules = finalize.Deduplicate(allRules)
		fmt.Printf("  Total rules: %d (after deduplication)\n", len(allRules))

		if !dryRun {
			parts := splitter.Split(allRules, "combined")
			var partNames []string
			for name, partRules := range parts {
				if err := writeJSON(outputDir, name+".json", partRules); err != nil {
					fmt.Printf("  ERROR writing %s: %v\n", name, err)
				}
				partNames = append(partNames, name+".json")
			}

			if cfg.Output.GenerateManifest {
				manifest := Manifest{
					RunID:       uuid.NewString(),
					Version:     time.Now().Format("2006.01.02"),
					GeneratedAt: time.Now().UTC().Format(time.RFC3339),
					Lists:       results,
					Combined: CombinedInfo{
						TotalRules: len(allRules),
						Files:      partNames,
					},
				}
				if err := writeManifest(outputDir, manifest, cfg.Output.SummaryFormat); err != nil {
					fmt.Printf("  ERROR writing manifest: %v\n", err)
				}
			}
		}
	}

	fmt.Println("\nDone!")
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	fmt.Println("Configured filter lists:")
	for _, list := range cfg.Lists {
		status := "enabled"
		if !list.Enabled {
			status = "disabled"
		}
		fmt.Printf("  [%s] %s\n", status, list.Name)
		fmt.Printf("         %s\n\n", list.URL)
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := "./configs/filter_lists.toml"
	if cfgFile != "" {
		configPath = cfgFile
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if err := os.WriteFile(configPath, []byte(defaultConfigTOML), 0644); err != nil {
		return err
	}

	fmt.Printf("Created config file: %s\n", configPath)
	return nil
}

func readLines(data []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func writeJSON(dir, filename string, data any) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, filename)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeManifest(dir string, manifest Manifest, format string) error {
	if format == "yaml" {
		data, err := yaml.Marshal(manifest)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, "manifest.yaml"), data, 0644)
	}
	return writeJSON(dir, "manifest.json", manifest)
}
