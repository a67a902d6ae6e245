// Command validate provides a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Player count and turn limit bounds
//   - Resource list consistency (unique names, positive base values)
//   - Starting count and valuation range coherence
//   - Economy sanity: base values that the valuation clamp can never reach
//     are reported, since they make the public price list misleading
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parleygames/parley/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if err := engine.ValidateGameConfig(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Economy sanity checks. These are warnings that still fail validation
	// because they produce a misleading public price list.
	for _, spec := range config.Resources {
		if spec.BaseValue < config.ValuationMin {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("Resource %s base value %d is below valuation_min %d; every private valuation clamps upward",
					spec.Name, spec.BaseValue, config.ValuationMin))
		}
		if spec.BaseValue > config.ValuationMax {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("Resource %s base value %d is above valuation_max %d; every private valuation clamps downward",
					spec.Name, spec.BaseValue, config.ValuationMax))
		}
	}

	if config.StartingCountMin == 0 && config.StartingCountMax == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Starting counts are all zero; nobody can ever trade")
	}

	// A turn limit below one full rotation means some players never act.
	if config.MaxTurns < config.NumPlayers {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("max_turns (%d) is below num_players (%d); some players never get a turn",
				config.MaxTurns, config.NumPlayers))
	}

	// Add informational data
	if result.Valid {
		totalBase := 0
		for _, spec := range config.Resources {
			totalBase += spec.BaseValue
		}
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Players: %d", config.NumPlayers))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Turns: %d (%d full rotations)", config.MaxTurns, config.MaxTurns/config.NumPlayers))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Resources: %d (total base value %d)", len(config.Resources), totalBase))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Starting counts: %d-%d", config.StartingCountMin, config.StartingCountMax))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Valuations: ±%d%% clamped to %d-%d",
			config.ValuationSpreadPct, config.ValuationMin, config.ValuationMax))
	}

	return result
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
