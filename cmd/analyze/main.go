// Command analyze prints quick, human-readable heuristics about configuration
// files in the project's configs directory. It summarizes the economy of each
// config: resource base values, starting inventory worth, valuation ranges,
// and how much a single seeded opening can swing between players.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/parleygames/parley/game/engine"
)

func main() {
	dir := "configs"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(paths) == 0 {
		fmt.Printf("No config files found in %s\n", dir)
		return
	}
	sort.Strings(paths)

	for _, path := range paths {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(path))
		analyzeConfig(path)
	}
}

func analyzeConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var config engine.GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}
	if err := engine.ValidateGameConfig(&config); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Players: %d, Turns: %d\n", config.NumPlayers, config.MaxTurns)
	fmt.Printf("Starting counts: %d-%d per resource\n", config.StartingCountMin, config.StartingCountMax)

	totalBase := 0
	fmt.Println("Resources:")
	for _, spec := range config.Resources {
		lo, hi := valuationBounds(&config, spec.BaseValue)
		fmt.Printf("  %-8s base=%-3d private range=%d-%d\n", spec.Name, spec.BaseValue, lo, hi)
		totalBase += spec.BaseValue
	}

	// Expected opening worth at base values, using the midpoint count
	midCount := (config.StartingCountMin + config.StartingCountMax) / 2
	fmt.Printf("Average opening worth at base values: %d\n", midCount*totalBase)

	// Worst and best case opening worth under private valuations
	minWorth, maxWorth := 0, 0
	for _, spec := range config.Resources {
		lo, hi := valuationBounds(&config, spec.BaseValue)
		minWorth += config.StartingCountMin * lo
		maxWorth += config.StartingCountMax * hi
	}
	fmt.Printf("Opening worth range under private valuations: %d-%d\n", minWorth, maxWorth)

	spread := float64(maxWorth-minWorth) / float64(maxWorth) * 100
	fmt.Printf("Seed luck spread: %.0f%% of the best case\n", spread)
}

// valuationBounds returns the clamped range a private valuation can roll for
// a given base value.
func valuationBounds(config *engine.GameConfig, base int) (int, int) {
	delta := base * config.ValuationSpreadPct / 100
	lo := base - delta
	hi := base + delta
	if lo < config.ValuationMin {
		lo = config.ValuationMin
	}
	if hi > config.ValuationMax {
		hi = config.ValuationMax
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
