// Package config provides configuration management for negotiation games.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines:
//   - Player count and turn limit
//   - The resource kinds in play with their public base values
//   - Starting inventory bounds per resource
//   - Private valuation spread and clamping range
//
// Available Configurations:
//
// The shipped configs cover different table sizes and economies:
//   - classic: three players, five resources, twenty-five turns
//   - duel: a quick two-player game
//   - grand_bazaar: a large table with an extended resource list
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	gameConfig, err := manager.LoadConfig("duel")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// Validation:
//
// All configurations are validated for:
//   - Player count within supported bounds
//   - Positive turn limit
//   - Unique, non-empty resource names with positive base values
//   - Coherent starting-count and valuation ranges
package config
