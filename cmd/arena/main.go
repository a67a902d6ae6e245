// Command arena runs a complete negotiation game locally, with no server
// in between. Each seat is filled by an agent: a human at the terminal, a
// scripted action list, or a hosted model reached through OpenRouter.
//
// Examples:
//
//	arena --agent human --agent idle --agent idle
//	arena --config duel --seed 42 --agent model:openai/gpt-4o-mini
//	arena --agent script:demo.txt --agent human
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/parleygames/parley/game/agent"
	"github.com/parleygames/parley/game/config"
	"github.com/parleygames/parley/game/engine"
	"github.com/parleygames/parley/game/observation"
	"github.com/parleygames/parley/game/turn"
)

func main() {
	cmd := &cli.Command{
		Name:  "arena",
		Usage: "play a negotiation game locally between humans, scripts and models",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "game configuration name to load (empty for the built-in classic game)",
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory holding game configuration JSON files",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "deterministic seed for inventories and valuations (0 picks one from the clock)",
			},
			&cli.StringSliceFlag{
				Name:  "agent",
				Usage: "agent per seat: human, idle, script:FILE or model:NAME (last one repeats to fill remaining seats)",
				Value: []string{"human"},
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print every engine event as it happens",
			},
		},
		Action: runArena,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runArena(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadGameConfig(cmd.String("config"), cmd.String("config-dir"))
	if err != nil {
		return err
	}

	agents, err := buildAgents(expandAgentSpecs(cmd.StringSlice("agent"), cfg.NumPlayers))
	if err != nil {
		return err
	}

	seed := cmd.Uint64("seed")
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	turns := turn.NewState(cfg.NumPlayers, cfg.MaxTurns)
	game, err := engine.NewNegotiation(cfg, turns)
	if err != nil {
		return err
	}
	game.Reset(seed)
	renderer := observation.NewRenderer()

	fmt.Printf("=== %s ===\n", cfg.Name)
	fmt.Printf("%d players, %d turns, seed %d\n", cfg.NumPlayers, cfg.MaxTurns, seed)

	trace := cmd.Bool("trace")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		current := turns.CurrentPlayer()
		renderer.Append(current, turns.Poll(current))

		action, err := agents[current].Act(ctx, renderer.Render(current))
		if err != nil {
			return fmt.Errorf("agent for player %d: %w", current, err)
		}

		events, done, _ := game.Step(action)
		if trace {
			for _, ev := range events {
				fmt.Printf("  [turn %d] %s\n", turns.Turn(), describeEvent(ev))
			}
		}
		if done {
			break
		}
	}

	printOutcome(game, turns)
	return nil
}

// loadGameConfig resolves the named configuration from disk, or falls back
// to the built-in classic game when no name was given.
func loadGameConfig(name, dir string) (*engine.GameConfig, error) {
	if name == "" {
		return engine.DefaultConfig(), nil
	}
	manager, err := config.NewManager(dir)
	if err != nil {
		return nil, fmt.Errorf("open config directory: %w", err)
	}
	return manager.LoadConfig(name)
}

// expandAgentSpecs stretches the given specs to cover every seat by
// repeating the last spec.
func expandAgentSpecs(specs []string, numPlayers int) []string {
	if len(specs) == 0 {
		specs = []string{"human"}
	}
	out := make([]string, numPlayers)
	for i := range out {
		if i < len(specs) {
			out[i] = specs[i]
		} else {
			out[i] = specs[len(specs)-1]
		}
	}
	return out
}

// parseAgentSpec builds one agent from its command line spec.
func parseAgentSpec(spec string) (agent.Agent, error) {
	switch {
	case spec == "human":
		return agent.NewHuman(os.Stdin, os.Stdout), nil
	case spec == "idle":
		return agent.NewScripted(), nil
	case strings.HasPrefix(spec, "script:"):
		path := strings.TrimPrefix(spec, "script:")
		actions, err := readScript(path)
		if err != nil {
			return nil, err
		}
		return agent.NewScripted(actions...), nil
	case strings.HasPrefix(spec, "model:"):
		return agent.NewOpenRouter(strings.TrimPrefix(spec, "model:"))
	default:
		return nil, fmt.Errorf("unknown agent spec %q (want human, idle, script:FILE or model:NAME)", spec)
	}
}

func buildAgents(specs []string) ([]agent.Agent, error) {
	agents := make([]agent.Agent, len(specs))
	for i, spec := range specs {
		a, err := parseAgentSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("player %d: %w", i, err)
		}
		agents[i] = a
	}
	return agents, nil
}

// readScript loads one action per line, skipping blanks and # comments.
func readScript(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var actions []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		actions = append(actions, line)
	}
	return actions, nil
}

func describeEvent(ev engine.Event) string {
	switch ev.Kind {
	case engine.EventBroadcast:
		return fmt.Sprintf("Player %d broadcasts: %s", ev.Player, ev.Message)
	case engine.EventWhisper:
		return fmt.Sprintf("Player %d whispers to Player %d", ev.Player, ev.Target)
	case engine.EventInvalidMove:
		return fmt.Sprintf("Player %d invalid move: %s", ev.Player, ev.Message)
	default:
		return fmt.Sprintf("Player %d %s: %s", ev.Player, ev.Kind, ev.Message)
	}
}

func printOutcome(game *engine.Negotiation, turns *turn.State) {
	outcome := turns.Outcome()
	fmt.Println("\n=== Game over ===")
	if outcome.Draw {
		fmt.Println("Result: draw")
	} else {
		fmt.Printf("Winners: %v\n", outcome.Winners)
	}
	if outcome.Reason != "" {
		fmt.Println(outcome.Reason)
	}

	values := game.FinalValues()
	players := make([]int, 0, len(values))
	for pid := range values {
		players = append(players, pid)
	}
	sort.Ints(players)
	for _, pid := range players {
		fmt.Printf("  Player %d: %d (invalid moves: %d)\n", pid, values[pid], turns.InvalidMoveCount(pid))
	}
}
