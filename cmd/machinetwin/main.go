package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/machinetwin/internal/config"
	"github.com/san-kum/machinetwin/internal/export"
	"github.com/san-kum/machinetwin/internal/noise"
	"github.com/san-kum/machinetwin/internal/twin"
	"github.com/san-kum/machinetwin/internal/viz"
)

var (
	initialTemp float64
	maxTemp     float64
	optimalTemp float64
	rate        float64
	power       float64
	frames      int
	intervalMs  int
	seed        int64
	historyCap  int
	configFile  string
	preset      string
	csvPath     string
	jsonPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "machinetwin",
		Short: "stochastic digital twin of a manufacturing machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&csvPath, "csv", "", "write history as CSV to file (- for stdout)")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "write run as JSON to file (- for stdout)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation with live visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&initialTemp, "temp", config.DefaultInitialTemp, "initial temperature")
	cmd.Flags().Float64Var(&maxTemp, "max-temp", config.DefaultMaxTemp, "maximum temperature")
	cmd.Flags().Float64Var(&optimalTemp, "optimal-temp", config.DefaultOptimalTemp, "optimal operating temperature")
	cmd.Flags().Float64Var(&rate, "rate", config.DefaultProductionRate, "initial production rate")
	cmd.Flags().Float64Var(&power, "power", config.DefaultPower, "initial power consumption")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of ticks")
	cmd.Flags().IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "tick interval in ms (live view)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&historyCap, "history", 0, "history capacity (0 = unbounded)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers a preset or config file under explicitly set CLI
// flags. Preset and file cannot be combined; the winner would not be
// visible to the caller.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" && configFile != "" {
		return nil, fmt.Errorf("--preset and --config are mutually exclusive")
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("temp") {
		cfg.InitialTemp = initialTemp
	}
	if f.Changed("max-temp") {
		cfg.MaxTemp = maxTemp
	}
	if f.Changed("optimal-temp") {
		cfg.OptimalTemp = optimalTemp
	}
	if f.Changed("rate") {
		cfg.ProductionRate = rate
	}
	if f.Changed("power") {
		cfg.Power = power
	}
	if f.Changed("frames") {
		cfg.Frames = frames
	}
	if f.Changed("interval") {
		cfg.IntervalMs = intervalMs
	}
	if f.Changed("history") {
		cfg.HistoryCapacity = historyCap
	}

	switch {
	case f.Changed("seed"):
		cfg.Seed = seed
	case cfg.Seed == 0:
		cfg.Seed = seed // flag default: current clock
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	tw, err := twin.New(cfg.MachineParams(), noise.NewGaussian(cfg.Seed), cfg.HistoryCapacity)
	if err != nil {
		return err
	}

	fmt.Printf("simulating %d frames (seed %d)...\n", cfg.Frames, cfg.Seed)
	start := time.Now()

	result, err := tw.Run(context.Background(), cfg.Frames)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))
	fmt.Printf("final state:\n")
	fmt.Printf("  temperature: %.2f\n", result.Final.Temperature)
	fmt.Printf("  production:  %.2f\n", result.Final.ProductionRate)
	fmt.Printf("  power:       %.2fW\n", result.Final.PowerConsumption)
	fmt.Printf("  pressure:    %.2f\n", result.Final.Pressure)
	fmt.Printf("  stress:      %.2f\n", result.Final.Stress)

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	if csvPath == "-" {
		if err := export.CSV(os.Stdout, result.History); err != nil {
			return err
		}
	} else if csvPath != "" {
		if err := export.CSVFile(csvPath, result.History); err != nil {
			return err
		}
	}

	if jsonPath == "-" {
		return export.JSON(os.Stdout, cfg.MachineParams(), cfg.Seed, result)
	}
	if jsonPath != "" {
		return export.JSONFile(jsonPath, cfg.MachineParams(), cfg.Seed, result)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	tw, err := twin.New(cfg.MachineParams(), noise.NewGaussian(cfg.Seed), cfg.HistoryCapacity)
	if err != nil {
		return err
	}

	m := viz.NewModel(tw, cfg.Frames, time.Duration(cfg.IntervalMs)*time.Millisecond)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
