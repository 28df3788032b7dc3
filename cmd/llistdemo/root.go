package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// scenarioFlag is a pflag.Value that rejects an unknown scenario name
// at flag-parse time rather than after the run has already started,
// the way grpc-proxy's own Addr flag type validates at parse time.
type scenarioFlag string

func (s *scenarioFlag) Set(value string) error {
	if _, ok := scenarios[value]; !ok {
		return fmt.Errorf("unknown scenario %q", value)
	}
	*s = scenarioFlag(value)
	return nil
}

func (s *scenarioFlag) String() string { return string(*s) }
func (s *scenarioFlag) Type() string   { return "scenario" }

var _ pflag.Value = (*scenarioFlag)(nil)

// Execute builds and runs the root command.
func Execute() error {
	root := &cobra.Command{
		Use:   "llistdemo",
		Short: "Runs named lock-free list demonstration scenarios",
	}
	root.AddCommand(makeRunCmd())
	return root.Execute()
}

func makeRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a named scenario and validate its invariants",
		RunE:  runRun,
	}

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "Path to a TOML config file")

	defaultScenario := scenarioFlag("sequential-spine")
	flags.Var(&defaultScenario, "scenario", "Scenario to run")

	flags.Int("elements", 1000, "Number of elements")
	flags.Int("threads", 8, "Number of concurrent threads, where the scenario uses them")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	cfg := DemoConfig{Scenario: "sequential-spine", Elements: 1000, Threads: 8}

	if path, _ := flags.GetString("config"); path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = fileCfg.Demo
	}

	if flags.Changed("scenario") {
		cfg.Scenario = cmd.Flag("scenario").Value.(*scenarioFlag).String()
	}
	if flags.Changed("elements") {
		cfg.Elements, _ = flags.GetInt("elements")
	}
	if flags.Changed("threads") {
		cfg.Threads, _ = flags.GetInt("threads")
	}

	run, ok := scenarios[cfg.Scenario]
	if !ok {
		return fmt.Errorf("unknown scenario %q", cfg.Scenario)
	}

	log.WithFields(logrus.Fields{
		"scenario": cfg.Scenario,
		"elements": cfg.Elements,
		"threads":  cfg.Threads,
	}).Info("running scenario")

	if err := run(cfg.Elements, cfg.Threads); err != nil {
		log.WithError(err).Error("scenario failed validation")
		return err
	}

	log.Info("scenario passed validation")
	return nil
}
