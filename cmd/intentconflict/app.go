package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/netsolv/intentconflict/intents"
	"github.com/netsolv/intentconflict/mapsolver"
	"github.com/netsolv/intentconflict/marco"
	"github.com/netsolv/intentconflict/topology"
)

// runConfig is the YAML run-config shape; command-line flags override
// any field set here.
type runConfig struct {
	Bias           string  `yaml:"bias"`
	Maximize       bool    `yaml:"maximize"`
	TimeoutSeconds float64 `yaml:"timeout_seconds"`
	MaxResults     int     `yaml:"max_results"`
	CEGARRounds    int     `yaml:"cegar_rounds"`
	PathLimit      int     `yaml:"path_limit"`
	Output         string  `yaml:"output"`
}

type application struct {
	flags      runConfig
	cfg        runConfig
	configPath string
	verbose    bool
	quiet      bool
	log        *zap.Logger
}

// setup resolves config-file values against flags and builds the
// logger.
func (a *application) setup(cmd *cobra.Command) error {
	level := zapcore.InfoLevel
	switch {
	case a.quiet:
		level = zapcore.ErrorLevel
	case a.verbose:
		level = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	log, err := zc.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	a.log = log

	a.cfg = a.flags
	if a.configPath != "" {
		var file runConfig
		raw, err := os.ReadFile(a.configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return fmt.Errorf("parse config %s: %w", a.configPath, err)
		}
		a.cfg = merged(file, a.flags, cmd)
	}

	if _, err := mapsolver.ParseBias(a.cfg.Bias); err != nil {
		return err
	}
	if a.cfg.TimeoutSeconds < 0 {
		return fmt.Errorf("negative timeout %v", a.cfg.TimeoutSeconds)
	}
	if a.cfg.MaxResults < 0 {
		return fmt.Errorf("negative max-results %d", a.cfg.MaxResults)
	}

	return nil
}

// merged starts from the config file and lets explicitly set flags
// win.
func merged(file, flags runConfig, cmd *cobra.Command) runConfig {
	out := file
	if out.Bias == "" || cmd.Flags().Changed("bias") {
		out.Bias = flags.Bias
	}
	if cmd.Flags().Changed("maximize") {
		out.Maximize = flags.Maximize
	}
	if cmd.Flags().Changed("timeout") {
		out.TimeoutSeconds = flags.TimeoutSeconds
	}
	if cmd.Flags().Changed("max-results") {
		out.MaxResults = flags.MaxResults
	}
	if cmd.Flags().Changed("cegar-rounds") {
		out.CEGARRounds = flags.CEGARRounds
	}
	if cmd.Flags().Changed("path-limit") {
		out.PathLimit = flags.PathLimit
	}
	if cmd.Flags().Changed("output") {
		out.Output = flags.Output
	}

	return out
}

// report is the CLI envelope around the engine's report.
type report struct {
	IntentsFile  string `json:"intents_file"`
	TopologyFile string `json:"topology_file"`
	*marco.Report
}

func (a *application) run(ctx context.Context, intentsPath, topoPath string) error {
	defer func() { _ = a.log.Sync() }()

	uni, err := intents.LoadFile(intentsPath)
	if err != nil {
		return err
	}
	topo, err := topology.LoadFile(topoPath)
	if err != nil {
		return err
	}
	a.log.Info("inputs loaded",
		zap.Int("intents", uni.Len()),
		zap.Int("routers", len(topo.Routers)),
		zap.Int("links", len(topo.Links)))

	bias, err := mapsolver.ParseBias(a.cfg.Bias)
	if err != nil {
		return err
	}
	opts := []marco.Option{
		marco.WithBias(bias),
		marco.WithMaximize(a.cfg.Maximize),
		marco.WithLogger(a.log),
	}
	if a.cfg.TimeoutSeconds > 0 {
		opts = append(opts, marco.WithTimeout(time.Duration(a.cfg.TimeoutSeconds*float64(time.Second))))
	}
	if a.cfg.MaxResults > 0 {
		opts = append(opts, marco.WithMaxResults(a.cfg.MaxResults))
	}
	if a.cfg.CEGARRounds > 0 {
		opts = append(opts, marco.WithCEGARRounds(a.cfg.CEGARRounds))
	}
	if a.cfg.PathLimit > 0 {
		opts = append(opts, marco.WithPathLimit(a.cfg.PathLimit))
	}

	eng, err := marco.New(uni, topo, opts...)
	if err != nil {
		return err
	}
	res, err := eng.Run(ctx)
	if err != nil {
		return err
	}

	return a.write(report{
		IntentsFile:  intentsPath,
		TopologyFile: topoPath,
		Report:       res,
	})
}

func (a *application) write(r report) error {
	raw, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	raw = append(raw, '\n')

	if a.cfg.Output == "" {
		_, err = os.Stdout.Write(raw)

		return err
	}
	if err := os.WriteFile(a.cfg.Output, raw, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	a.log.Info("report written", zap.String("path", a.cfg.Output))

	return nil
}
