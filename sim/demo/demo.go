// Package demo provides DemoSim, a minimal simulation that walks its
// parameter tree a configurable number of times and optionally writes a
// YAML summary next to the scenario.
package demo

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/simboot/simboot/sim"
	"github.com/simboot/simboot/sim/param"
	"github.com/simboot/simboot/sim/scenario"
)

const (
	// StepsAttr sets how many passes Run makes over the tree. Defaults to 1.
	StepsAttr = "steps"
	// OutputAttr names the summary file, relative to the scenario file.
	OutputAttr = "output"
)

// Summary is the YAML document written to the output file.
type Summary struct {
	ClassName string   `yaml:"class_name"`
	Scenario  string   `yaml:"scenario"`
	Steps     int      `yaml:"steps"`
	Nodes     int      `yaml:"nodes"`
	MaxDepth  int      `yaml:"max_depth"`
	Children  []string `yaml:"children,omitempty"`
}

// Sim is the DemoSim implementation.
type Sim struct {
	params *param.Node
	src    scenario.Source
	steps  int
	output string
}

var _ sim.Simulation = (*Sim)(nil)

// New is the DemoSim factory.
func New(params *param.Node, src scenario.Source) (sim.Simulation, error) {
	steps := 1
	if params.HasAttr(StepsAttr) {
		n, err := params.IntAttr(StepsAttr)
		if err != nil {
			return nil, fmt.Errorf("invalid steps: %w", err)
		}
		if n < 0 {
			return nil, fmt.Errorf("invalid steps %d: must be >= 0", n)
		}
		steps = n
	}
	s := &Sim{params: params, src: src, steps: steps}
	if out := params.Attr(OutputAttr); out != "" {
		s.output = src.Resolve(out)
	}
	return s, nil
}

// Steps returns the configured number of passes.
func (s *Sim) Steps() int { return s.steps }

// OutputPath returns the resolved summary path, or "" when none is written.
func (s *Sim) OutputPath() string { return s.output }

// Run walks the tree once per step and writes the summary if configured.
func (s *Sim) Run() error {
	sum := s.summarize()
	log := logrus.WithFields(logrus.Fields{
		"className": sum.ClassName,
		"scenario":  sum.Scenario,
	})
	for step := 1; step <= s.steps; step++ {
		nodes, depth := walk(s.params)
		log.WithFields(logrus.Fields{
			"step":  step,
			"nodes": nodes,
			"depth": depth,
		}).Debug("demo step")
	}
	log.Infof("demo finished %d step(s) over %d node(s)", sum.Steps, sum.Nodes)

	if s.output == "" {
		return nil
	}
	data, err := yaml.Marshal(sum)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	if err := os.WriteFile(s.output, data, 0644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	log.WithField("output", s.output).Info("summary written")
	return nil
}

func (s *Sim) summarize() Summary {
	nodes, depth := walk(s.params)
	sum := Summary{
		ClassName: s.params.Attr(scenario.ClassNameAttr),
		Scenario:  s.src.Name(),
		Steps:     s.steps,
		Nodes:     nodes,
		MaxDepth:  depth,
	}
	for _, c := range s.params.Children() {
		sum.Children = append(sum.Children, c.Name())
	}
	return sum
}

// walk returns the node count and the deepest depth below the root.
func walk(root *param.Node) (nodes, maxDepth int) {
	root.Walk(func(depth int, _ *param.Node) bool {
		nodes++
		if depth > maxDepth {
			maxDepth = depth
		}
		return true
	})
	return nodes, maxDepth
}
