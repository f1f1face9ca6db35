// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/lazy"
	"github.com/go-softwarelab/common/pkg/slogx"
	"gopkg.in/yaml.v3"
)

// Scenario kinds.
const (
	KindMerge        = "merge"
	KindMergeSeq     = "merge-seq"
	KindTraverse     = "traverse"
	KindTraverseSeq  = "traverse-seq"
	KindDepthFirst   = "chainrec-dfs"
	KindBreadthFirst = "chainrec-bfs"
)

// Config is a scenario file.
type Config struct {
	Name      string     `yaml:"name"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario describes one combinator run.
type Scenario struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`

	// merge, merge-seq
	Units []Unit `yaml:"units"`

	// traverse, traverse-seq: every element of a source resolves after Delay.
	Sources [][]string    `yaml:"sources"`
	Delay   time.Duration `yaml:"delay"`

	// chainrec-dfs, chainrec-bfs: a tree of the given depth and fanout.
	Depth  int `yaml:"depth"`
	Fanout int `yaml:"fanout"`
}

// Unit is one pending unit of a merge scenario.
type Unit struct {
	Value string        `yaml:"value"`
	Delay time.Duration `yaml:"delay"`
	Error string        `yaml:"error"`
}

// ParseConfig decodes a scenario file.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scenarios: %w", err)
	}
	for i, sc := range cfg.Scenarios {
		if err := sc.validate(); err != nil {
			return nil, fmt.Errorf("scenario %d (%s): %w", i, sc.Name, err)
		}
	}
	return &cfg, nil
}

func (sc Scenario) validate() error {
	switch sc.Kind {
	case KindMerge, KindMergeSeq:
		if len(sc.Units) == 0 {
			return errors.New("no units")
		}
	case KindTraverse, KindTraverseSeq:
	case KindDepthFirst, KindBreadthFirst:
		if sc.Depth < 0 || sc.Fanout < 0 {
			return errors.New("negative depth or fanout")
		}
	default:
		return fmt.Errorf("unknown kind %q", sc.Kind)
	}
	return nil
}

// Run executes sc and returns every emitted element rendered as a string.
// When trace is set, the scenario's stream is traced through logger.
func Run(ctx context.Context, sc Scenario, logger *slog.Logger, trace bool) ([]string, error) {
	logger = slogx.DefaultIfNil(logger)
	s := sc.stream()
	if trace {
		s = lazy.Trace(s, logger.With(slogx.String("scenario", sc.Name)))
	}
	return lazy.Collect(ctx, s)
}

func (sc Scenario) stream() lazy.AsyncStream[string] {
	switch sc.Kind {
	case KindMerge:
		return lazy.AsyncMap(lazy.FromFuturesIndexed(sc.futures()...), func(c lazy.Completion[string]) string {
			return c.Value + "@" + strconv.Itoa(c.Slot)
		})
	case KindMergeSeq:
		return lazy.FromFuturesSeq(sc.futures()...)
	case KindTraverse:
		return joinRows(lazy.Traverse(sc.Sources, sc.source))
	case KindTraverseSeq:
		return joinRows(lazy.TraverseSeq(sc.Sources, sc.source))
	case KindDepthFirst:
		return lazy.AsyncChainRecDepthFirst(node{}, sc.expand)
	default:
		return lazy.AsyncChainRecBreadthFirst(node{}, sc.expand)
	}
}

// futures starts every unit. Units run from the moment the stream is built.
func (sc Scenario) futures() []*lazy.Future[string] {
	futures := make([]*lazy.Future[string], len(sc.Units))
	for i, u := range sc.Units {
		if u.Error == "" {
			futures[i] = lazy.After(u.Delay, u.Value)
			continue
		}
		f, settle := lazy.NewPromise[string]()
		err := errors.New(u.Error)
		time.AfterFunc(u.Delay, func() { _ = settle("", err) })
		futures[i] = f
	}
	return futures
}

func (sc Scenario) source(values []string) lazy.AsyncStream[string] {
	return lazy.MapAwait(lazy.AsyncFromSlice(values), func(v string) *lazy.Future[string] {
		return lazy.After(sc.Delay, v)
	})
}

func joinRows(s lazy.AsyncStream[[]string]) lazy.AsyncStream[string] {
	return lazy.AsyncMap(s, func(row []string) string {
		return "[" + strings.Join(row, " ") + "]"
	})
}

// node is a position in a chainrec tree.
type node struct {
	id    int
	depth int
}

func (sc Scenario) expand(n node) lazy.AsyncStream[kont.Either[node, string]] {
	out := []kont.Either[node, string]{kont.Right[node, string](strconv.Itoa(n.id))}
	if n.depth < sc.Depth {
		for c := range sc.Fanout {
			out = append(out, kont.Left[node, string](node{id: n.id*sc.Fanout + 1 + c, depth: n.depth + 1}))
		}
	}
	return lazy.AsyncFromSlice(out)
}
