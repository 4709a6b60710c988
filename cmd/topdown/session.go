package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/topdown/ll"
	"github.com/npillmayer/topdown/ll/notation"
	"github.com/npillmayer/topdown/ll/predict"
)

// session holds a grammar file together with everything derived from it.
type session struct {
	path     string
	opts     *options
	input    *ll.Grammar // grammar as read
	grammar  *ll.Grammar // normalized grammar
	report   *ll.Report
	analysis *ll.GrammarAnalysis
	table    *ll.ParseTable
	parser   *predict.Parser
}

func newSession(path string, opts *options) (*session, error) {
	s := &session{path: path, opts: opts}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *session) llOptions() []ll.Option {
	return []ll.Option{
		ll.MaxRewrites(s.opts.maxRewrites),
		ll.StrictNonterminals(s.opts.strict),
	}
}

// load reads the grammar file and runs the pipeline
// normalize → analyse → build table.
func (s *session) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	name := strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))
	g, err := notation.Read(name, f, s.llOptions()...)
	if err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}
	ng, report, err := ll.Normalize(g, s.llOptions()...)
	if err != nil {
		return fmt.Errorf("normalizing %s: %w", name, err)
	}
	ga := ll.Analysis(ng)
	gen := ll.NewTableGenerator(ga)
	table := gen.CreateTable()
	if gen.HasConflicts && s.opts.rejectConflicts {
		return fmt.Errorf("%s: %w", name, table.Check())
	}
	s.input, s.grammar, s.report = g, ng, report
	s.analysis, s.table = ga, table
	s.parser = predict.NewParser(table)
	tracer().Infof("grammar %s loaded, %d productions after normalization", name, ng.Size())
	return nil
}

// reload re-reads the grammar file. It reports wether the grammar changed.
// On error the previous state is kept.
func (s *session) reload() (bool, error) {
	fp := s.input.Fingerprint()
	if err := s.load(); err != nil {
		return false, err
	}
	return s.input.Fingerprint() != fp, nil
}

func (s *session) normalized() bool {
	return s.report.Passes > 0
}
