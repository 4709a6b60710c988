package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/topdown/ll"
	"github.com/npillmayer/topdown/ll/predict"
	"github.com/pterm/pterm"
)

func renderRules(title string, g *ll.Grammar) {
	pterm.DefaultSection.Println(title)
	data := pterm.TableData{{"#", "LHS", "RHS"}}
	for _, r := range g.Rules() {
		data = append(data, []string{fmt.Sprint(r.Serial), r.LHS, strings.Join(r.RHS, " ")})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderReport(report *ll.Report) {
	for _, rewrite := range report.Rewrites {
		pterm.Info.Println(rewrite)
	}
	if !report.LL1Shaped {
		pterm.Warning.Println(fmt.Sprintf("grammar is not LL(1)-shaped after %d passes", report.Passes))
	}
	if len(report.IndirectLeftRecursion) > 0 {
		pterm.Warning.Println(fmt.Sprintf("indirect left recursion through %s",
			strings.Join(report.IndirectLeftRecursion, ", ")))
	}
}

func renderSets(ga *ll.GrammarAnalysis) {
	pterm.DefaultSection.Println("FIRST and FOLLOW")
	data := pterm.TableData{{"Symbol", "Kind", "FIRST", "FOLLOW"}}
	ga.Grammar().EachNonTerminal(func(A *ll.Symbol) {
		data = append(data, []string{A.Name, A.Kind().String(),
			"{ " + strings.Join(ga.First(A), ", ") + " }",
			"{ " + strings.Join(ga.Follow(A), ", ") + " }",
		})
	})
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	first, follow := ga.Passes()
	pterm.Info.Println(fmt.Sprintf("FIRST stable after %d passes, FOLLOW after %d", first, follow))
}

func renderTable(t *ll.ParseTable) {
	pterm.DefaultSection.Println("LL(1) table")
	header := []string{""}
	for _, a := range t.Terminals() {
		header = append(header, a.Name)
	}
	data := pterm.TableData{header}
	for _, A := range t.NonTerminals() {
		row := []string{A.Name}
		for _, a := range t.Terminals() {
			row = append(row, t.Label(A, a))
		}
		data = append(data, row)
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	renderConflicts(t)
}

func renderConflicts(t *ll.ParseTable) {
	conflicts := t.Conflicts()
	for _, c := range conflicts {
		pterm.Warning.Println(fmt.Sprintf("conflict at %s", c))
	}
	if len(conflicts) > 0 {
		pterm.Warning.Println("grammar is not LL(1), conflicts resolved by production order")
	}
}

func renderTrace(result *predict.Result) {
	data := pterm.TableData{{"Stack", "Input", "Action"}}
	for _, step := range result.Steps {
		data = append(data, []string{strings.Join(step.Stack, " "),
			strings.Join(step.Input, " "), step.Label()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if result.Recoveries() > 0 {
		pterm.Info.Println(fmt.Sprintf("%d recoveries (%s: %d, %s: %d)", result.Recoveries(),
			ll.RecoverEXT, result.EXT, ll.RecoverEXP, result.EXP))
	}
	if result.Accepted() && result.Recoveries() > 0 {
		pterm.Warning.Println("input accepted after error recovery")
	} else if result.Accepted() {
		pterm.Success.Println("input accepted")
	} else {
		pterm.Error.Println(fmt.Sprintf("input rejected: %s", result.Reason))
	}
}
