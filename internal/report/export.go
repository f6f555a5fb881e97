package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"sigs.k8s.io/yaml"

	"lexdfa/internal/automaton"
)

// Format names an output encoding for the automaton.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
)

// Table is the serializable form of a DFA.
type Table struct {
	Start    int      `json:"start"`
	Alphabet []string `json:"alphabet"`
	States   []State  `json:"states"`
}

type State struct {
	ID          int            `json:"id"`
	Accept      string         `json:"accept,omitempty"`
	Transitions map[string]int `json:"transitions,omitempty"`
}

// NewTable converts d to its serializable form. Symbols are stored as strings.
func NewTable(d *automaton.DFA) Table {
	table := Table{Start: int(d.Start())}
	for _, c := range d.Alphabet() {
		table.Alphabet = append(table.Alphabet, string(c))
	}

	for id := range d.NumStates() {
		state := State{ID: id}
		if accept := d.Accept(automaton.StateID(id)); accept.Accepting() {
			state.Accept = accept.String()
		}
		for _, t := range d.Transitions(automaton.StateID(id)) {
			if state.Transitions == nil {
				state.Transitions = map[string]int{}
			}
			state.Transitions[string(t.Symbol)] = int(t.Target)
		}
		table.States = append(table.States, state)
	}
	return table
}

// Write encodes d to w in the given format.
func Write(w io.Writer, d *automaton.DFA, format Format) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, PrintDFA(d))
		return err
	case FormatYAML:
		out, err := yaml.Marshal(NewTable(d))
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		_, err = w.Write(out)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewTable(d)); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case FormatDOT:
		return WriteDOT(w, d)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// WriteDOT writes d as a Graphviz digraph. Accepting states are drawn as
// double circles labelled with their category.
func WriteDOT(w io.Writer, d *automaton.DFA) error {
	tw := tabwriter.NewWriter(w, 4, 8, 1, '\t', 0)
	fmt.Fprintf(tw, "digraph dfa {\n")
	fmt.Fprintf(tw, "\trankdir=LR;\n")
	for id := range d.NumStates() {
		state := automaton.StateID(id)
		if accept := d.Accept(state); accept.Accepting() {
			fmt.Fprintf(tw, "\tn%d\t[label=\"%d\\n%s\",shape=doublecircle];\n", id, id, accept)
		} else {
			fmt.Fprintf(tw, "\tn%d\t[label=\"%d\",shape=circle];\n", id, id)
		}
	}
	fmt.Fprintf(tw, "\tstart\t[shape=point];\n")
	fmt.Fprintf(tw, "\tstart -> n%d;\n", d.Start())
	for id := range d.NumStates() {
		for _, t := range d.Transitions(automaton.StateID(id)) {
			fmt.Fprintf(tw, "\tn%d -> n%d\t[label=%s];\n", id, t.Target, strconv.Quote(string(t.Symbol)))
		}
	}
	fmt.Fprintf(tw, "}\n")
	return tw.Flush()
}
