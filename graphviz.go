package msgfsm

import "github.com/enetx/g"

// ToDOT generates a DOT language string representation of the FSM for visualization.
// Nodes are the registered states; edges are the transitions observed since
// New, labelled with how often they happened.
func (f *FSM[C]) ToDOT() g.String {
	b := g.NewBuilder()

	b.WriteString("digraph FSM {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	b.WriteString("  __start [shape=point, style=invis];\n")
	b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", f.Label(0)))

	for _, s := range f.states {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", s.label))

		switch {
		case f.started && s.id == f.current:
			attrs.Push("fillcolor=\"#90ee90\"", "shape=doublecircle")
		case s.accepted.Empty():
			attrs.Push("fillcolor=\"#d3d3d3\"")
		}

		var tooltips g.Slice[g.String]

		for id := range s.accepted.Iter() {
			tooltips.Push(f.messages.Label(id))
		}

		if s.enter != nil {
			tooltips.Push("OnEnter")
		}

		if s.exit != nil {
			tooltips.Push("OnExit")
		}

		if tooltips.NotEmpty() {
			attrs.Push(g.Format("tooltip=\"{}\"", tooltips.Join("\\n")))
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", s.label, attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for t := range f.transitions().Iter() {
		b.WriteString(g.Format("  \"{}\" -> \"{}\" [label=\" x{} \"];\n", f.Label(t.From), f.Label(t.To), t.Count))
	}

	b.WriteString("\n  subgraph cluster_legend {\n")
	b.WriteString("    label = \"Legend\";\n")
	b.WriteString("    style = dashed;\n")
	b.WriteString(`    key [label=<
      <table border="0" cellpadding="4" cellspacing="0" cellborder="0">
        <tr><td align="right">●</td><td>Regular state</td></tr>
        <tr><td align="right"><font color="green">◎</font></td><td>Current state</td></tr>
        <tr><td align="right"><font color="gray">●</font></td><td>Accepts no messages</td></tr>
      </table>
    >, shape=none];`)

	b.WriteString("  }\n")
	b.WriteString("}\n")

	return b.String()
}
