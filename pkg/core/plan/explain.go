// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"
	"strings"
)

// Explain renders the subtree rooted at id, one node per line, indented by depth.
//
// Operator and function call nodes show their operator string; loops show their degree of parallelism and
// the parameters set by the optimizer.
func (t *Tree) Explain(id NodeID) string {
	var sb strings.Builder
	t.explain(&sb, id, 0)
	return sb.String()
}

func (t *Tree) explain(sb *strings.Builder, id NodeID, depth int) {
	n := t.mustNode(id)
	sb.WriteString(strings.Repeat("--", depth+1))
	switch n.Type {
	case NodeHop, NodeFuncCall:
		fmt.Fprintf(sb, "%s (%d), %s, exec=%s", n.Type, n.ID, n.OpString(), n.ExecType)
		if n.Recursive {
			sb.WriteString(", recursive")
		}
	default:
		fmt.Fprintf(sb, "%s (%d), exec=%s, k=%d", n.Type, n.ID, n.ExecType, n.K)
	}
	for _, p := range ParamTypeValues() {
		if p == ParamOpString {
			continue
		}
		if v, found := n.params[p]; found {
			fmt.Fprintf(sb, ", %s=%s", p, v)
		}
	}
	sb.WriteByte('\n')
	for _, c := range n.children {
		t.explain(sb, c, depth+1)
	}
}
