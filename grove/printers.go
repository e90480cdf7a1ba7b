package grove

import (
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
	"golang.org/x/exp/constraints"
)

// debug utilities

// Dump renders the whole forest as an indented tree, one branch per
// root. Intended for debugging and the grove CLI, not for machine
// consumption.
func (f *Forest[K]) Dump() string {
	tree := treeprint.New()
	tree.SetValue("forest")
	for i := range f.roots {
		r := &f.roots[i]
		branch := tree.AddBranch(fmt.Sprintf("root[%d]", i))
		if r.ar.at(r.top).keyCount() == 0 {
			branch.AddNode("(empty)")
			continue
		}
		r.dumpNode(branch, r.top)
	}
	return tree.String()
}

// DumpRoot renders a single root's tree.
func (f *Forest[K]) DumpRoot(ri int) string {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("root[%d]", ri))
	r := &f.roots[ri]
	if r.ar.at(r.top).keyCount() == 0 {
		tree.AddNode("(empty)")
	} else {
		r.dumpNode(tree, r.top)
	}
	return tree.String()
}

func (r *root[K]) dumpNode(t treeprint.Tree, ref Ref) {
	n := r.ar.at(ref)
	label := nodeKeysString(n)
	if n.isLeaf() {
		t.AddNode(label)
		return
	}
	branch := t.AddBranch(label)
	nk := n.keyCount()
	for i := 0; i <= nk; i++ {
		r.dumpNode(branch, n.children[i])
	}
}

func nodeKeysString[K constraints.Signed](n *node[K]) string {
	nk := n.keyCount()
	parts := make([]string, 0, nk)
	for i := 0; i < nk; i++ {
		parts = append(parts, fmt.Sprintf("%d", n.keys[i]))
	}
	return "[" + strings.Join(parts, " ") + "]"
}
