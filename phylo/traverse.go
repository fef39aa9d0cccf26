// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phylo

// PreOrder visits the clade of a node in pre-order
// (a node before its descendants),
// calling fn on each node.
// If fn returns false the walk stops.
func (t *Tree) PreOrder(id int, fn func(id int) bool) {
	stack := []int{t.node(id).id}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			return
		}

		// push in reverse order
		// so the first child is visited first
		children := t.nodes[n].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// PostOrder visits the clade of a node in post-order
// (descendants before the node),
// calling fn on each node.
// If fn returns false the walk stops.
func (t *Tree) PostOrder(id int, fn func(id int) bool) {
	t.postOrder(t.node(id).id, fn)
}

func (t *Tree) postOrder(id int, fn func(id int) bool) bool {
	for _, c := range t.nodes[id].children {
		if !t.postOrder(c, fn) {
			return false
		}
	}
	return fn(id)
}
