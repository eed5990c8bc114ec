// Tagsmith - Media Catalog Tag Generation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tagsmith

package tagging

import "strings"

// rule maps a label to the trigger substrings that emit it.
type rule struct {
	label    string
	triggers []string
}

// matcher is an Aho-Corasick automaton over the triggers of an ordered rule
// table. It finds every rule with at least one trigger in a single pass over
// the text, in O(n + m + z) time:
//   - n = length of text
//   - m = total length of all triggers
//   - z = number of hits
//
// A matcher is built once and never modified afterwards, so concurrent
// searches need no locking.
type matcher struct {
	root          *acNode
	rules         []rule
	caseSensitive bool
}

// acNode represents a node in the automaton.
type acNode struct {
	children map[rune]*acNode
	failure  *acNode // Failure link for when match fails
	output   []int   // Indices of rules with a trigger ending at this node
	depth    int
}

func newACNode(depth int) *acNode {
	return &acNode{
		children: make(map[rune]*acNode),
		depth:    depth,
	}
}

// newMatcher compiles a case-insensitive matcher for the rule table.
func newMatcher(rules []rule) *matcher {
	return compile(rules, false)
}

// newCaseSensitiveMatcher compiles a matcher that compares text verbatim.
func newCaseSensitiveMatcher(rules []rule) *matcher {
	return compile(rules, true)
}

func compile(rules []rule, caseSensitive bool) *matcher {
	m := &matcher{
		root:          newACNode(0),
		rules:         rules,
		caseSensitive: caseSensitive,
	}

	for i, r := range rules {
		for _, trigger := range r.triggers {
			m.insert(i, trigger)
		}
	}
	m.buildFailureLinks()

	return m
}

func (m *matcher) fold(s string) string {
	if m.caseSensitive {
		return s
	}
	return strings.ToLower(s)
}

// insert adds one trigger of rule index to the trie.
func (m *matcher) insert(index int, trigger string) {
	if trigger == "" {
		return
	}

	node := m.root
	for _, ch := range m.fold(trigger) {
		if node.children[ch] == nil {
			node.children[ch] = newACNode(node.depth + 1)
		}
		node = node.children[ch]
	}

	for _, existing := range node.output {
		if existing == index {
			return
		}
	}
	node.output = append(node.output, index)
}

// buildFailureLinks builds failure links using BFS.
func (m *matcher) buildFailureLinks() {
	queue := make([]*acNode, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			// Longest proper suffix that is also a trie path
			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}

			if fail == nil {
				child.failure = m.root
			} else {
				child.failure = fail.children[ch]
				child.output = append(child.output, child.failure.output...)
			}
		}
	}
}

// hits scans text once and marks every rule with at least one trigger
// present. It stops early once all rules have been seen.
func (m *matcher) hits(text string) []bool {
	seen := make([]bool, len(m.rules))
	remaining := len(m.rules)
	if remaining == 0 || text == "" {
		return seen
	}

	node := m.root
	for _, ch := range m.fold(text) {
		for node != nil && node.children[ch] == nil {
			node = node.failure
		}
		if node == nil {
			node = m.root
			continue
		}
		node = node.children[ch]

		for _, idx := range node.output {
			if !seen[idx] {
				seen[idx] = true
				remaining--
			}
		}
		if remaining == 0 {
			break
		}
	}

	return seen
}

// Labels returns the label of every matching rule in table order.
// The result is never nil.
func (m *matcher) Labels(text string) []string {
	seen := m.hits(text)
	labels := make([]string, 0, len(seen))
	for i, ok := range seen {
		if ok {
			labels = append(labels, m.rules[i].label)
		}
	}
	return labels
}

// Contains reports whether any trigger occurs in text.
func (m *matcher) Contains(text string) bool {
	for _, ok := range m.hits(text) {
		if ok {
			return true
		}
	}
	return false
}

// textBlob joins the scalar fields and every list entry with a single space.
// Absent scalars are kept as empty parts, so each still contributes its
// separator.
func textBlob(scalars []string, lists ...[]string) string {
	n := len(scalars)
	for _, l := range lists {
		n += len(l)
	}
	parts := make([]string, 0, n)
	parts = append(parts, scalars...)
	for _, l := range lists {
		parts = append(parts, l...)
	}
	return strings.Join(parts, " ")
}
