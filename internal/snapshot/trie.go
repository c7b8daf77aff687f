// Colaborador IA - Hybrid Author Recommendation Engine
// Copyright 2026 Colaborador IA contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/colaborador-ia/colaborador

package snapshot

import (
	"sort"
	"strings"
)

// trieNode represents a node in the trie.
type trieNode struct {
	children map[rune]*trieNode
	refs     []int // Entries whose key ends at this node
}

// trie is a case-insensitive prefix tree mapping names to entry indices.
// It is filled once during Build and only read afterwards, so it carries no lock.
// Several entries may share a key (two authors with the same name).
type trie struct {
	root *trieNode
}

func newTrie() *trie {
	return &trie{root: newTrieNode()}
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// normalizeKey lowercases and trims the key.
func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// insert adds ref under key. Empty keys are ignored.
func (t *trie) insert(key string, ref int) {
	key = normalizeKey(key)
	if key == "" {
		return
	}

	node := t.root
	for _, ch := range key {
		next := node.children[ch]
		if next == nil {
			next = newTrieNode()
			node.children[ch] = next
		}
		node = next
	}

	node.refs = append(node.refs, ref)
}

// withPrefix returns the refs of every key starting with prefix, deduplicated,
// in lexical key order. Collection stops once limit refs are gathered (limit <= 0
// means no limit).
func (t *trie) withPrefix(prefix string, limit int) []int {
	prefix = normalizeKey(prefix)
	if prefix == "" {
		return nil
	}

	node := t.root
	for _, ch := range prefix {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}

	seen := make(map[int]struct{})
	var out []int
	t.collect(node, seen, &out, limit)
	return out
}

func (t *trie) collect(node *trieNode, seen map[int]struct{}, out *[]int, limit int) {
	if limit > 0 && len(*out) >= limit {
		return
	}
	for _, ref := range node.refs {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		*out = append(*out, ref)
		if limit > 0 && len(*out) >= limit {
			return
		}
	}

	keys := make([]rune, 0, len(node.children))
	for ch := range node.children {
		keys = append(keys, ch)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, ch := range keys {
		t.collect(node.children[ch], seen, out, limit)
		if limit > 0 && len(*out) >= limit {
			return
		}
	}
}
