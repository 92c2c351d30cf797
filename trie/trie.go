// Package trie implements a prefix-indexed set of strings.
//
// Keys are stored one rune per node, so prefix queries cost the length of the
// prefix plus the size of the answer. Keys enumerate in lexicographic rune
// order, which also makes a Trie a sorted query source:
//
//	t := trie.New("gopher", "go", "rust")
//	short, _ := query.From[string](t).Where(func(s string) bool { return len(s) < 5 }).ToSlice()
//	// short == [go rust]
package trie

import (
	"maps"
	"slices"
	"strings"

	"github.com/kbukum/querykit/errors"
	"github.com/kbukum/querykit/query"
)

type node struct {
	children map[rune]*node
	terminal bool
}

func (n *node) child(r rune) *node {
	if n.children == nil {
		return nil
	}
	return n.children[r]
}

// Trie is a set of strings indexed by prefix. The zero value is an empty trie
// ready to use. A Trie is not safe for concurrent use.
type Trie struct {
	root node
	size int
}

// New creates a trie holding keys.
func New(keys ...string) *Trie {
	t := &Trie{}
	for _, k := range keys {
		t.Insert(k)
	}
	return t
}

// Insert adds key and reports whether it was not already present.
func (t *Trie) Insert(key string) bool {
	n := &t.root
	for _, r := range key {
		next := n.child(r)
		if next == nil {
			if n.children == nil {
				n.children = make(map[rune]*node)
			}
			next = &node{}
			n.children[r] = next
		}
		n = next
	}
	if n.terminal {
		return false
	}
	n.terminal = true
	t.size++
	return true
}

// find returns the node reached by walking s, or nil.
func (t *Trie) find(s string) *node {
	n := &t.root
	for _, r := range s {
		if n = n.child(r); n == nil {
			return nil
		}
	}
	return n
}

// Contains reports whether key is in the set.
func (t *Trie) Contains(key string) bool {
	n := t.find(key)
	return n != nil && n.terminal
}

// HasPrefix reports whether some key starts with prefix.
func (t *Trie) HasPrefix(prefix string) bool {
	n := t.find(prefix)
	return n != nil && (n.terminal || len(n.children) > 0)
}

// WithPrefix returns every key starting with prefix, in lexicographic order.
// The empty prefix returns all keys.
func (t *Trie) WithPrefix(prefix string) []string {
	n := t.find(prefix)
	if n == nil {
		return []string{}
	}
	keys := []string{}
	var b strings.Builder
	b.WriteString(prefix)
	collect(n, &b, &keys)
	return keys
}

// collect appends every key below n, depth first in rune order. b holds the
// path to n.
func collect(n *node, b *strings.Builder, keys *[]string) {
	if n.terminal {
		*keys = append(*keys, b.String())
	}
	if len(n.children) == 0 {
		return
	}
	base := b.String()
	for _, r := range slices.Sorted(maps.Keys(n.children)) {
		b.Reset()
		b.WriteString(base)
		b.WriteRune(r)
		collect(n.children[r], b, keys)
	}
}

// Delete removes key. An absent key is a NOT_FOUND error. Branches left
// without keys are pruned.
func (t *Trie) Delete(key string) error {
	runes := []rune(key)
	path := make([]*node, 0, len(runes)+1)
	n := &t.root
	path = append(path, n)
	for _, r := range runes {
		if n = n.child(r); n == nil {
			return errors.NotFound("key", key)
		}
		path = append(path, n)
	}
	if !n.terminal {
		return errors.NotFound("key", key)
	}
	n.terminal = false
	t.size--

	for i := len(runes); i > 0; i-- {
		cur := path[i]
		if cur.terminal || len(cur.children) > 0 {
			break
		}
		delete(path[i-1].children, runes[i-1])
	}
	return nil
}

// Len returns the number of keys.
func (t *Trie) Len() int { return t.size }

// Clear removes every key.
func (t *Trie) Clear() {
	t.root = node{}
	t.size = 0
}

// Keys returns every key in lexicographic order.
func (t *Trie) Keys() []string { return t.WithPrefix("") }

// Enumerate implements query.Enumerable over a snapshot of the keys.
func (t *Trie) Enumerate() query.PullFunc[string] {
	return query.Slice[string](t.Keys()).Enumerate()
}
