// Package imports builds the reverse-import graph of a project and scores
// each file by how deep into the import chain it is consumed.
package imports

import (
	"sort"

	"github.com/rohankatakam/onboardx/internal/models"
)

// Graph is an arena-indexed reverse-import graph. Files are nodes
// identified by their insertion index; importers[v] lists the nodes that
// import v.
type Graph struct {
	files     []string
	index     map[string]int
	importers [][]int
	edges     map[[2]int]struct{}
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		index: make(map[string]int),
		edges: make(map[[2]int]struct{}),
	}
}

// AddFile adds a node for path if it is not present and returns its index
func (g *Graph) AddFile(path string) int {
	if id, ok := g.index[path]; ok {
		return id
	}
	id := len(g.files)
	g.files = append(g.files, path)
	g.index[path] = id
	g.importers = append(g.importers, nil)
	return id
}

// AddImport records that importer imports imported. Both files are added
// when missing. Duplicate edges are ignored; the return value reports
// whether the edge was new.
func (g *Graph) AddImport(importer, imported string) bool {
	from := g.AddFile(importer)
	to := g.AddFile(imported)

	key := [2]int{to, from}
	if _, dup := g.edges[key]; dup {
		return false
	}
	g.edges[key] = struct{}{}
	g.importers[to] = append(g.importers[to], from)
	return true
}

// Len returns the number of files
func (g *Graph) Len() int { return len(g.files) }

// EdgeCount returns the number of distinct import edges
func (g *Graph) EdgeCount() int { return len(g.edges) }

// importersOf returns the files that import path, in insertion order
func (g *Graph) importersOf(path string) []string {
	id, ok := g.index[path]
	if !ok {
		return nil
	}
	out := make([]string, len(g.importers[id]))
	for i, from := range g.importers[id] {
		out[i] = g.files[from]
	}
	return out
}

const (
	unvisited uint8 = iota
	inProgress
	done
)

// frame is one node on the explicit DFS stack: next is the position in the
// node's importer list, max the deepest importer seen so far
type frame struct {
	node int
	next int
	max  int
}

// Depths computes the import depth of every node, indexed like the nodes:
// 1 for a file nothing imports, otherwise 1 + the deepest importer.
//
// The walk is an iterative depth-first search over the reverse-import
// relation, so deep chains cannot exhaust the goroutine stack. An importer
// that is still on the stack closes a cycle and contributes depth 1; every
// node is finalised exactly once.
func (g *Graph) Depths() []int {
	n := len(g.files)
	state := make([]uint8, n)
	memo := make([]int, n)

	var stack []frame
	for start := 0; start < n; start++ {
		if state[start] != unvisited {
			continue
		}

		state[start] = inProgress
		stack = append(stack[:0], frame{node: start})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]

			if top.next < len(g.importers[top.node]) {
				u := g.importers[top.node][top.next]
				top.next++

				switch state[u] {
				case done:
					top.max = max(top.max, memo[u])
				case inProgress:
					top.max = max(top.max, 1)
				default:
					state[u] = inProgress
					stack = append(stack, frame{node: u})
				}
				continue
			}

			depth := top.max + 1
			memo[top.node] = depth
			state[top.node] = done
			stack = stack[:len(stack)-1]

			if len(stack) > 0 {
				parent := &stack[len(stack)-1]
				parent.max = max(parent.max, depth)
			}
		}
	}

	return memo
}

// Records returns one record per file sorted by depth descending; equal
// depths keep insertion order
func (g *Graph) Records() []models.ImportDepthRecord {
	depths := g.Depths()

	records := make([]models.ImportDepthRecord, len(g.files))
	for i, file := range g.files {
		records[i] = models.ImportDepthRecord{File: file, Depth: depths[i]}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Depth > records[j].Depth
	})
	return records
}
