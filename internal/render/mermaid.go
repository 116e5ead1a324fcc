// Package render turns analysis records into Mermaid diagrams. Every
// function is pure: identical input gives byte-identical output.
package render

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rohankatakam/onboardx/internal/models"
)

const (
	// DefaultTitle heads the dependency graph
	DefaultTitle = "File Dependency Graph"
	// DefaultMaxNodes caps the dependency graph
	DefaultMaxNodes = 20
	// DefaultScatterMaxNodes caps the risk scatter
	DefaultScatterMaxNodes = 10

	maxDisplayName = 25
	truncatedName  = 22

	// edgesPerNode is how many nodes of the next depth layer each node links to
	edgesPerNode = 2
)

// churn tier thresholds
const (
	highChurn   = 100
	mediumChurn = 50
)

// risk quadrant thresholds
const (
	riskChurn = 50
	riskDepth = 2
)

var directions = map[string]bool{"TD": true, "TB": true, "BT": true, "LR": true, "RL": true}

// GraphOptions controls the dependency graph
type GraphOptions struct {
	Title            string
	Direction        string
	MaxNodes         int
	IncludeChurn     bool
	IncludeOwnership bool
}

// DefaultGraphOptions returns the options used when nothing is configured
func DefaultGraphOptions() GraphOptions {
	return GraphOptions{
		Title:     DefaultTitle,
		Direction: "TD",
		MaxNodes:  DefaultMaxNodes,
	}
}

func (o GraphOptions) normalized() GraphOptions {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	o.Direction = strings.ToUpper(o.Direction)
	if !directions[o.Direction] {
		o.Direction = "TD"
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = DefaultMaxNodes
	}
	return o
}

// DependencyGraph renders the deepest files as a layered graph. Nodes come
// from depth in order, up to MaxNodes. Edges do not reproduce the import
// relation: nodes are grouped by depth and every node of a layer links to
// the first two nodes of the next deeper layer.
func DependencyGraph(depth []models.ImportDepthRecord, churn []models.ChurnRecord, owners []models.OwnershipRecord, opts GraphOptions) string {
	opts = opts.normalized()

	churnByFile := make(map[string]int, len(churn))
	for _, c := range churn {
		churnByFile[c.File] = c.Churn
	}
	ownerByFile := make(map[string]string, len(owners))
	for _, o := range owners {
		ownerByFile[o.File] = o.PrimaryContributor
	}

	files := depth
	if len(files) > opts.MaxNodes {
		files = files[:opts.MaxNodes]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "graph %s\n", opts.Direction)
	b.WriteString("    subgraph \" \"\n")
	b.WriteString("        direction TB\n")
	fmt.Fprintf(&b, "        title[\"%s\"]\n", escapeLabel(opts.Title))
	b.WriteString("    end\n\n")

	nodeIDs := make(map[string]string, len(files))
	for i, f := range files {
		id := fmt.Sprintf("node%d", i+1)
		nodeIDs[f.File] = id

		label := DisplayName(f.File)
		class := ""

		if opts.IncludeChurn {
			if c, ok := churnByFile[f.File]; ok {
				label += fmt.Sprintf("<br/>📈 %d changes", c)
				class = churnClass(c)
			}
		}
		if opts.IncludeOwnership {
			if owner, ok := ownerByFile[f.File]; ok {
				label += "<br/>👤 " + owner
			}
		}
		label += fmt.Sprintf("<br/>🔗 depth: %d", f.Depth)

		fmt.Fprintf(&b, "    %s[\"%s\"]\n", id, escapeLabel(label))
		if class != "" {
			fmt.Fprintf(&b, "    class %s %s\n", id, class)
		}
	}

	for _, edge := range layerEdges(files) {
		fmt.Fprintf(&b, "    %s --> %s\n", nodeIDs[edge[0]], nodeIDs[edge[1]])
	}

	b.WriteString("\n")
	b.WriteString("    classDef high-churn fill:#ffcccc,stroke:#ff0000,stroke-width:2px\n")
	b.WriteString("    classDef med-churn fill:#ffffcc,stroke:#ffaa00,stroke-width:2px\n")
	b.WriteString("    classDef low-churn fill:#ccffcc,stroke:#00aa00,stroke-width:2px\n")
	b.WriteString("    classDef default fill:#e1f5fe,stroke:#0277bd,stroke-width:2px\n")

	return b.String()
}

func churnClass(churn int) string {
	switch {
	case churn > highChurn:
		return "high-churn"
	case churn > mediumChurn:
		return "med-churn"
	default:
		return "low-churn"
	}
}

// layerEdges groups files by depth, shallowest layer first, and links each
// file of a layer to the first edgesPerNode files of the next layer
func layerEdges(files []models.ImportDepthRecord) [][2]string {
	layers := make(map[int][]string)
	var depths []int
	for _, f := range files {
		if _, ok := layers[f.Depth]; !ok {
			depths = append(depths, f.Depth)
		}
		layers[f.Depth] = append(layers[f.Depth], f.File)
	}
	sort.Ints(depths)

	var edges [][2]string
	for i := 0; i+1 < len(depths); i++ {
		next := layers[depths[i+1]]
		if len(next) > edgesPerNode {
			next = next[:edgesPerNode]
		}
		for _, from := range layers[depths[i]] {
			for _, to := range next {
				edges = append(edges, [2]string{from, to})
			}
		}
	}
	return edges
}

// ScatterPoint is one file placed by churn and import depth
type ScatterPoint struct {
	File  string
	Churn int
	Depth int
	Owner string
}

// ScatterPoints converts ranked files into scatter points
func ScatterPoints(files []models.RankedFile) []ScatterPoint {
	points := make([]ScatterPoint, len(files))
	for i, f := range files {
		points[i] = ScatterPoint{
			File:  f.File,
			Churn: f.Churn,
			Depth: f.ImportDepth,
			Owner: f.PrimaryContributor,
		}
	}
	return points
}

// RiskClass places a point in one of four quadrants by churn and depth
func RiskClass(churn, depth int) string {
	switch {
	case churn > riskChurn && depth > riskDepth:
		return "high-risk"
	case churn > riskChurn:
		return "high-churn-low-depth"
	case depth > riskDepth:
		return "low-churn-high-depth"
	default:
		return "stable"
	}
}

// RiskScatter renders one classified node per file
func RiskScatter(points []ScatterPoint) string {
	var b strings.Builder
	b.WriteString("graph TD\n")
	b.WriteString("    subgraph \"Churn vs Import Depth Analysis\"\n")
	b.WriteString("        direction TB\n")

	for i, p := range points {
		id := fmt.Sprintf("file%d", i)
		label := fmt.Sprintf("%s<br/>📈 %d changes<br/>🔗 depth %d", DisplayName(p.File), p.Churn, p.Depth)
		fmt.Fprintf(&b, "        %s[\"%s\"]\n", id, escapeLabel(label))
		fmt.Fprintf(&b, "        class %s %s\n", id, RiskClass(p.Churn, p.Depth))
	}

	b.WriteString("    end\n\n")
	b.WriteString("    classDef high-risk fill:#ff6b6b,stroke:#d63031,stroke-width:3px\n")
	b.WriteString("    classDef high-churn-low-depth fill:#fdcb6e,stroke:#e17055,stroke-width:2px\n")
	b.WriteString("    classDef low-churn-high-depth fill:#74b9ff,stroke:#0984e3,stroke-width:2px\n")
	b.WriteString("    classDef stable fill:#55a3ff,stroke:#00b894,stroke-width:2px\n")

	return b.String()
}

// OwnershipMap renders one node per primary contributor, in order of first
// appearance, with an edge to each file they own. Owner and file nodes
// share one id counter.
func OwnershipMap(records []models.OwnershipRecord) string {
	var owners []string
	groups := make(map[string][]models.OwnershipRecord)
	for _, r := range records {
		if _, ok := groups[r.PrimaryContributor]; !ok {
			owners = append(owners, r.PrimaryContributor)
		}
		groups[r.PrimaryContributor] = append(groups[r.PrimaryContributor], r)
	}

	var b strings.Builder
	b.WriteString("graph TD\n")
	b.WriteString("    subgraph \"Code Ownership Map\"\n")
	b.WriteString("        direction TB\n")

	counter := 1
	for _, owner := range owners {
		files := groups[owner]
		ownerID := fmt.Sprintf("owner%d", counter)
		counter++
		fmt.Fprintf(&b, "        %s[\"%s\"]\n", ownerID, escapeLabel(fmt.Sprintf("👤 %s<br/>%d files", owner, len(files))))

		for _, f := range files {
			fileID := fmt.Sprintf("file%d", counter)
			counter++
			fmt.Fprintf(&b, "        %s[\"%s\"]\n", fileID, escapeLabel(fmt.Sprintf("%s<br/>%d commits", DisplayName(f.File), f.ContributionCount)))
			fmt.Fprintf(&b, "        %s --> %s\n", ownerID, fileID)
		}
	}

	b.WriteString("    end\n")
	return b.String()
}

// DisplayName returns the base name of a path, shortened to 22 characters
// plus "..." when longer than 25
func DisplayName(filePath string) string {
	name := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	if utf8.RuneCountInString(name) <= maxDisplayName {
		return name
	}
	runes := []rune(name)
	return string(runes[:truncatedName]) + "..."
}

// escapeLabel keeps a label inside its quoted Mermaid string
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
