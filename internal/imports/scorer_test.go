package imports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankatakam/onboardx/internal/models"
	"github.com/rohankatakam/onboardx/internal/treesitter"
)

func newTestScorer(t *testing.T, excluded ...string) *Scorer {
	t.Helper()
	log, _ := test.NewNullLogger()
	return NewScorer(treesitter.NewParser(0), excluded, log)
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func depthsByFile(records []models.ImportDepthRecord) map[string]int {
	m := make(map[string]int, len(records))
	for _, r := range records {
		m[r.File] = r.Depth
	}
	return m
}

func TestScorer_BasicRepoFixture(t *testing.T) {
	s := newTestScorer(t)

	records := s.Score(context.Background(), filepath.Join("testdata", "basic-repo"))

	assert.Equal(t, []models.ImportDepthRecord{
		{File: "c.ts", Depth: 3},
		{File: "b.ts", Depth: 2},
		{File: "a.ts", Depth: 1},
		{File: "d.ts", Depth: 1},
	}, records)
}

func TestScorer_NonExistentRoot(t *testing.T) {
	s := newTestScorer(t)

	records := s.Score(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestScorer_MissingProjectConfig(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.ts": `import "./b";`, "b.ts": ""})

	log, hook := test.NewNullLogger()
	s := NewScorer(treesitter.NewParser(0), nil, log)

	assert.Empty(t, s.Score(context.Background(), root))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "imports", hook.LastEntry().Data["component"])
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestScorer_UnreadableRootLogsError(t *testing.T) {
	log, hook := test.NewNullLogger()
	s := NewScorer(treesitter.NewParser(0), nil, log)

	assert.Empty(t, s.Score(context.Background(), filepath.Join(t.TempDir(), "missing")))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "FILESYSTEM", hook.LastEntry().Data["error_type"])
}

func TestScorer_MalformedProjectConfig(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"tsconfig.json": `{ nope`, "a.ts": ""})

	assert.Empty(t, newTestScorer(t).Score(context.Background(), root))
}

func TestScorer_ExclusionsAndCycles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"tsconfig.json":             `{"exclude": ["legacy"]}`,
		"src/a.ts":                  `import { b } from "./b"; import x from "lodash";`,
		"src/b.ts":                  `import { a } from "./a";`,
		"src/self.ts":               `import * as me from "./self";`,
		"src/a.spec.ts":             `import "./a";`,
		"src/env.d.ts":              `declare const X: number;`,
		"node_modules/pkg/index.ts": `import "../../src/a";`,
		"dist/out.js":               `require("../src/a");`,
		"legacy/old.ts":             `import "../src/a";`,
		"generated/gen.ts":          `import "../src/b";`,
		"README.md":                 "# hi",
	})

	s := newTestScorer(t, "generated")
	got := depthsByFile(s.Score(context.Background(), root))

	assert.Equal(t, map[string]int{
		"src/a.ts":    3,
		"src/b.ts":    2,
		"src/self.ts": 2,
	}, got)
}

func TestScorer_GoProject(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"go.mod":                   "module example.com/app\n\ngo 1.22\n",
		"main.go":                  "package main\n\nimport \"example.com/app/internal/api\"\n\nfunc main() { api.Run() }\n",
		"internal/api/api.go":      "package api\n\nimport (\n\t\"fmt\"\n\t\"example.com/app/internal/store\"\n)\n\nfunc Run() { fmt.Println(store.Get()) }\n",
		"internal/api/api_test.go": "package api\n\nimport \"testing\"\n",
		"internal/store/store.go":  "package store\n\nfunc Get() int { return get() }\n",
		"internal/store/impl.go":   "package store\n\nfunc get() int { return 1 }\n",
	})

	got := depthsByFile(newTestScorer(t).Score(context.Background(), root))

	assert.Equal(t, map[string]int{
		"main.go":                 1,
		"internal/api/api.go":     2,
		"internal/store/impl.go":  3,
		"internal/store/store.go": 3,
	}, got)
}

func TestScorer_PythonProject(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pyproject.toml":             "[project]\nname = \"svc\"\n",
		"src/svc/__init__.py":        "",
		"src/svc/main.py":            "from svc import api\n",
		"src/svc/api.py":             "from .models import user\nimport os\n",
		"src/svc/models/__init__.py": "",
		"src/svc/models/user.py":     "",
		"tests/test_api.py":          "import svc.api\n",
	})

	got := depthsByFile(newTestScorer(t).Score(context.Background(), root))

	assert.Equal(t, 1, got["src/svc/main.py"])
	assert.Equal(t, 2, got["src/svc/api.py"])
	assert.Equal(t, 3, got["src/svc/models/user.py"])
	assert.Equal(t, 3, got["src/svc/models/__init__.py"])
	assert.NotContains(t, got, "tests/test_api.py")
}

type failingSource struct{ bad string }

func (f failingSource) Imports(_ context.Context, path string) ([]string, error) {
	if filepath.Base(path) == f.bad {
		return nil, fmt.Errorf("parse exploded")
	}
	return treesitter.NewParser(0).Imports(context.Background(), path)
}

func TestScorer_UnparsableFileKeepsNode(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := NewScorer(failingSource{bad: "b.ts"}, nil, log)

	got := depthsByFile(s.Score(context.Background(), filepath.Join("testdata", "basic-repo")))

	// b's import of c is lost, the rest of the graph survives
	assert.Equal(t, map[string]int{"a.ts": 1, "b.ts": 2, "c.ts": 1, "d.ts": 1}, got)
}

func TestScorer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Empty(t, newTestScorer(t).Score(ctx, filepath.Join("testdata", "basic-repo")))
}
