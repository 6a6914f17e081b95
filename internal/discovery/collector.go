package discovery

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"tsplit/internal/domain"
)

// Progress receives one tick per parsed file
type Progress interface {
	Add(n int)
	Finish()
}

// Collector finds every test under a root directory
type Collector struct {
	scanner    *Scanner
	parser     *Parser
	processors int
	progress   Progress
}

// NewCollector creates a Collector parsing up to processors files at once
func NewCollector(scanner *Scanner, parser *Parser, processors int) *Collector {
	if processors <= 0 {
		processors = 1
	}
	return &Collector{scanner: scanner, parser: parser, processors: processors}
}

// SetProgress sets the progress reporter for the next Collect
func (c *Collector) SetProgress(p Progress) {
	c.progress = p
}

// SetProcessors sets how many files are parsed at once
func (c *Collector) SetProcessors(n int) {
	if n > 0 {
		c.processors = n
	}
}

// Files lists the test files under root
func (c *Collector) Files(root string) ([]string, error) {
	return c.scanner.Scan(root)
}

// Collect parses files and returns their tests sorted by package, suite
// and name, so every node sees the same universe in the same order.
func (c *Collector) Collect(ctx context.Context, root string, files []string) ([]domain.TestItem, error) {
	packages := NewPackageResolver(root)
	perFile := make([][]domain.TestItem, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.processors)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			items, err := c.parser.FindTests(file)
			if err != nil {
				return err
			}
			pkg := packages.PackagePath(filepath.Dir(file))
			for j := range items {
				items[j].Package = pkg
			}
			perFile[i] = items
			if c.progress != nil {
				c.progress.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()
	if c.progress != nil {
		c.progress.Finish()
	}
	if err != nil {
		return nil, err
	}

	var all []domain.TestItem
	for _, items := range perFile {
		all = append(all, items...)
	}
	SortItems(all)

	log.Debug().
		Str("root", root).
		Str("module", packages.ModulePath()).
		Int("files", len(files)).
		Int("tests", len(all)).
		Msg("collected tests")
	return all, nil
}

// SortItems orders items by package, suite, name and file
func SortItems(items []domain.TestItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Package != b.Package {
			return a.Package < b.Package
		}
		if a.Suite != b.Suite {
			return a.Suite < b.Suite
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.FilePath < b.FilePath
	})
}
