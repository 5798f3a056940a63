package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/unabs/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Loader adapts a Loam repository of Markdown documents to ports.ProgramLoader.
// Front matter carries the metadata; the body is the program source.
type Loader struct {
	Repo *loam.TypedRepository[ProgramMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ProgramMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at path and wraps it.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps front matter numbers integral; the library is never written to.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[ProgramMetadata](repo)), nil
}

// GetProgram returns the program whose (normalized) ID is id.
func (l *Loader) GetProgram(ctx context.Context, id string) (*domain.Program, error) {
	// Direct lookup by file name first; front matter IDs need a scan.
	if doc, err := l.Repo.Get(ctx, id); err == nil && programID(doc.Data.ID, doc.ID) == id {
		return buildProgram(id, doc.Data, doc.Content)
	}

	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}
	for _, doc := range docs {
		if programID(doc.Data.ID, doc.ID) == id {
			return buildProgram(id, doc.Data, doc.Content)
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrProgramNotFound, id)
}

// ListPrograms lists all program IDs in the repository, sorted.
func (l *Loader) ListPrograms(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	ids := make([]string, 0, len(docs))

	for _, doc := range docs {
		id := programID(doc.Data.ID, doc.ID)

		// Collision Detection
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func buildProgram(id string, meta ProgramMetadata, content string) (*domain.Program, error) {
	var limits ProgramLimits
	if len(meta.Limits) > 0 {
		if err := mapstructure.WeakDecode(meta.Limits, &limits); err != nil {
			return nil, fmt.Errorf("program %s: invalid limits: %w", id, err)
		}
	}

	p := &domain.Program{
		ID:          id,
		Title:       meta.Title,
		Description: meta.Description,
		Source:      strings.TrimSpace(content),
		MaxSteps:    limits.MaxSteps,
	}
	if meta.Expect != nil {
		expect := *meta.Expect
		p.Expect = &expect
	}
	return p, nil
}

// programID prefers the front matter ID, falling back to the document path.
func programID(metaID, docID string) string {
	rawID := metaID
	if rawID == "" {
		rawID = docID
	}
	return trimExtension(rawID)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
