package loam

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/aretw0/unabs/internal/testutils"
	"github.com/aretw0/unabs/pkg/domain"
	contract "github.com/aretw0/unabs/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, nil)
	ctx := context.Background()

	docs := []core.Document{
		{
			ID: "hello.md",
			Content: `---
id: hello
title: Hello world
---
` + "`r```````````.H.e.l.l.o. .w.o.r.l.di",
		},
		{
			ID: "identity.md",
			Content: `---
id: identity
---
` + "`ii",
		},
	}
	for _, doc := range docs {
		require.NoError(t, repo.Save(ctx, doc))
	}

	loader := New(loam.NewTypedRepository[ProgramMetadata](repo))
	contract.RunProgramLoaderContract(t, loader, map[string]string{
		"hello":    "`r```````````.H.e.l.l.o. .w.o.r.l.di",
		"identity": "`ii",
	})
}

func TestLoader_GetProgram_Metadata(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, map[string]string{
		"hello.md": `---
id: hello
title: Hello world
description: Prints a greeting.
expect: "Hello world\n"
limits:
  max_steps: 5000
---
# The classic.
` + "`r```````````.H.e.l.l.o. .w.o.r.l.di\n",
	})

	loader := New(loam.NewTypedRepository[ProgramMetadata](repo))
	p, err := loader.GetProgram(context.Background(), "hello")
	require.NoError(t, err)

	assert.Equal(t, "Hello world", p.Title)
	assert.Equal(t, "Prints a greeting.", p.Description)
	require.NotNil(t, p.Expect)
	assert.Equal(t, "Hello world\n", *p.Expect)
	assert.Equal(t, uint64(5000), p.MaxSteps)
	assert.Equal(t, "# The classic.\n`r```````````.H.e.l.l.o. .w.o.r.l.di", p.Source)
}

func TestLoader_GetProgram_WeakLimits(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, map[string]string{
		"loop.md": `---
limits:
  max_steps: "1000"
---
` + "``ci`.x`ci",
	})

	loader := New(loam.NewTypedRepository[ProgramMetadata](repo))
	p, err := loader.GetProgram(context.Background(), "loop")
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), p.MaxSteps)
	assert.Nil(t, p.Expect)
}

func TestLoader_GetProgram_InvalidLimits(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, map[string]string{
		"bad.md": `---
limits:
  max_steps: lots
---
` + "`ii",
	})

	loader := New(loam.NewTypedRepository[ProgramMetadata](repo))
	_, err := loader.GetProgram(context.Background(), "bad")
	assert.ErrorContains(t, err, "invalid limits")
}

func TestLoader_GetProgram_ByFrontMatterID(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, map[string]string{
		"programs/file-name.md": `---
id: greeting
---
` + "`.ai",
	})

	loader := New(loam.NewTypedRepository[ProgramMetadata](repo))
	p, err := loader.GetProgram(context.Background(), "greeting")
	require.NoError(t, err)
	assert.Equal(t, "greeting", p.ID)
	assert.Equal(t, "`.ai", p.Source)

	_, err = loader.GetProgram(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProgramNotFound)
}

func TestLoader_ListPrograms_NormalizesIDs(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, map[string]string{
		"start.md": `---
id: start.md
---
` + "`ii",
		"implicit.md": `---
title: ID is implied from filename
---
` + "`kk",
	})

	loader := New(loam.NewTypedRepository[ProgramMetadata](repo))
	ids, err := loader.ListPrograms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"implicit", "start"}, ids)
}

func TestLoader_ListPrograms_DetectsCollisions(t *testing.T) {
	_, repo := testutils.SetupTestRepo(t, map[string]string{
		"foo.md": `---
id: foo
---
` + "`ii",
		"bar.md": `---
id: foo
---
` + "`kk",
	})

	loader := New(loam.NewTypedRepository[ProgramMetadata](repo))
	_, err := loader.ListPrograms(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, map[string]string{
		"id.md": "---\nid: id\n---\n`ii\n",
	})

	loader, err := Open(dir)
	require.NoError(t, err)
	p, err := loader.GetProgram(context.Background(), "id")
	require.NoError(t, err)
	assert.Equal(t, "`ii", p.Source)
}
