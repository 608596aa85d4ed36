package db

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/yumyai/genecanvas/pkg/seq"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "db", "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

const seedYAML = `
templates:
  - id: pLac
    name: lac promoter
    category: Promoter
    length: 40
  - id: B0034
    name: RBS B0034
    category: rbs
    sequence: aaagaggaga aa
  - id: gfp
    name: GFP
    category: gene
    length: 720
  - id: B0015
    name: double terminator
    category: terminator
    length: 129
`

func TestImportYAMLAndList(t *testing.T) {
	ctx := context.Background()
	c := openTestCatalog(t)

	n, err := c.ImportYAML(ctx, strings.NewReader(seedYAML))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	all, err := c.Templates(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 4)
	// ordered by category then name
	assert.Equal(t, []string{"gfp", "pLac", "B0034", "B0015"}, []string{all[0].ID, all[1].ID, all[2].ID, all[3].ID})

	promoters, err := c.Templates(ctx, "PROMOTER")
	require.NoError(t, err)
	require.Len(t, promoters, 1)
	assert.Equal(t, "promoter", promoters[0].Category)

	rbs, err := c.Template(ctx, "B0034")
	require.NoError(t, err)
	assert.Equal(t, "AAAGAGGAGAAA", rbs.Sequence)
	assert.Equal(t, 12, rbs.Length)
}

func TestTemplateNotFound(t *testing.T) {
	c := openTestCatalog(t)

	_, err := c.Template(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.ErrorIs(t, c.Delete(context.Background(), "nope"), ErrTemplateNotFound)
}

func TestPutReplacesAndDelete(t *testing.T) {
	ctx := context.Background()
	c := openTestCatalog(t)

	require.NoError(t, c.Put(ctx, Template{ID: "t1", Name: "first", Category: "gene", Length: 10}))
	require.NoError(t, c.Put(ctx, Template{ID: "t1", Name: "second", Category: "gene", Length: 12}))

	got, err := c.Template(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Name)
	assert.Equal(t, 12, got.Length)

	require.NoError(t, c.Delete(ctx, "t1"))
	_, err = c.Template(ctx, "t1")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestPutAllRejectsInvalidBatch(t *testing.T) {
	ctx := context.Background()
	c := openTestCatalog(t)

	err := c.PutAll(ctx, []Template{
		{ID: "ok", Name: "fine", Category: "gene", Length: 10},
		{ID: "", Name: "", Category: "", Length: 0},
		{ID: "bad", Name: "bad", Category: "rbs", Length: 5, Sequence: "ACG"},
	})
	require.Error(t, err)
	// id, name, category, length for the second; length mismatch for the third
	assert.Len(t, multierr.Errors(err), 5)

	all, err := c.Templates(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImportYAMLRejectsUnknownFields(t *testing.T) {
	c := openTestCatalog(t)

	_, err := c.ImportYAML(context.Background(), strings.NewReader("templates:\n  - id: x\n    colour: red\n"))
	assert.Error(t, err)
}

func TestImportFASTA(t *testing.T) {
	ctx := context.Background()
	c := openTestCatalog(t)

	fasta := ">lacI lac repressor\nATGAAACCAG\nTAACGTTATA\n\n>tetR\nATGTCCAGAT\n"
	n, err := c.ImportFASTA(ctx, strings.NewReader(fasta), "gene")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	lacI, err := c.Template(ctx, "lacI")
	require.NoError(t, err)
	assert.Equal(t, "lac repressor", lacI.Name)
	assert.Equal(t, 20, lacI.Length)

	tetR, err := c.Template(ctx, "tetR")
	require.NoError(t, err)
	assert.Equal(t, "tetR", tetR.Name)
}

func TestReadFASTAErrors(t *testing.T) {
	_, err := ReadFASTA(strings.NewReader("ACGT\n>x\nA\n"), "gene")
	assert.ErrorContains(t, err, "line 1")

	_, err = ReadFASTA(strings.NewReader(">\nACGT\n"), "gene")
	assert.ErrorContains(t, err, "without id")
}

func TestNewPart(t *testing.T) {
	withSeq := NewPart(Template{ID: "B0034", Name: "RBS", Category: "rbs", Length: 4, Sequence: "AAGG"})
	assert.NotEmpty(t, withSeq.ID)
	assert.Equal(t, "AAGG", withSeq.Sequence.String())
	assert.False(t, withSeq.Placed)

	blank := NewPart(Template{ID: "gfp", Name: "GFP", Category: "gene", Length: 6})
	assert.True(t, blank.Sequence.Equal(seq.Repeat(seq.N, 6)))
	assert.NotEqual(t, withSeq.ID, blank.ID)
}
