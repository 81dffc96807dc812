package schemafile_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/autobuild"
	"github.com/reoring/autobuild/schemafile"
)

const userYAML = `
name: User
fields:
  - name: id
    type: integer
    required: true
  - name: username
    type: string
    required: true
  - name: bio
    type: string
`

const bundleYAML = `
name: User
fields:
  - name: id
    type: integer
    required: true
---
name: Complex
onResupply: error
fields:
  - name: data
    type: string
    required: true
    nullable: true
  - name: count
    type: number
    required: true
  - name: config
    type: any
`

func TestLoad_User(t *testing.T) {
	s, err := schemafile.Load([]byte(userYAML))
	require.NoError(t, err)
	assert.Equal(t, "User", s.Name())
	assert.Equal(t, []string{"id", "username"}, s.RequiredNames())

	out, err := s.MustPlan("id", "username").Apply(
		autobuild.Assign[schemafile.Record]("id", 101),
		autobuild.Assign[schemafile.Record]("username", "admin"),
	)
	require.NoError(t, err)
	rec, ok := autobuild.Finalized(out)
	require.True(t, ok)
	v, err := rec.Value()
	require.NoError(t, err)
	assert.Equal(t, schemafile.Record{"id": 101, "username": "admin"}, v)
}

func TestLoad_RejectsUnknownDocumentKeys(t *testing.T) {
	_, err := schemafile.Load([]byte("name: X\nfieldz: []\n"))
	require.Error(t, err)
}

func TestLoad_RejectsUnsupportedType(t *testing.T) {
	_, err := schemafile.Load([]byte("name: X\nfields:\n  - name: a\n    type: date\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, autobuild.ErrInvalidSchema))
}

func TestLoad_RejectsBadPolicy(t *testing.T) {
	_, err := schemafile.Load([]byte("name: X\nunknown: maybe\nfields: []\n"))
	require.Error(t, err)
}

func TestLoad_MultipleDocumentsIsAnError(t *testing.T) {
	_, err := schemafile.Load([]byte(bundleYAML))
	require.Error(t, err)
}

func TestLoadAll(t *testing.T) {
	ss, err := schemafile.LoadAll([]byte(bundleYAML))
	require.NoError(t, err)
	require.Len(t, ss, 2)
	assert.Equal(t, "User", ss[0].Name())
	assert.Equal(t, "Complex", ss[1].Name())
}

func TestLoadNamed_DocumentPolicyApplies(t *testing.T) {
	s, err := schemafile.LoadNamed([]byte(bundleYAML), "Complex")
	require.NoError(t, err)

	b := s.MustPlan("data", "count", "config")
	out, err := b.With("data", nil)
	require.NoError(t, err)
	next, ok := autobuild.Continue(out)
	require.True(t, ok)

	_, err = next.With("data", "again")
	require.Error(t, err)
	assert.True(t, errors.Is(err, autobuild.ErrResupplied))

	out, err = next.Apply(
		autobuild.Assign[schemafile.Record]("count", 0.0),
		autobuild.Assign[schemafile.Record]("config", autobuild.Absent),
	)
	require.NoError(t, err)
	rec, ok := autobuild.Finalized(out)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"data": nil, "count": 0.0, "config": autobuild.Absent}, rec.Map())
}

func TestLoadNamed_NotFound(t *testing.T) {
	_, err := schemafile.LoadNamed([]byte(bundleYAML), "Nope")
	require.ErrorIs(t, err, schemafile.ErrNotFound)
}

func TestOptionsOverrideDocument(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := schemafile.LoadNamed([]byte(bundleYAML), "Complex",
		schemafile.WithResupply(autobuild.Warn),
		schemafile.WithUnknown(autobuild.UnknownStrip),
		schemafile.WithLogger(logger),
	)
	require.NoError(t, err)

	b := s.MustPlan("data", "count")
	out, err := b.With("extra", 1)
	require.NoError(t, err)
	assert.Same(t, b, out)

	out, err = b.With("data", "x")
	require.NoError(t, err)
	next, _ := autobuild.Continue(out)
	_, err = next.With("data", "y")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "key re-supplied")
}
