package autobuild_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/autobuild"
)

func abcSchema(t *testing.T) *autobuild.Schema[map[string]any] {
	t.Helper()
	s, err := autobuild.NewSchema[map[string]any]("ABC", []autobuild.Field{
		{Name: "a", Required: true},
		{Name: "b", Required: true},
		{Name: "c"},
	})
	require.NoError(t, err)
	return s
}

func TestValidatePlan(t *testing.T) {
	s := abcSchema(t)

	_, err := autobuild.ValidatePlan(s, "b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, autobuild.ErrIncompletePlan))
	assert.Equal(t, []string{"a"}, autobuild.MissingKeys(err))

	p, err := autobuild.ValidatePlan(s, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, p.Keys())

	p, err = autobuild.ValidatePlan(s, "c", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, p.Keys())
	assert.True(t, p.Contains("c"))
	assert.Equal(t, 3, p.Len())
}

func TestValidatePlan_NamesEveryMissingKey(t *testing.T) {
	s := abcSchema(t)
	_, err := autobuild.ValidatePlan(s, "c")
	require.Error(t, err)
	assert.Equal(t, []string{"a", "b"}, autobuild.MissingKeys(err))

	iss, ok := autobuild.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 2)
	assert.Equal(t, "/a", iss[0].Path)
	assert.Equal(t, autobuild.CodeRequired, iss[0].Code)
	assert.Equal(t, "missing required key in plan: a", iss[0].Message)
	assert.Equal(t, "required at /a; required at /b", err.Error())
}

func TestValidatePlan_UnknownKey(t *testing.T) {
	s := abcSchema(t)
	_, err := autobuild.ValidatePlan(s, "a", "b", "zzz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, autobuild.ErrUnknownField))
	assert.False(t, errors.Is(err, autobuild.ErrIncompletePlan))
	assert.Empty(t, autobuild.MissingKeys(err))
}

func TestValidatePlan_Empty(t *testing.T) {
	s, err := autobuild.NewSchema[map[string]any]("Opt", []autobuild.Field{{Name: "x"}})
	require.NoError(t, err)
	_, err = autobuild.ValidatePlan(s)
	assert.True(t, errors.Is(err, autobuild.ErrEmptyPlan))
}

func TestValidatePlan_DuplicatesCollapse(t *testing.T) {
	s := abcSchema(t)
	p, err := autobuild.ValidatePlan(s, "b", "a", "b", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, p.Keys())

	out, err := s.MustPlan("b", "a", "b").Apply(
		autobuild.Assign[map[string]any]("a", 1),
		autobuild.Assign[map[string]any]("b", 2),
	)
	mustRecord(t, out, err)
}

func TestPlan_NoBuilderOnFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s := autobuild.MustDeclare[User](autobuild.BuildOpt{Logger: logger})
	b, err := s.Plan("username")
	require.Error(t, err)
	assert.Nil(t, b)
	assert.Equal(t, []string{"id"}, autobuild.MissingKeys(err))
	assert.Contains(t, buf.String(), `"msg":"plan rejected"`)
	assert.Contains(t, buf.String(), `"missing":["id"]`)
}

func TestMustPlan_Panics(t *testing.T) {
	s := autobuild.MustDeclare[User]()
	assert.Panics(t, func() { s.MustPlan("bio") })
}

func TestRecordSchema(t *testing.T) {
	s := autobuild.MustDeclare[Complex]()
	b := s.MustPlan("count", "data", "config")
	js := s.RecordSchema(b.Plan())
	assert.Equal(t, false, js.AdditionalProperties)
	// data and config may hold Absent, so only count is required
	assert.Equal(t, []string{"count"}, js.Required)
	assert.Len(t, js.Properties, 3)
	assert.Equal(t, []string{"string", "null"}, js.Properties["data"].Type)
	assert.Equal(t, "integer", js.Properties["count"].Type)
	assert.Equal(t, []string{"object", "null"}, js.Properties["config"].Type)

	_, err := s.Plan("count", "data")
	assert.Equal(t, []string{"config"}, autobuild.MissingKeys(err))
}
