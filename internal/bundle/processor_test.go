package bundle

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/usheader/internal/grants"
	"github.com/vvka-141/usheader/internal/logging"
	"github.com/vvka-141/usheader/internal/metadata"
	"github.com/vvka-141/usheader/pkg/usheader"
)

func newTestProcessor(opts ...Option) (*Processor, *logging.RecordingLogger) {
	logger := logging.NewRecordingLogger()
	return NewProcessor(logger, grants.Default, opts...), logger
}

func TestProcess_PrependsToEntriesOnly(t *testing.T) {
	p, _ := newTestProcessor()
	artifacts := []usheader.Artifact{
		{ID: "main.user.js", Code: "import './chunk.js';\nGM_addStyle(css);", IsEntry: true},
		{ID: "chunk.js", Code: "GM_setValue('k', 1);", IsEntry: false},
		{ID: "other.user.js", Code: "console.log(1);", IsEntry: true},
	}
	original := append([]usheader.Artifact(nil), artifacts...)

	res, err := p.Process(context.Background(), map[string]any{"name": "Demo"}, artifacts)
	require.NoError(t, err)

	require.Len(t, res.Artifacts, 3)
	assert.Equal(t, 2, res.Entries)
	assert.Equal(t, original, artifacts, "input slice must not be modified")

	assert.Equal(t, res.Header+"\n"+original[0].Code, res.Artifacts[0].Code)
	assert.Equal(t, original[1], res.Artifacts[1], "non-entry artifacts are returned unchanged")
	assert.Equal(t, res.Header+"\n"+original[2].Code, res.Artifacts[2].Code)

	for i := range artifacts {
		assert.Equal(t, original[i].ID, res.Artifacts[i].ID)
		assert.Equal(t, original[i].IsEntry, res.Artifacts[i].IsEntry)
	}
}

func TestProcess_GrantsFromAllArtifacts(t *testing.T) {
	p, _ := newTestProcessor()
	artifacts := []usheader.Artifact{
		{ID: "a.user.js", Code: "GM_getValue('x');", IsEntry: true},
		{ID: "b.js", Code: "GM_getValue('y'); window.focus();"},
	}

	res, err := p.Process(context.Background(), map[string]any{
		"name":   "Demo",
		"grants": []any{"GM_getValue", "GM_info"},
	}, artifacts)
	require.NoError(t, err)

	assert.Equal(t, []metadata.Grant{"GM_getValue", "GM_info", "window.focus"}, res.Grants.Sorted())
	assert.Equal(t, 1, strings.Count(res.Header, "// @grant GM_getValue\n"), "merged grants are deduplicated")
	assert.Contains(t, res.Header, "// @grant window.focus\n")
	assert.NotContains(t, res.Header, "@grant none")
}

func TestProcess_NoGrantsAnywhere(t *testing.T) {
	p, _ := newTestProcessor()
	res, err := p.Process(context.Background(), map[string]any{"name": "X"}, []usheader.Artifact{
		{ID: "x.user.js", Code: "console.log('hi')", IsEntry: true},
	})
	require.NoError(t, err)

	want := "// ==UserScript==\n// @name X\n// @run-at document-end\n// @inject-into page\n// @grant none\n// ==/UserScript==\n"
	assert.Equal(t, want, res.Header)
	assert.Equal(t, want+"\nconsole.log('hi')", res.Artifacts[0].Code)
}

func TestProcess_ValidationAborts(t *testing.T) {
	p, logger := newTestProcessor()
	artifacts := []usheader.Artifact{{ID: "x.user.js", Code: "GM_info()", IsEntry: true}}

	res, err := p.Process(context.Background(), map[string]any{"name": ""}, artifacts)
	require.Error(t, err)
	assert.Nil(t, res, "no artifacts are returned when validation fails")

	assert.True(t, errors.Is(err, usheader.ErrInvalidConfig))
	assert.True(t, errors.Is(err, metadata.ErrInvalidMetadata))

	var verr *metadata.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"name"}, verr.Paths())
	assert.Equal(t, usheader.ExitConfigError, usheader.ExitCodeForError(err))

	assert.Equal(t, "GM_info()", artifacts[0].Code)
	assert.Empty(t, logger.Records())
}

func TestProcess_ValidationErrorNamesSource(t *testing.T) {
	p := NewProcessor(logging.NewNullLogger(), grants.Default, WithSource("/work/usheader.yaml"))

	_, err := p.Process(context.Background(), map[string]any{"name": ""}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/work/usheader.yaml")
	assert.True(t, errors.Is(err, usheader.ErrInvalidConfig))

	var verr *metadata.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "/work/usheader.yaml", verr.Source)
}

func TestValidateConfig(t *testing.T) {
	meta, err := ValidateConfig(map[string]any{"name": "X"}, "cfg.yaml")
	require.NoError(t, err)
	assert.Equal(t, "X", meta.Scalars.Name)

	_, err = ValidateConfig(map[string]any{"name": "X", "version": "1\n"}, "cfg.yaml")
	require.Error(t, err)
	assert.Equal(t, "invalid configuration: invalid userscript metadata in cfg.yaml: metadata.version: must be a single line", err.Error())
}

func TestProcess_LocaleErrorPath(t *testing.T) {
	p, _ := newTestProcessor()
	_, err := p.Process(context.Background(), map[string]any{
		"name":          "X",
		"localizedName": map[string]any{"english": "Foo"},
	}, nil)

	var verr *metadata.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"localizedName.english"}, verr.Paths())
}

func TestProcess_NoEntries(t *testing.T) {
	p, _ := newTestProcessor()
	res, err := p.Process(context.Background(), map[string]any{"name": "X"}, []usheader.Artifact{
		{ID: "chunk.js", Code: "GM_info()"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Entries)
	assert.Equal(t, "GM_info()", res.Artifacts[0].Code)
	assert.True(t, res.Grants.Has("GM_info"))
}

func TestProcess_Cancelled(t *testing.T) {
	p, _ := newTestProcessor(WithConcurrency(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Process(ctx, map[string]any{"name": "X"}, []usheader.Artifact{{ID: "a", Code: "x", IsEntry: true}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcess_UsesInjectedScanner(t *testing.T) {
	scanned := 0
	scanner := grants.Func(func(string) metadata.GrantSet {
		scanned++
		return metadata.NewGrantSet("GM_download")
	})
	p := NewProcessor(logging.NewNullLogger(), scanner, WithConcurrency(1))

	res, err := p.Process(context.Background(), map[string]any{"name": "X"}, []usheader.Artifact{
		{ID: "a.user.js", Code: "", IsEntry: true},
		{ID: "b.js", Code: ""},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, scanned)
	assert.Contains(t, res.Header, "// @grant GM_download\n")
}

func TestNewProcessor_NilDependenciesPanic(t *testing.T) {
	assert.Panics(t, func() { NewProcessor(nil, grants.Default) })
	assert.Panics(t, func() { NewProcessor(logging.NewNullLogger(), nil) })
}
