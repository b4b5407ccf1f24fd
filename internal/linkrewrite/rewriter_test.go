package linkrewrite

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/versioning"
)

func versions() *versioning.VersionConfig {
	return &versioning.VersionConfig{
		Current: "v2",
		Available: []versioning.AvailableVersion{
			{ID: "v1"},
			{ID: "v2"},
			{ID: "next", Segment: "unreleased"},
		},
	}
}

func newRewriter(logs *bytes.Buffer) *Rewriter {
	return &Rewriter{
		RouteBasePath:  "docs",
		CurrentVersion: "v2",
		Versions:       versions(),
		Logger:         slog.New(slog.NewTextHandler(logs, nil)),
	}
}

func TestRewrite_Classification(t *testing.T) {
	var logs bytes.Buffer
	r := newRewriter(&logs)

	tests := []struct {
		name string
		href string
		want string
		rule Rule
	}{
		{"https", "https://example.com/docs/x", "https://example.com/docs/x", RuleExternal},
		{"mailto", "mailto:team@example.com", "mailto:team@example.com", RuleExternal},
		{"tel", "tel:+4712345678", "tel:+4712345678", RuleExternal},
		{"fragment", "#usage", "#usage", RuleExternal},
		{"protocol relative", "//cdn.example.com/x.js", "//cdn.example.com/x.js", RuleExternal},
		{"cross version with slash", "@v1:/installation", "/docs/v1/installation", RuleCrossVersion},
		{"cross version without slash", "@v1:installation", "/docs/v1/installation", RuleCrossVersion},
		{"cross version latest", "@latest:/guide#top", "/docs/latest/guide#top", RuleCrossVersion},
		{"cross version custom segment", "@next:/roadmap", "/docs/unreleased/roadmap", RuleCrossVersion},
		{"auto version", "/docs/installation", "/docs/v2/installation", RuleAutoVersion},
		{"auto version nested query", "/docs/guide/a?x=1#y", "/docs/v2/guide/a?x=1#y", RuleAutoVersion},
		{"already current", "/docs/v2/installation", "/docs/v2/installation", RuleVersioned},
		{"other version", "/docs/v1/installation", "/docs/v1/installation", RuleVersioned},
		{"latest alias", "/docs/latest/installation", "/docs/latest/installation", RuleVersioned},
		{"registered segment", "/docs/unreleased/roadmap", "/docs/unreleased/roadmap", RuleVersioned},
		{"recognized unregistered", "/docs/v9/installation", "/docs/v9/installation", RuleVersioned},
		{"relative dot", "./sibling", "./sibling", RuleUntouched},
		{"relative parent", "../up", "../up", RuleUntouched},
		{"bare", "page", "page", RuleUntouched},
		{"outside base", "/blog/post", "/blog/post", RuleUntouched},
		{"base without slash", "/docs", "/docs", RuleUntouched},
		{"empty", "", "", RuleUntouched},
		{"malformed cross version", "@:/x", "@:/x", RuleUntouched},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := r.Rewrite(tt.href)
			assert.Equal(t, tt.want, res.Href)
			assert.Equal(t, tt.rule, res.Rule)
			assert.Equal(t, tt.want != tt.href, res.Changed)
			assert.Nil(t, res.Diagnostic)
		})
	}
	assert.Empty(t, logs.String())
}

func TestRewrite_UnregisteredCrossVersionWarnsButRewrites(t *testing.T) {
	var logs bytes.Buffer
	r := newRewriter(&logs)

	res := r.Rewrite("@v7:/setup")
	assert.Equal(t, "/docs/v7/setup", res.Href)
	assert.True(t, res.Changed)
	require.NotNil(t, res.Diagnostic)
	assert.True(t, res.Diagnostic.IsWarning())
	assert.True(t, res.Diagnostic.IsCategory(errors.CategoryLinks))
	version, _ := res.Diagnostic.Context().GetString("version")
	assert.Equal(t, "v7", version)
	assert.Contains(t, logs.String(), "unregistered version")
	assert.Contains(t, logs.String(), "version=v7")
}

func TestRewrite_Idempotent(t *testing.T) {
	r := newRewriter(&bytes.Buffer{})
	hrefs := []string{
		"@v1:/installation", "@latest:guide", "@next:/roadmap", "/docs/installation",
		"/docs/v2/x", "/docs/", "https://example.com", "#frag", "./rel", "/other",
	}
	for _, h := range hrefs {
		once := r.Rewrite(h).Href
		twice := r.Rewrite(once)
		assert.Equal(t, once, twice.Href, h)
		assert.False(t, twice.Changed, h)
	}
}

func TestRewrite_RouteBasePathForms(t *testing.T) {
	for _, base := range []string{"docs", "/docs", "/docs/", "docs/"} {
		r := &Rewriter{RouteBasePath: base, CurrentVersion: "v2"}
		assert.Equal(t, "/docs/v1/installation", r.Rewrite("@v1:/installation").Href, base)
		assert.Equal(t, "/docs/v2/installation", r.Rewrite("/docs/installation").Href, base)
	}

	root := &Rewriter{CurrentVersion: "v3"}
	assert.Equal(t, "/v1/a", root.Rewrite("@v1:a").Href)
	assert.Equal(t, "/v3/a", root.Rewrite("/a").Href)
	assert.Equal(t, "/v3/a", root.Rewrite("/v3/a").Href)
}

func TestRewrite_NoCurrentVersionDisablesAutoVersioning(t *testing.T) {
	r := &Rewriter{RouteBasePath: "docs"}
	res := r.Rewrite("/docs/installation")
	assert.False(t, res.Changed)
	assert.Equal(t, "/docs/v1/x", r.Rewrite("@v1:/x").Href)
}

func TestRewrite_NilVersionsAcceptsRecognizedTokens(t *testing.T) {
	r := &Rewriter{RouteBasePath: "docs", CurrentVersion: "v2", Logger: slog.New(slog.DiscardHandler)}
	assert.Nil(t, r.Rewrite("@v5:/x").Diagnostic)
	assert.NotNil(t, r.Rewrite("@custom:/x").Diagnostic)
}

func TestReport_Merge(t *testing.T) {
	var a, b Report
	a.record(Result{Rule: RuleAutoVersion, Changed: true})
	b.record(Result{Rule: RuleExternal})
	b.record(Result{Rule: RuleAutoVersion, Changed: true, Diagnostic: errors.LinkWarning("x").Build()})

	a.Merge(b)
	assert.Equal(t, 3, a.Links)
	assert.Equal(t, 2, a.Rewritten)
	assert.Equal(t, map[Rule]int{RuleAutoVersion: 2, RuleExternal: 1}, a.ByRule)
	assert.Len(t, a.Diagnostics, 1)
}

func TestRewrite_UnrecognizedCrossVersionIsNotIdempotent(t *testing.T) {
	r := newRewriter(&bytes.Buffer{})

	once := r.Rewrite("@foo:bar")
	assert.Equal(t, "/docs/foo/bar", once.Href)
	assert.Equal(t, RuleCrossVersion, once.Rule)
	require.NotNil(t, once.Diagnostic)

	twice := r.Rewrite(once.Href)
	assert.Equal(t, "/docs/v2/foo/bar", twice.Href)
	assert.Equal(t, RuleAutoVersion, twice.Rule)
	assert.True(t, twice.Changed)
}
