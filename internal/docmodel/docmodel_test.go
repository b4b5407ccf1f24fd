package docmodel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegments(t *testing.T) {
	tests := []struct {
		id   string
		want []string
	}{
		{"guide/intro.md", []string{"guide", "intro"}},
		{"guide/index.md", []string{"guide"}},
		{"guide/index.mdx", []string{"guide"}},
		{"index.md", []string{}},
		{"api.md", []string{"api"}},
		{"guide/advanced/topic.markdown", []string{"guide", "advanced", "topic"}},
		{"guide/", []string{"guide"}},
		{"notes/readme.txt", []string{"notes", "readme.txt"}},
		{"guide/index/extra.md", []string{"guide", "index", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, Segments(tt.id))
		})
	}
}

func TestDocumentDefaults(t *testing.T) {
	d := Document{ID: "guide/intro.md", Title: "Introduction"}

	assert.True(t, math.IsInf(d.SidebarPosition(), 1))
	assert.True(t, d.Clickable())
	assert.Equal(t, "Introduction", d.SidebarLabel())
	assert.Equal(t, "Introduction", d.PaginationTitle())
	assert.True(t, d.PaginationNext.IsAbsent())

	d.Sidebar.Label = "Intro"
	assert.Equal(t, "Intro", d.PaginationTitle())
	d.PaginationLabel = "Start here"
	assert.Equal(t, "Start here", d.PaginationTitle())

	d.Link = Bool(false)
	assert.False(t, d.Clickable())
}

func TestMatchesTarget(t *testing.T) {
	d := Document{ID: "guide/intro.md", CustomID: "intro"}

	assert.True(t, d.MatchesTarget("guide/intro.md"))
	assert.True(t, d.MatchesTarget("guide/intro"))
	assert.True(t, d.MatchesTarget("intro"))
	assert.False(t, d.MatchesTarget("guide"))
	assert.False(t, d.MatchesTarget(""))
}

func TestCloneIsIndependent(t *testing.T) {
	d := Document{
		ID: "a.md",
		Sidebar: SidebarOverrides{
			Position:    Float(2),
			CustomProps: map[string]any{"badge": "new"},
			Collapsed:   Bool(true),
		},
	}
	c := d.Clone()
	*c.Sidebar.Position = 9
	c.Sidebar.CustomProps["badge"] = "old"
	*c.Sidebar.Collapsed = false

	require.Equal(t, 2.0, *d.Sidebar.Position)
	require.Equal(t, "new", d.Sidebar.CustomProps["badge"])
	require.True(t, *d.Sidebar.Collapsed)
}

func TestRef(t *testing.T) {
	assert.True(t, Absent().IsAbsent())
	assert.True(t, Disabled().IsDisabled())

	id, ok := Target("api").TargetID()
	assert.True(t, ok)
	assert.Equal(t, "api", id)

	_, ok = Disabled().TargetID()
	assert.False(t, ok)
	assert.Equal(t, `"api"`, Target("api").String())
}
