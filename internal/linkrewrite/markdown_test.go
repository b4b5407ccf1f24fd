package linkrewrite

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = "# Install\n\n" +
	"Follow [the guide](/docs/installation) or [v1](@v1:/installation \"Old\").\n\n" +
	"```md\n[skip](/docs/in-code)\n```\n\n" +
	"See [reference][ref] and ![diagram](/docs/img.png).\n\n" +
	"[ref]: /docs/reference\n"

func TestRewriteMarkdown(t *testing.T) {
	r := newRewriter(&bytes.Buffer{})
	out, rep, err := r.RewriteMarkdown([]byte(page))
	require.NoError(t, err)

	want := "# Install\n\n" +
		"Follow [the guide](/docs/v2/installation) or [v1](/docs/v1/installation \"Old\").\n\n" +
		"```md\n[skip](/docs/in-code)\n```\n\n" +
		"See [reference][ref] and ![diagram](/docs/img.png).\n\n" +
		"[ref]: /docs/v2/reference\n"
	assert.Equal(t, want, string(out))
	assert.Equal(t, 3, rep.Links)
	assert.Equal(t, 3, rep.Rewritten)
}

func TestRewriteMarkdown_Idempotent(t *testing.T) {
	r := newRewriter(&bytes.Buffer{})
	once, _, err := r.RewriteMarkdown([]byte(page))
	require.NoError(t, err)
	twice, rep, err := r.RewriteMarkdown(once)
	require.NoError(t, err)
	assert.Equal(t, string(once), string(twice))
	assert.Zero(t, rep.Rewritten)
}

func TestRewriteMarkdown_LabelShapes(t *testing.T) {
	r := newRewriter(&bytes.Buffer{})
	tests := []struct {
		src  string
		want string
	}{
		{"[![badge](/img/b.png)](/docs/page)\n", "[![badge](/img/b.png)](/docs/v2/page)\n"},
		{"[](/docs/empty)\n", "[](/docs/v2/empty)\n"},
		{"[see <b>x</b>](/docs/rawhtml)\n", "[see <b>x</b>](/docs/v2/rawhtml)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			out, rep, err := r.RewriteMarkdown([]byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
			assert.Equal(t, 1, rep.Links)
			assert.Equal(t, 1, rep.Rewritten)
		})
	}
}
