package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_RoundTrip(t *testing.T) {
	const base = "https://x.io"
	const current = "/guides/setup"

	cases := []struct{ in, want string }{
		{"[t](../intro)", "[t](https://x.io/intro.md)"},
		{"[t](./deep/page#anchor)", "[t](https://x.io/guides/setup/deep/page.md#anchor)"},
		{"[t](https://other.com)", "[t](https://other.com)"},
		{"[t](#section)", "[t](#section)"},
		{"[t](sibling)", "[t](https://x.io/guides/sibling.md)"},
		{"[t](/api/)", "[t](https://x.io/api.md)"},
		{"[t](/)", "[t](https://x.io/index.md)"},
		{"[t](/page.html#top)", "[t](https://x.io/page.md#top)"},
		{"[t](mailto:a@b.c)", "[t](mailto:a@b.c)"},
		{"[t](tel:123)", "[t](tel:123)"},
		{"[t](data:image/png;base64,xx)", "[t](data:image/png;base64,xx)"},
		{"[t](//cdn.x.io/a.js)", "[t](//cdn.x.io/a.js)"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Transform(tc.in, base, current), tc.in)
	}
}

func TestTransform_MultipleLinksInText(t *testing.T) {
	in := "See [A](/a) and [B](https://b.io) or [](../c)."
	want := "See [A](https://x.io/a.md) and [B](https://b.io) or [](https://x.io/c.md)."
	assert.Equal(t, want, Transform(in, "https://x.io", "/guides/setup"))
}

func TestTransform_LeavesCodeAlone(t *testing.T) {
	in := "Call `handlers[i](req)` then [`intro`](../intro):\n\n```go\nfns[0](ctx, x)\n```"
	want := "Call `handlers[i](req)` then [`intro`](https://x.io/intro.md):\n\n```go\nfns[0](ctx, x)\n```"
	assert.Equal(t, want, Transform(in, "https://x.io", "/guides/setup"))
}

func TestTransformSingle_StripsBasePath(t *testing.T) {
	base := "https://site.com/kafka-docs"
	assert.Equal(t, "https://site.com/kafka-docs/intro.md", TransformSingle("/kafka-docs/intro", base, "/x"))
	assert.Equal(t, "https://site.com/kafka-docs/index.md", TransformSingle("/kafka-docs", base, "/x"))
	assert.Equal(t, "https://site.com/kafka-docs/kafka-docsite.md", TransformSingle("/kafka-docsite", base, "/x"))
	assert.Equal(t, "https://site.com/kafka-docs/a.md", TransformSingle("/a", base+"/", "/x"))
}

func TestResolve(t *testing.T) {
	cases := []struct{ href, current, want string }{
		{"/abs/path", "/x/y", "/abs/path"},
		{"../up", "/a/b/c", "/a/up"},
		{"../../../../root", "/a/b", "/root"},
		{"./child", "/a/b", "/a/b/child"},
		{"peer#frag", "/a/b", "/a/peer#frag"},
		{"./", "/a/b", "/a/b"},
		{"x/./y", "/", "/x/y"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Resolve(tc.href, tc.current), tc.href)
	}
}

func TestToMarkdownPath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"/a/b", "/a/b.md"},
		{"/a/b/", "/a/b.md"},
		{"/a/b.html", "/a/b.md"},
		{"/a/b.md", "/a/b.md"},
		{"/a/b.txt", "/a/b.md"},
		{"", "/index.md"},
		{"/", "/index.md"},
		{"/a#x", "/a.md#x"},
		{"/v1.2/page", "/v1.2/page.md"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ToMarkdownPath(tc.in), tc.in)
	}
}

func TestExtractInternal_SkipsCodeAndExternal(t *testing.T) {
	src := "" +
		"Inline `[x](/ignored-inline)` code.\n" +
		"\n" +
		"```\n" +
		"[x](/ignored-fence)\n" +
		"```\n" +
		"\n" +
		"[a](/real) [b](https://ext.io) [c](#top) [d](mailto:x@y.z) [e](../rel#frag)\n"

	assert.Equal(t, []string{"/real", "../rel#frag"}, ExtractInternal(src))
}

func TestValidate(t *testing.T) {
	available := map[string]bool{
		"/intro.md":         true,
		"guides/setup":      true,
		"/api/index.md":     true,
		"reference/cli.md":  true,
		"/blog/welcome.md":  false,
		"/something/else":   true,
		"/unrelated/page.x": true,
	}
	md := "[a](/intro) [b](/guides/setup#step) [c](/api) [d](../reference/cli) [e](/missing) [f](/blog/welcome)"

	report := Validate(md, available, "/guides/setup")
	require.False(t, report.Valid)
	assert.Equal(t, []string{"/missing", "/blog/welcome"}, report.Broken)

	clean := Validate("[a](/intro) [x](https://e.io)", available, "/")
	assert.True(t, clean.Valid)
	assert.Empty(t, clean.Broken)
}
