package parser

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pipeconf/internal/document"
	"github.com/vk/pipeconf/internal/syntax"
	"github.com/vk/pipeconf/internal/testutil"
)

// trace renders visited tokens as "<file>:<line>:<kind>" for compact diffs.
func trace(t *testing.T, files map[string]string, root string, descend bool) []string {
	t.Helper()

	fs := testutil.NewMemWorkspace(t, files)
	loader := document.NewLoader(fs)
	doc, err := loader.Open(context.Background(), root)
	require.NoError(t, err)

	var out []string
	err = NewWalker(loader).Walk(context.Background(), doc, descend, func(d document.Document, tok syntax.Token) {
		var kind string
		switch tok.(type) {
		case syntax.SectionHeader:
			kind = "header"
		case syntax.FieldAssignment:
			kind = "assign"
		case syntax.IncludeDirective:
			kind = "include"
		case syntax.BlockCommentStart:
			kind = "comment-start"
		case syntax.BlockCommentEnd:
			kind = "comment-end"
		case syntax.Plain:
			return
		}
		out = append(out, fmt.Sprintf("%s:%d:%s", d.Path(), tok.LineNo(), kind))
	})
	require.NoError(t, err)
	return out
}

func TestWalk_BlockCommentsHideContent(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"/cfg/main.conf": "[a:cA]\n" +
			"/*\n" +
			"[b:cB]\n" +
			"x = 1\n" +
			"*/\n" +
			"y = 2\n" +
			"/* single line */\n" +
			"z = 3\n",
	}

	got := trace(t, files, "/cfg/main.conf", true)

	want := []string{
		"/cfg/main.conf:0:header",
		"/cfg/main.conf:1:comment-start",
		"/cfg/main.conf:4:comment-end",
		"/cfg/main.conf:5:assign",
		"/cfg/main.conf:6:comment-start",
		"/cfg/main.conf:7:assign",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_CommentStartInsideCommentDoesNotClose(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"/cfg/main.conf": "[a:cA]\n" +
			"/*\n" +
			"/* inner */\n" +
			"x = 1\n" +
			"*/\n" +
			"y = 2\n",
	}

	got := trace(t, files, "/cfg/main.conf", true)

	// Line 2 opens and closes on one line, but inside a comment only a
	// closing line ends it.
	want := []string{
		"/cfg/main.conf:0:header",
		"/cfg/main.conf:1:comment-start",
		"/cfg/main.conf:4:comment-end",
		"/cfg/main.conf:5:assign",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_IncludesArePreOrderAndRelative(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"/cfg/main.conf":      "[a:cA]\n\\{sub/one.inc}\nx = 1\n\\{two.inc}\n",
		"/cfg/sub/one.inc":    "[b:cB]\n\\{nested.inc}\n",
		"/cfg/sub/nested.inc": "n = 1\n",
		"/cfg/two.inc":        "[c:cC]\n",
		"/cfg/nested.inc":     "wrong = 1\n",
	}

	got := trace(t, files, "/cfg/main.conf", true)

	want := []string{
		"/cfg/main.conf:0:header",
		"/cfg/main.conf:1:include",
		"/cfg/sub/one.inc:0:header",
		"/cfg/sub/one.inc:1:include",
		"/cfg/sub/nested.inc:0:assign",
		"/cfg/main.conf:2:assign",
		"/cfg/main.conf:3:include",
		"/cfg/two.inc:0:header",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("walk mismatch (-want +got):\n%s", diff)
	}
}

func TestWalk_NoDescent(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"/cfg/main.conf": "\\{one.inc}\n[a:cA]\n",
		"/cfg/one.inc":   "[b:cB]\n",
	}

	got := trace(t, files, "/cfg/main.conf", false)

	assert.Equal(t, []string{"/cfg/main.conf:0:include", "/cfg/main.conf:1:header"}, got)
}

func TestWalk_MissingIncludeIsSkipped(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"/cfg/main.conf": "[a:cA]\n\\{missing.inc}\nx = 1\n",
	}

	got := trace(t, files, "/cfg/main.conf", true)

	assert.Equal(t, []string{
		"/cfg/main.conf:0:header",
		"/cfg/main.conf:1:include",
		"/cfg/main.conf:2:assign",
	}, got)
}

func TestWalk_CommentStateDoesNotCrossIncludes(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		// The included file opens a comment it never closes.
		"/cfg/main.conf": "\\{open.inc}\n[a:cA]\n",
		"/cfg/open.inc":  "[b:cB]\n/*\n[hidden:cH]\n",
	}

	got := trace(t, files, "/cfg/main.conf", true)

	assert.Equal(t, []string{
		"/cfg/main.conf:0:include",
		"/cfg/open.inc:0:header",
		"/cfg/open.inc:1:comment-start",
		"/cfg/main.conf:1:header",
	}, got)
}

func TestWalk_IncludeCycleTerminates(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"/cfg/a.conf": "[a:cA]\n\\{b.conf}\n",
		"/cfg/b.conf": "[b:cB]\n\\{a.conf}\n",
	}

	got := trace(t, files, "/cfg/a.conf", true)

	assert.Equal(t, []string{
		"/cfg/a.conf:0:header",
		"/cfg/a.conf:1:include",
		"/cfg/b.conf:0:header",
		"/cfg/b.conf:1:include",
	}, got)
}

func TestWalk_ParameterizedIncludeUsesDefault(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"/cfg/main.conf":  "\\{\\cm[mode(M){buffer.inc}:buffer mode]}\n\\{\\cm[other:no default]}\n",
		"/cfg/buffer.inc": "[buf:cBuffer]\n",
	}

	got := trace(t, files, "/cfg/main.conf", true)

	assert.Equal(t, []string{
		"/cfg/main.conf:0:include",
		"/cfg/buffer.inc:0:header",
		"/cfg/main.conf:1:include",
	}, got)
}

func TestWalk_CancelledContext(t *testing.T) {
	t.Parallel()

	fs := testutil.NewMemWorkspace(t, map[string]string{
		"/cfg/main.conf": "[a:cA]\n\\{one.inc}\n",
		"/cfg/one.inc":   "[b:cB]\n",
	})
	loader := document.NewLoader(fs)
	doc, err := loader.Open(context.Background(), "/cfg/main.conf")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var visited []int
	err = NewWalker(loader).Walk(ctx, doc, true, func(_ document.Document, tok syntax.Token) {
		visited = append(visited, tok.LineNo())
		cancel()
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{0, 1}, visited, "nothing from the include is visited after cancellation")
}

func TestFindParentSectionHeader(t *testing.T) {
	t.Parallel()

	doc := document.FromString("/cfg/main.conf",
		"x = 0\n"+ // 0
			"[a:cA]\n"+ // 1
			"x = 1\n"+ // 2
			"/*\n"+ // 3
			"[b:cB]\n"+ // 4
			"*/\n"+ // 5
			"y = 2\n"+ // 6
			"[c:cC]\n"+ // 7
			"z = 3\n") // 8

	testCases := []struct {
		line   int
		wantOK bool
		want   string
	}{
		{line: 0, wantOK: false},
		{line: 1, wantOK: true, want: "a"},
		{line: 2, wantOK: true, want: "a"},
		{line: 6, wantOK: true, want: "a"},
		{line: 8, wantOK: true, want: "c"},
		{line: 100, wantOK: true, want: "c"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("line %d", tc.line), func(t *testing.T) {
			t.Parallel()

			got, ok := FindParentSectionHeader(doc, tc.line)

			require.Equal(t, tc.wantOK, ok)
			if ok {
				assert.Equal(t, tc.want, got.InstanceName)
			}
		})
	}
}
