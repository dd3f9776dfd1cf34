package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/markdeck/internal/test/builders"
)

func TestSplitSlides(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "single slide without delimiter",
			content: "# Single Slide\n\nContent here.",
			want:    []string{"# Single Slide\n\nContent here."},
		},
		{
			name:    "delimiter between slides",
			content: "# A\n---\n# B",
			want:    []string{"# A", "# B"},
		},
		{
			name:    "leading delimiter",
			content: "---\n# A",
			want:    []string{"# A"},
		},
		{
			name:    "trailing delimiter",
			content: "# A\n---",
			want:    []string{"# A"},
		},
		{
			name:    "empty middle segment dropped",
			content: "# A\n---\n\n---\n# B",
			want:    []string{"# A", "# B"},
		},
		{
			name:    "consecutive delimiters",
			content: "# A\n---\n---\n---\n# B",
			want:    []string{"# A", "# B"},
		},
		{
			name:    "only delimiters and whitespace",
			content: "---\n\n---\n   \n---\n",
			want:    nil,
		},
		{
			name:    "empty document",
			content: "",
			want:    nil,
		},
		{
			name:    "whitespace document",
			content: "  \n\t\n",
			want:    nil,
		},
		{
			name:    "indented delimiter is content",
			content: "# A\n ---\n# B",
			want:    []string{"# A\n ---\n# B"},
		},
		{
			name:    "delimiter with trailing text is content",
			content: "# A\n--- not a delimiter\n# B",
			want:    []string{"# A\n--- not a delimiter\n# B"},
		},
		{
			name:    "windows line endings",
			content: "# A\r\n---\r\n# B\r\n",
			want:    []string{"# A", "# B"},
		},
		{
			name:    "byte order mark before leading delimiter",
			content: "\ufeff---\n# A",
			want:    []string{"# A"},
		},
		{
			name:    "segments are trimmed",
			content: "\n\n  # A  \n\n---\n\n# B\n\n",
			want:    []string{"# A", "# B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSlides(tt.content))
		})
	}
}

func TestSplitSlides_CodeFences(t *testing.T) {
	t.Run("delimiter inside code fence", func(t *testing.T) {
		content := "# Code\n```yaml\nkey: a\n---\nkey: b\n```\n---\n# Next"

		segments := SplitSlides(content)
		require.Len(t, segments, 2)
		assert.Contains(t, segments[0], "key: a\n---\nkey: b")
		assert.Equal(t, "# Next", segments[1])
	})

	t.Run("delimiter inside tilde fence", func(t *testing.T) {
		content := "~~~~\n---\n~~~~\n---\n# Next"

		segments := SplitSlides(content)
		require.Len(t, segments, 2)
		assert.Equal(t, "~~~~\n---\n~~~~", segments[0])
	})

	t.Run("shorter run does not close a fence", func(t *testing.T) {
		content := "````\n```\n---\n````\n---\n# Next"

		segments := SplitSlides(content)
		require.Len(t, segments, 2)
		assert.Equal(t, "# Next", segments[1])
	})

	t.Run("unclosed fence protects nothing", func(t *testing.T) {
		content := "# A\n```\ncode\n---\n# B"

		segments := SplitSlides(content)
		assert.Equal(t, []string{"# A\n```\ncode", "# B"}, segments)
	})

	t.Run("fence closed in a later slide keeps its delimiters", func(t *testing.T) {
		// A bare fence line closes any open fence of the same character,
		// matching CommonMark, so the slides in between are code.
		content := "# A\n```go\n---\n# B\n---\n```\n# C"

		segments := SplitSlides(content)
		assert.Equal(t, []string{content}, segments)
	})

	t.Run("fence opener with info string never closes", func(t *testing.T) {
		content := "# A\n```\n---\n# B\n```python\nprint(1)"

		segments := SplitSlides(content)
		assert.Equal(t, []string{"# A\n```", "# B\n```python\nprint(1)"}, segments)
	})
}

func TestSplitSlides_CommentsAndColumns(t *testing.T) {
	t.Run("delimiter splits a notes comment", func(t *testing.T) {
		content := "# A\n<!-- NOTES:\nintro\n---\nmore\n-->\n---\n# B"

		segments := SplitSlides(content)
		assert.Equal(t, []string{"# A\n<!-- NOTES:\nintro", "more\n-->", "# B"}, segments)
	})

	t.Run("delimiter splits a column block", func(t *testing.T) {
		content := ":::columns\nLeft\n---\nStill left\n|||\nRight\n:::\n---\n# B"

		segments := SplitSlides(content)
		assert.Equal(t, []string{":::columns\nLeft", "Still left\n|||\nRight\n:::", "# B"}, segments)
	})

	t.Run("unclosed column block before a later block", func(t *testing.T) {
		content := "# A\n:::columns\noops forgot the rest\n---\n# B\n---\n# C\n:::columns\nL\n|||\nR\n:::"

		segments := SplitSlides(content)
		require.Len(t, segments, 3)
		assert.Equal(t, "# A\n:::columns\noops forgot the rest", segments[0])
		assert.Equal(t, "# B", segments[1])
	})

	t.Run("unclosed comment before a later single line comment", func(t *testing.T) {
		content := "# A\n<!-- unclosed\n---\n# B\n---\n# C\n<!-- NOTES: x -->"

		segments := SplitSlides(content)
		require.Len(t, segments, 3)
		assert.Equal(t, "# A\n<!-- unclosed", segments[0])
	})

	t.Run("unclosed comment before a later multi line comment", func(t *testing.T) {
		content := "# A\n<!-- unclosed\n---\n# B\n<!-- NOTES:\nlater\n-->"

		segments := SplitSlides(content)
		assert.Len(t, segments, 2)
	})
}

func TestSegmenter_Parse(t *testing.T) {
	segmenter := NewSegmenter(NewDefaultRenderer(), nil)

	t.Run("positions follow surviving segments", func(t *testing.T) {
		slides := segmenter.Parse("---\n\n---\n# A\n---\n\n---\n# B\n---\n# C")

		require.Len(t, slides, 3)
		for i, slide := range slides {
			assert.Equal(t, i, slide.Position)
		}
		assert.Equal(t, "# C", slides[2].Body)
	})

	t.Run("delimiter boundary yields two slides", func(t *testing.T) {
		slides := segmenter.Parse("# A\n---\n# B")

		require.Len(t, slides, 2)
		assert.Equal(t, "# A", slides[0].Body)
		assert.Equal(t, "# B", slides[1].Body)
		for _, slide := range slides {
			assert.NotContains(t, slide.Body, SlideDelimiter)
		}
	})

	t.Run("notes round trip", func(t *testing.T) {
		slides := segmenter.Parse("# Title\n\nVisible\n\n<!-- NOTES: Speaker text -->")

		require.Len(t, slides, 1)
		assert.Equal(t, "Speaker text", slides[0].Notes)
		assert.Equal(t, "# Title\n\nVisible", slides[0].Body)
		assert.NotContains(t, slides[0].Body, "NOTES")
		assert.NotContains(t, slides[0].Body, "<!--")
		assert.NotContains(t, slides[0].Body, "-->")
	})

	t.Run("column expansion", func(t *testing.T) {
		slides := segmenter.Parse(":::columns\nLeft\n|||\nRight\n:::")

		require.Len(t, slides, 1)
		body := slides[0].Body
		assert.Equal(t, 1, strings.Count(body, `<div class="columns-container">`))
		assert.Equal(t, 1, strings.Count(body, `<div class="column-left">`))
		assert.Equal(t, 1, strings.Count(body, `<div class="column-right">`))
		assert.NotContains(t, body, ":::")
		assert.NotContains(t, body, "|||")

		left, right := splitColumns(t, body)
		assert.Contains(t, left, "Left")
		assert.Contains(t, right, "Right")
	})

	t.Run("malformed blocks stay within their own slide", func(t *testing.T) {
		slides := segmenter.Parse("# A\n:::columns\noops forgot the rest\n---\n# B\n---\n# C\n:::columns\nL\n|||\nR\n:::")

		require.Len(t, slides, 3)
		assert.Equal(t, "# A\n:::columns\noops forgot the rest", slides[0].Body)
		assert.Equal(t, "# B", slides[1].Body)
		assert.Equal(t, 1, strings.Count(slides[2].Body, `<div class="columns-container">`))
		assert.NotContains(t, slides[0].Body, "columns-container")
	})

	t.Run("unclosed comment keeps later notes on their slide", func(t *testing.T) {
		slides := segmenter.Parse("# A\n<!-- unclosed\n---\n# B\n---\n# C\n<!-- NOTES: x -->")

		require.Len(t, slides, 3)
		assert.Equal(t, "# A\n<!-- unclosed", slides[0].Body)
		assert.Empty(t, slides[0].Notes)
		assert.Equal(t, "x", slides[2].Notes)
		assert.Equal(t, "# C", slides[2].Body)
	})

	t.Run("notes comment inside column block is extracted first", func(t *testing.T) {
		slides := segmenter.Parse(":::columns\nLeft\n<!-- NOTES: hidden -->\n|||\nRight\n:::")

		require.Len(t, slides, 1)
		assert.Equal(t, "hidden", slides[0].Notes)
		assert.NotContains(t, slides[0].Body, "NOTES")
	})

	t.Run("slide of only notes keeps an empty body", func(t *testing.T) {
		slides := segmenter.Parse("# A\n---\n<!-- NOTES: only notes -->")

		require.Len(t, slides, 2)
		assert.Equal(t, "", slides[1].Body)
		assert.Equal(t, "only notes", slides[1].Notes)
	})

	t.Run("idempotent", func(t *testing.T) {
		content := "# Deck\n<!-- NOTES: n -->\n---\n:::columns\n- a\n- b\n|||\n1. x\n2. y\n:::\n---\nEnd"

		assert.Equal(t, segmenter.Parse(content), segmenter.Parse(content))
	})

	t.Run("package level parse", func(t *testing.T) {
		slides := Parse("# A\n---\n# B\n---\n# C")
		assert.Len(t, slides, 3)
	})
}

func TestSegmenter_RealDocument(t *testing.T) {
	content := `# Test Presentation

Intro slide

---

# Second Slide

Content here

<!--NOTES:
Speaker notes for testing
-->

---

# Final Slide

Conclusion`

	slides := Parse(content)

	require.Len(t, slides, 3)
	assert.Equal(t, 0, slides[0].Position)
	assert.Equal(t, "Speaker notes for testing", slides[1].Notes)
	assert.Equal(t, "# Second Slide\n\nContent here", slides[1].Body)
	assert.Equal(t, 2, slides[2].Position)
	assert.Empty(t, slides[2].Notes)
}

func TestSegmenter_BuiltDecks(t *testing.T) {
	segmenter := NewSegmenter(NewDefaultRenderer(), nil)

	t.Run("feature deck", func(t *testing.T) {
		slides := segmenter.Parse(builders.FeatureDeck())

		require.Len(t, slides, 3)
		assert.Equal(t, "Introduce yourself", slides[0].Notes)
		assert.Contains(t, slides[1].Body, "<strong>Before</strong>")
		assert.Contains(t, slides[2].Body, "fmt.Println")
	})

	t.Run("framed crlf deck with bom", func(t *testing.T) {
		deck := builders.NewDeckBuilder().
			WithSlide("One", "first").
			WithNotes("n1").
			WithSlide("Two", "second").
			WithLeadingDelimiter().
			WithTrailingDelimiter().
			WithCRLF().
			WithBOM().
			Build()

		slides := segmenter.Parse(deck)

		require.Len(t, slides, 2)
		assert.Equal(t, "# One\n\nfirst", slides[0].Body)
		assert.Equal(t, "n1", slides[0].Notes)
		assert.Equal(t, "# Two\n\nsecond", slides[1].Body)
	})

	t.Run("large deck", func(t *testing.T) {
		slides := segmenter.Parse(builders.LargeDeck())

		require.Len(t, slides, 50)
		assert.Equal(t, 49, slides[49].Position)
	})
}

// splitColumns returns the rendered left and right halves of a column fragment
func splitColumns(t *testing.T, body string) (string, string) {
	t.Helper()

	leftStart := strings.Index(body, `<div class="column-left">`)
	rightStart := strings.Index(body, `<div class="column-right">`)
	require.True(t, leftStart >= 0 && rightStart > leftStart, "column regions missing in %q", body)

	return body[leftStart:rightStart], body[rightStart:]
}
