package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentation_Title(t *testing.T) {
	tests := []struct {
		name   string
		slides []Slide
		want   string
	}{
		{
			name:   "first heading of first slide",
			slides: []Slide{NewSlide(0, "# My Deck\n\nIntro", "")},
			want:   "My Deck",
		},
		{
			name:   "heading after other content",
			slides: []Slide{NewSlide(0, "Intro line\n#   Spaced Title   \nmore", "")},
			want:   "Spaced Title",
		},
		{
			name:   "second level heading is ignored",
			slides: []Slide{NewSlide(0, "## Not a title", "")},
			want:   "talk",
		},
		{
			name:   "hash without space is ignored",
			slides: []Slide{NewSlide(0, "#hashtag", "")},
			want:   "talk",
		},
		{
			name:   "indented heading is ignored",
			slides: []Slide{NewSlide(0, "  # Indented", "")},
			want:   "talk",
		},
		{
			name: "heading only in second slide",
			slides: []Slide{
				NewSlide(0, "No heading here", ""),
				NewSlide(1, "# Second", ""),
			},
			want: "talk",
		},
		{
			name:   "no slides",
			slides: nil,
			want:   "talk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Presentation{Name: "talk", Slides: tt.slides}
			assert.Equal(t, tt.want, p.Title())
		})
	}
}

func TestPresentation_Export(t *testing.T) {
	t.Run("count matches slides", func(t *testing.T) {
		p := &Presentation{
			Name: "deck",
			Slides: []Slide{
				NewSlide(0, "# Deck", "hello"),
				NewSlide(1, "Second", ""),
			},
		}

		export := p.Export()
		assert.Equal(t, 2, export.Total)
		assert.Len(t, export.Slides, export.Total)
		assert.Equal(t, "Deck", export.Title)
		assert.Equal(t, p.Total(), export.Total)
	})

	t.Run("empty presentation", func(t *testing.T) {
		p := &Presentation{Name: "empty"}

		export := p.Export()
		assert.Equal(t, 0, export.Total)
		assert.Empty(t, export.Slides)
		assert.Equal(t, "empty", export.Title)
	})

	t.Run("export does not alias slides", func(t *testing.T) {
		p := &Presentation{Name: "deck", Slides: []Slide{NewSlide(0, "# A", "")}}

		export := p.Export()
		export.Slides[0].Body = "changed"

		assert.Equal(t, "# A", p.Slides[0].Body)
	})

	t.Run("stable across calls", func(t *testing.T) {
		p := &Presentation{Name: "deck", Slides: []Slide{NewSlide(0, "# A", "n")}}
		assert.Equal(t, p.Export(), p.Export())
	})

	t.Run("json field names", func(t *testing.T) {
		p := &Presentation{Name: "deck", Slides: []Slide{NewSlide(0, "# A", "n")}}

		data, err := json.Marshal(p.Export())
		require.NoError(t, err)
		assert.JSONEq(t, `{"slides":[{"id":0,"content":"# A","notes":"n"}],"total":1,"title":"A"}`, string(data))
	})
}

func TestPresentation_GetSlide(t *testing.T) {
	p := &Presentation{Slides: []Slide{NewSlide(0, "a", ""), NewSlide(1, "b", "")}}

	slide, err := p.GetSlide(1)
	require.NoError(t, err)
	assert.Equal(t, "b", slide.Body)

	_, err = p.GetSlide(2)
	assert.Error(t, err)

	_, err = p.GetSlide(-1)
	assert.Error(t, err)
}
