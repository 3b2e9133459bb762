package filterpanel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hypergopher/sitesearch"
	"github.com/hypergopher/sitesearch/filterpanel"
)

func sampleEntries() []sitesearch.Entry {
	return []sitesearch.Entry{
		{Permalink: "/posts/a/", Tags: []string{"go"}, Date: "2024-03-02T10:00:00Z"},
		{Permalink: "/posts/b/", Tags: []string{"rust", "web"}, Date: "2023-07-14"},
		{Permalink: "/posts/c/", Tags: []string{"go"}, Date: "whenever"},
	}
}

func TestPanel_SearchTags(t *testing.T) {
	p := filterpanel.New(testCards(), testVocabulary())

	p.SearchTags("RU")
	view := p.View()
	assert.Equal(t, []string{"Rust", "rust"}, view.Suggestions)
	assert.True(t, view.SuggestionsOpen)
	assert.False(t, view.NoTagsFound)
	assert.Equal(t, -1, view.Highlighted)

	p.AddTag("rust")
	assert.Equal(t, []string{"Rust"}, p.View().Suggestions)

	p.SearchTags("python")
	view = p.View()
	assert.Empty(t, view.Suggestions)
	assert.True(t, view.SuggestionsOpen)
	assert.True(t, view.NoTagsFound)

	p.SearchTags("   ")
	view = p.View()
	assert.False(t, view.SuggestionsOpen)
	assert.False(t, view.NoTagsFound)
}

func TestPanel_SelectedTagIsNeverSuggested(t *testing.T) {
	p := filterpanel.New(testCards(), testVocabulary())
	p.AddTag("web")
	p.SearchTags("we")

	assert.Equal(t, []string{"webassembly"}, p.View().Suggestions)

	p.RemoveTag("web")
	assert.Equal(t, []string{"web", "webassembly"}, p.View().Suggestions)

	for _, tag := range p.View().Suggestions {
		assert.False(t, p.IsSelected(tag))
	}
}

func TestPanel_ArrowKeysWrapAround(t *testing.T) {
	p := filterpanel.New(testCards(), testVocabulary())
	p.SearchTags("w")
	require.Equal(t, []string{"web", "webassembly"}, p.View().Suggestions)

	steps := []struct {
		key      filterpanel.Key
		expected int
	}{
		{filterpanel.KeyArrowDown, 0},
		{filterpanel.KeyArrowDown, 1},
		{filterpanel.KeyArrowDown, 0},
		{filterpanel.KeyArrowUp, 1},
		{filterpanel.KeyArrowUp, 0},
		{filterpanel.KeyArrowUp, 1},
	}
	for _, step := range steps {
		assert.True(t, p.HandleKey(step.key))
		assert.Equal(t, step.expected, p.View().Highlighted)
	}

	p.SearchTags("we")
	assert.Equal(t, -1, p.View().Highlighted)
	p.HandleKey(filterpanel.KeyArrowUp)
	assert.Equal(t, 1, p.View().Highlighted)
}

func TestPanel_EnterSelectsHighlighted(t *testing.T) {
	p := filterpanel.New(testCards(), testVocabulary())
	p.Focus()
	p.SearchTags("we")
	p.HandleKey(filterpanel.KeyArrowDown)
	p.HandleKey(filterpanel.KeyArrowDown)
	p.HandleKey(filterpanel.KeyEnter)

	view := p.View()
	assert.Equal(t, []string{"webassembly"}, view.SelectedTags)
	assert.Equal(t, "", view.TagQuery)
	assert.False(t, view.SuggestionsOpen)
	assert.Equal(t, -1, view.Highlighted)
	assert.Equal(t, 0, view.VisibleCount)
}

func TestPanel_EnterSelectsFirstWithoutHighlight(t *testing.T) {
	p := filterpanel.New(testCards(), testVocabulary())
	p.SearchTags("we")
	p.HandleKey(filterpanel.KeyEnter)

	assert.Equal(t, []string{"web"}, p.SelectedTags())
	assert.Equal(t, []string{"/posts/c/"}, visibleURLs(p))
}

func TestPanel_EnterWithoutSuggestionsDoesNothing(t *testing.T) {
	p := filterpanel.New(testCards(), testVocabulary())
	p.AddTag("go")
	p.SearchTags("go")
	require.True(t, p.View().NoTagsFound)

	p.HandleKey(filterpanel.KeyEnter)
	assert.Equal(t, []string{"go"}, p.SelectedTags())
}

func TestPanel_EscapeHidesAndBlurs(t *testing.T) {
	p := filterpanel.New(testCards(), testVocabulary())
	p.Focus()
	p.SearchTags("we")
	p.HandleKey(filterpanel.KeyArrowDown)
	p.HandleKey(filterpanel.KeyEscape)

	view := p.View()
	assert.False(t, view.SuggestionsOpen)
	assert.False(t, view.InputFocused)
	assert.Equal(t, -1, view.Highlighted)
	assert.Equal(t, "we", view.TagQuery)

	p.Focus()
	view = p.View()
	assert.True(t, view.SuggestionsOpen)
	assert.True(t, view.InputFocused)
	assert.Equal(t, []string{"web", "webassembly"}, view.Suggestions)
}

func TestPanel_ChooseSuggestion(t *testing.T) {
	p := filterpanel.New(testCards(), testVocabulary())
	p.SearchTags("c")
	require.Equal(t, []string{"cli"}, p.View().Suggestions)

	p.ChooseSuggestion(5)
	assert.Empty(t, p.SelectedTags())

	p.ChooseSuggestion(0)
	view := p.View()
	assert.Equal(t, []string{"cli"}, view.SelectedTags)
	assert.True(t, view.InputFocused)
	assert.Equal(t, "", view.TagQuery)
	assert.Equal(t, 1, view.VisibleCount)
}

func TestPanel_DismissSuggestions(t *testing.T) {
	p := filterpanel.New(testCards(), testVocabulary())
	p.SearchTags("go")
	p.HandleKey(filterpanel.KeyArrowDown)
	p.DismissSuggestions()

	view := p.View()
	assert.False(t, view.SuggestionsOpen)
	assert.Equal(t, -1, view.Highlighted)
	assert.Equal(t, "go", view.TagQuery)
}

func TestPanel_UnknownKeyIsNotConsumed(t *testing.T) {
	p := filterpanel.New(testCards(), testVocabulary())
	assert.False(t, p.HandleKey(filterpanel.Key("Tab")))
}
