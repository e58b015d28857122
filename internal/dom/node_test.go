package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		give string
		want string
	}{
		{desc: "no class", give: `<p>x</p>`, want: `<p class="a">x</p>`},
		{desc: "empty class", give: `<p class="">x</p>`, want: `<p class="a">x</p>`},
		{desc: "other class", give: `<p class="b">x</p>`, want: `<p class="b a">x</p>`},
		{desc: "already present", give: `<p class="b a c">x</p>`, want: `<p class="b a c">x</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			t.Parallel()

			doc := parseFragment(t, tt.give)
			p := queryAll(doc, "p")[0]
			addClass(p, "a")
			addClass(p, "a")
			assert.Equal(t, tt.want, render(t, p))
		})
	}

	t.Run("nil", func(t *testing.T) {
		t.Parallel()

		assert.NotPanics(t, func() { addClass(nil, "a") })
	})
}

func TestAttr(t *testing.T) {
	t.Parallel()

	doc := parseFragment(t, `<p data-x="1" id="y">x</p>`)
	p := queryAll(doc, "p")[0]

	got, ok := attr(p, "data-x")
	assert.True(t, ok)
	assert.Equal(t, "1", got)

	setAttr(p, "data-x", "2")
	setAttr(p, "data-z", "3")
	assert.Equal(t, `<p data-x="2" id="y" data-z="3">x</p>`, render(t, p))

	removeAttr(p, "data-x")
	_, ok = attr(p, "data-x")
	assert.False(t, ok)
	assert.Equal(t, `<p id="y" data-z="3">x</p>`, render(t, p))
}

func TestClone(t *testing.T) {
	t.Parallel()

	doc := parseFragment(t, `<code class="a"><span>1</span>`+"\n"+`<span>2</span></code>`)
	code := queryAll(doc, "code")[0]

	got := clone(code)
	require.Nil(t, got.Parent)
	assert.Equal(t, render(t, code), render(t, got))

	addClass(got.FirstChild, "changed")
	assert.False(t, hasClass(code.FirstChild, "changed"), "clone must be deep")
	assert.Len(t, elementChildren(got), 2)
}
