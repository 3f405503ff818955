package estree_test

import (
	"slices"
	"testing"

	"github.com/mouse-blink/litrep/internal/estree"
	"github.com/mouse-blink/litrep/internal/estree/estreetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallSites_Names(t *testing.T) {
	root := estreetest.MustParse(t, `
t('a')
i18n.t('b')
i18n?.$t('c')
i18n['t']('d')
factory()('e')
obj.nested.deep('f')
`)

	var names []string

	for site, err := range estree.CallSites(root) {
		require.NoError(t, err)
		names = append(names, site.Name)
	}

	assert.Equal(t, []string{"t", "t", "$t", "", "", "factory", "deep"}, names)
}

func TestCallSites_SourceOrderAndNesting(t *testing.T) {
	root := estreetest.MustParse(t, `outer(inner(t('x')), other('y')); last()`)

	var names []string

	for site, err := range estree.CallSites(root) {
		require.NoError(t, err)
		names = append(names, site.Name)
	}

	assert.Equal(t, []string{"outer", "inner", "t", "other", "last"}, names)
}

func TestCallSites_Lazy(t *testing.T) {
	root := estreetest.MustParse(t, `a(); b(); c()`)

	var names []string

	for site := range estree.CallSites(root) {
		names = append(names, site.Name)
		if len(names) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"a", "b"}, names)
}

func TestCallSites_MissingCallee(t *testing.T) {
	root := estree.NewNode("Program", nil, &estree.Node{Type: estree.KindCallExpression})

	var errs []error

	for _, err := range estree.CallSites(root) {
		errs = append(errs, err)
	}

	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], estree.ErrMissingCallee)
}

func TestNodes_VisitsEveryNodeOnce(t *testing.T) {
	root := estreetest.MustParse(t, "a.b(c, 'd' + `e`)\nf[g](1, true, null)")

	seen := make(map[*estree.Node]int)

	var kinds []estree.Kind

	for n := range estree.Nodes(root) {
		seen[n]++
		kinds = append(kinds, n.Type)
	}

	for n, count := range seen {
		assert.Equalf(t, 1, count, "node %s visited %d times", n.Type, count)
	}

	assert.Equal(t, estree.Kind("Program"), kinds[0])
	assert.Equal(t, 5, countKind(kinds, estree.KindIdentifier))
	assert.Equal(t, 2, countKind(kinds, estree.KindMemberExpression))
	assert.Equal(t, 4, countKind(kinds, estree.KindLiteral))
	assert.True(t, slices.Contains(kinds, estree.Kind("TemplateLiteral")))
	assert.True(t, slices.Contains(kinds, estree.Kind("TemplateElement")))
	assert.True(t, slices.Contains(kinds, estree.Kind("BinaryExpression")))
}

func TestCalleeName(t *testing.T) {
	ident := estree.NewIdentifier("t", nil)
	private := &estree.Node{Type: "PrivateIdentifier", Name: "t"}

	tests := []struct {
		name   string
		call   *estree.Node
		want   string
		wantOK bool
	}{
		{name: "identifier", call: estree.NewCall(ident, nil, nil), want: "t", wantOK: true},
		{name: "member", call: estree.NewCall(estree.NewMember(estree.NewIdentifier("i18n", nil), ident, false, nil), nil, nil), want: "t", wantOK: true},
		{name: "computed member", call: estree.NewCall(estree.NewMember(estree.NewIdentifier("i18n", nil), ident, true, nil), nil, nil)},
		{name: "private member", call: estree.NewCall(estree.NewMember(estree.NewNode("ThisExpression", nil), private, false, nil), nil, nil)},
		{name: "nil", call: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := estree.CalleeName(tt.call)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func countKind(kinds []estree.Kind, kind estree.Kind) int {
	n := 0

	for _, k := range kinds {
		if k == kind {
			n++
		}
	}

	return n
}
