package ioc_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/junioryono/ioc"
	"github.com/junioryono/ioc/internal/testutil"
)

func findEntry(t *testing.T, infos []ioc.EntryInfo, typ string) ioc.EntryInfo {
	t.Helper()
	for _, info := range infos {
		if info.Type == typ {
			return info
		}
	}
	require.Failf(t, "entry not found", "no entry for %s", typ)
	return ioc.EntryInfo{}
}

func TestRegistry_Describe(t *testing.T) {
	t.Run("hierarchy", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		require.NoError(t, r.Install(testutil.Hierarchy))

		infos := r.Describe()
		require.Len(t, infos, 6)

		son := findEntry(t, infos, "*testutil.Son")
		assert.Equal(t, "*testutil.Father", son.Parent)
		assert.Equal(t, []string{"*testutil.C", "*testutil.B", "*testutil.A"}, son.Dependencies)
		assert.Equal(t, "func(*testutil.C, *testutil.B, *testutil.A) *testutil.Son", son.Constructor)
		assert.False(t, son.Inherited)
		assert.False(t, son.HasProvider)

		testutil.RequireResolve[*testutil.Son](t, r)

		infos = r.Describe()
		assert.True(t, findEntry(t, infos, "*testutil.Son").HasProvider)
		assert.True(t, findEntry(t, infos, "*testutil.A").HasProvider)
		assert.False(t, findEntry(t, infos, "*testutil.Father").HasProvider)
	})

	t.Run("inherited dependencies", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		require.NoError(t, ioc.Declare[*testutil.Grandfather](r, ioc.InjectType[*testutil.A]()))
		require.NoError(t, ioc.Declare[*testutil.D](r, ioc.Extends[*testutil.Grandfather]()))

		d := findEntry(t, r.Describe(), "*testutil.D")
		assert.True(t, d.Inherited)
		assert.Equal(t, []string{"*testutil.A"}, d.Dependencies)
	})

	t.Run("singletons and proxies", func(t *testing.T) {
		r := testutil.NewRegistry(t)
		require.NoError(t, r.Install(testutil.Messaging))
		require.NoError(t, r.MakeImmutable(ioc.TypeOf[*testutil.Settings]()))
		ioc.ProxyOf[*testutil.Counter](r)

		before := findEntry(t, r.Describe(), "*testutil.Queue")
		assert.True(t, before.Singleton)
		assert.False(t, before.Constructed)

		testutil.RequireResolve[*testutil.Queue](t, r)

		infos := r.Describe()
		assert.True(t, findEntry(t, infos, "*testutil.Queue").Constructed)
		assert.Equal(t, 1, findEntry(t, infos, "*testutil.Settings").Interceptors)

		counter := findEntry(t, infos, "*testutil.Counter")
		assert.True(t, counter.HasProxy)
		assert.Equal(t, []string{"Add", "Check", "Sum", "Value"}, counter.ProxiedMethods)
	})
}

func TestRegistry_WriteYAML(t *testing.T) {
	r := testutil.NewRegistry(t, ioc.WithID("describe"))
	require.NoError(t, r.Install(testutil.Hierarchy))

	var buf bytes.Buffer
	require.NoError(t, r.WriteYAML(&buf))

	var doc struct {
		Registry string          `yaml:"registry"`
		Entries  []ioc.EntryInfo `yaml:"entries"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "describe", doc.Registry)
	assert.Equal(t, r.Describe(), doc.Entries)
	assert.Contains(t, buf.String(), "registry: describe")
}

func TestRegistry_WriteDOT(t *testing.T) {
	r := testutil.NewRegistry(t)
	require.NoError(t, r.Install(testutil.Hierarchy))

	var buf bytes.Buffer
	require.NoError(t, r.WriteDOT(&buf))
	out := buf.String()

	// Nodes are numbered in name order: A, B, C, Father, Grandfather, Son.
	assert.Contains(t, out, "digraph registry {")
	assert.Contains(t, out, `n0 [label="*testutil.A", fillcolor="white", style=filled];`)
	assert.Contains(t, out, `n5 -> n3 [style=dashed, label="extends"];`)
	assert.Contains(t, out, `n5 -> n2 [label="0"];`)
	assert.Contains(t, out, `n5 -> n1 [label="1"];`)
	assert.Contains(t, out, `n5 -> n0 [label="2"];`)
}

func TestRegistry_WriteText(t *testing.T) {
	r := testutil.NewRegistry(t)
	require.NoError(t, r.Install(testutil.Hierarchy))

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))

	assert.Equal(t, ""+
		"*testutil.A -> []\n"+
		"*testutil.B -> [*testutil.A]\n"+
		"*testutil.C -> [*testutil.A, *testutil.B]\n"+
		"*testutil.Father -> [*testutil.B, *testutil.A] extends *testutil.Grandfather\n"+
		"*testutil.Grandfather -> [*testutil.A]\n"+
		"*testutil.Son -> [*testutil.C, *testutil.B, *testutil.A] extends *testutil.Father\n",
		buf.String())
}
