package calc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pypath/internal/model"
)

func TestVersionXY(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "39", versionXY("3.9"))
	assert.Equal(t, "31", versionXY("3.11"))
	assert.Equal(t, "00", versionXY(""))
	assert.Equal(t, "00", versionXY("3"))
}

func TestZipPath(t *testing.T) {
	t.Parallel()

	t.Run("walk hit bases the archive on the public prefix", func(t *testing.T) {
		t.Parallel()
		c := newTestCalc(model.Params{Version: "3.9"})
		c.prefixFound = model.FoundByWalk
		got, err := c.zipPath("/opt/rt/lib/python3.9")
		require.NoError(t, err)
		assert.Equal(t, "/opt/rt/lib/python39.zip", got)
	})

	t.Run("build tree falls back to the compiled default", func(t *testing.T) {
		t.Parallel()
		c := newTestCalc(model.Params{Version: "3.9"})
		c.prefixFound = model.FoundByBuildMarker
		got, err := c.zipPath("/src/cpython/Lib")
		require.NoError(t, err)
		assert.Equal(t, "/nonexistent/prefix/lib/python39.zip", got)
	})

	t.Run("unresolved prefix falls back to the compiled default", func(t *testing.T) {
		t.Parallel()
		c := newTestCalc(model.Params{Version: "3.9"})
		c.prefixFound = model.NotFound
		got, err := c.zipPath("/whatever")
		require.NoError(t, err)
		assert.Equal(t, "/nonexistent/prefix/lib/python39.zip", got)
	})
}

func TestAssembleModulePath(t *testing.T) {
	t.Parallel()

	delim := listDelimiter

	t.Run("fixed ordering", func(t *testing.T) {
		t.Parallel()
		c := newTestCalc(model.Params{
			DefaultModulePath: "lib/python3.9" + delim + "lib/python3.9/plat",
		})
		got := c.assembleModulePath("/opt/rt/lib/python3.9", "/opt/rt/lib/python3.9/lib-dynload", "/opt/rt/lib/python39.zip")
		want := strings.Join([]string{
			"/opt/rt/lib/python39.zip",
			"/opt/rt/lib/python3.9/lib/python3.9",
			"/opt/rt/lib/python3.9/lib/python3.9/plat",
			"/opt/rt/lib/python3.9/lib-dynload",
		}, delim)
		assert.Equal(t, want, got)
	})

	t.Run("environment override comes first, verbatim", func(t *testing.T) {
		t.Parallel()
		c := newTestCalc(model.Params{
			PythonPathEnv:     "/extra/one" + delim + "relative/two",
			DefaultModulePath: "lib/python3.9",
		})
		got := c.assembleModulePath("/p", "/xp", "/z.zip")
		want := "/extra/one" + delim + "relative/two" + delim +
			"/z.zip" + delim + "/p/lib/python3.9" + delim + "/xp"
		assert.Equal(t, want, got)
	})

	t.Run("absolute fragments skip the prefix", func(t *testing.T) {
		t.Parallel()
		c := newTestCalc(model.Params{
			DefaultModulePath: "/abs/lib" + delim + "rel/lib",
		})
		got := c.assembleModulePath("/p", "/xp", "/z.zip")
		want := "/z.zip" + delim + "/abs/lib" + delim + "/p/rel/lib" + delim + "/xp"
		assert.Equal(t, want, got)
	})

	t.Run("empty fragment is the prefix alone", func(t *testing.T) {
		t.Parallel()
		c := newTestCalc(model.Params{
			DefaultModulePath: "" + delim + "rel/lib",
		})
		got := c.assembleModulePath("/p", "/xp", "/z.zip")
		want := "/z.zip" + delim + "/p" + delim + "/p/rel/lib" + delim + "/xp"
		assert.Equal(t, want, got)
	})

	t.Run("no doubled separator after a slash-terminated prefix", func(t *testing.T) {
		t.Parallel()
		c := newTestCalc(model.Params{DefaultModulePath: "rel/lib"})
		got := c.assembleModulePath("/p/", "/xp", "/z.zip")
		assert.Equal(t, "/z.zip"+delim+"/p/rel/lib"+delim+"/xp", got)
	})

	t.Run("empty prefix leaves fragments relative", func(t *testing.T) {
		t.Parallel()
		c := newTestCalc(model.Params{DefaultModulePath: "rel/lib"})
		got := c.assembleModulePath("", "/xp", "/z.zip")
		assert.Equal(t, "/z.zip"+delim+"rel/lib"+delim+"/xp", got)
	})
}
