package mapping

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/signadot/mpmap/mpath"
	"github.com/signadot/mpmap/tree"
	"github.com/signadot/mpmap/wire"
	"github.com/stretchr/testify/require"
	"github.com/tinylib/msgp/msgp"
)

const sourceJSON = `{
  "string": "value",
  "jsonObject": {"testAttr": "test"},
  "boolean": false,
  "array": [0, 1, 2],
  "integer": 1024,
  "float": 0.5,
  "nested": {"deeper": {"deepest": [{"id": 7}, {"id": 8}]}}
}`

func doc(t *testing.T, js string) []byte {
	t.Helper()
	d, err := wire.FromJSON([]byte(js))
	require.NoError(t, err)
	return d
}

func jsonOf(t *testing.T, d []byte) []byte {
	t.Helper()
	buf := bytes.NewBuffer(nil)
	require.NoError(t, wire.ToJSON(buf, d))
	return buf.Bytes()
}

func mappings(pairs ...string) []Mapping {
	res := make([]Mapping, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		res = append(res, MustNew(pairs[i], pairs[i+1]))
	}
	return res
}

// requireDoc checks got is exactly the canonical encoding of js.
func requireDoc(t *testing.T, js string, got []byte) {
	t.Helper()
	want := doc(t, js)
	require.Truef(t, jsonpatch.Equal(jsonOf(t, want), jsonOf(t, got)), "expected %s got %s", js, jsonOf(t, got))
	require.Equal(t, want, got)
}

func TestExtractIdentity(t *testing.T) {
	src := doc(t, sourceJSON)
	got, err := Extract(src, mappings("$", "$"))
	require.NoError(t, err)
	require.Equal(t, src, got)
}

func TestExtractIntoNewObject(t *testing.T) {
	src := doc(t, sourceJSON)
	got, err := Extract(src, mappings("$", "$.old"))
	require.NoError(t, err)
	requireDoc(t, `{"old": `+sourceJSON+`}`, got)

	got, err = Extract(src, mappings("$", "$.old.test"))
	require.NoError(t, err)
	requireDoc(t, `{"old": {"test": `+sourceJSON+`}}`, got)
}

func TestExtractRename(t *testing.T) {
	src := doc(t, sourceJSON)
	got, err := Extract(src, mappings("$.jsonObject", "$.testObj"))
	require.NoError(t, err)
	requireDoc(t, `{"testObj": {"testAttr": "test"}}`, got)
}

func TestExtractMultiple(t *testing.T) {
	src := doc(t, sourceJSON)
	got, err := Extract(src, mappings(
		"$.boolean", "$.newBoolean",
		"$.array", "$.newArray",
		"$.jsonObject", "$.newObject",
	))
	require.NoError(t, err)
	requireDoc(t, `{"newBoolean": false, "newArray": [0, 1, 2], "newObject": {"testAttr": "test"}}`, got)
}

func TestExtractSynthesizesContainers(t *testing.T) {
	src := doc(t, sourceJSON)
	got, err := Extract(src, mappings(
		"$.string", "$.arr[0].test",
		"$.integer", "$.arr[1]",
		"$.nested.deeper.deepest[1].id", "$['a.b'].c",
	))
	require.NoError(t, err)
	requireDoc(t, `{"arr": [{"test": "value"}, 1024], "a.b": {"c": 8}}`, got)
}

func TestExtractLastWriteWins(t *testing.T) {
	src := doc(t, sourceJSON)
	got, err := Extract(src, mappings(
		"$.jsonObject", "$.out",
		"$.float", "$.other",
		"$.string", "$.out",
	))
	require.NoError(t, err)
	requireDoc(t, `{"out": "value", "other": 0.5}`, got)

	got, err = Extract(src, mappings(
		"$.jsonObject", "$.out",
		"$.string", "$.out.testAttr",
	))
	require.NoError(t, err)
	requireDoc(t, `{"out": {"testAttr": "value"}}`, got)
}

func TestExtractWildcardFirstMatch(t *testing.T) {
	src := doc(t, sourceJSON)
	got, err := Extract(src, mappings("$.nested.deeper.deepest[*].id", "$.id"))
	require.NoError(t, err)
	requireDoc(t, `{"id": 7}`, got)
}

func TestExtractErrors(t *testing.T) {
	src := doc(t, sourceJSON)

	_, err := Extract(src, nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.EqualError(t, err, "Mapping must be neither null nor empty!")

	_, err = Extract(src, []Mapping{})
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Extract(nil, mappings("$", "$"))
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.EqualError(t, err, "Source document must not be null!")

	_, err = Extract(doc(t, `{}`), mappings("$.foo", "$"))
	require.ErrorIs(t, err, ErrNoMatchFound)
	require.EqualError(t, err, "No data found for query $.foo.")

	_, err = Extract(doc(t, `{"foo": "bar"}`), mappings("$.foo", "$"))
	require.ErrorIs(t, err, ErrNonObjectResult)
	require.EqualError(t, err, "Processing failed, since mapping will result in a non map object (json object).")

	_, err = Extract(src, mappings("$.array", "$[0]"))
	require.ErrorIs(t, err, ErrNonObjectResult)

	_, err = Extract([]byte{0xc1}, mappings("$", "$"))
	require.ErrorIs(t, err, ErrMalformedDocument)

	_, err = Extract([]byte{}, mappings("$", "$"))
	require.ErrorIs(t, err, ErrMalformedDocument)

	_, err = Extract(src, mappings("$.string", "$.a[1]"))
	require.ErrorIs(t, err, tree.ErrIndexOutOfRange)

	_, err = Extract(src, []Mapping{{}})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMergeReplaces(t *testing.T) {
	src := doc(t, `{"test": "thisValue"}`)
	target := doc(t, `{"arr": [0, 1], "obj": {"int": 1}, "test": "value"}`)
	got, err := Merge(src, target, mappings("$.test", "$.obj"))
	require.NoError(t, err)
	requireDoc(t, `{"arr": [0, 1], "obj": "thisValue", "test": "value"}`, got)

	got, err = Merge(doc(t, `{"other": [2, 3]}`), got, mappings("$.other[0]", "$.arr[0]"))
	require.NoError(t, err)
	requireDoc(t, `{"arr": [2, 1], "obj": "thisValue", "test": "value"}`, got)
}

func TestMergeIntoExistingElement(t *testing.T) {
	src := doc(t, `{"x": true}`)
	target := doc(t, `{"array": [{"testAttr": 1, "keep": "me"}, 2]}`)
	got, err := Merge(src, target, mappings(
		"$.x", "$.array[0].testAttr",
		"$.x", "$.array[2]",
		"$.x", "$.added.deep",
	))
	require.NoError(t, err)
	requireDoc(t, `{"array": [{"testAttr": true, "keep": "me"}, 2, true], "added": {"deep": true}}`, got)
}

func TestMergeRootTarget(t *testing.T) {
	src := doc(t, `{"a": 1}`)
	target := doc(t, `{"b": 2}`)
	got, err := Merge(src, target, mappings("$", "$"))
	require.NoError(t, err)
	requireDoc(t, `{"a": 1}`, got)

	_, err = Merge(doc(t, `{"a": [1]}`), target, mappings("$.a", "$"))
	require.ErrorIs(t, err, ErrNonObjectResult)
}

func TestMergeErrors(t *testing.T) {
	src := doc(t, sourceJSON)
	target := doc(t, `{"t": 1}`)
	ms := mappings("$.string", "$.s")

	_, err := Merge(src, nil, ms)
	require.EqualError(t, err, "Target document must not be null!")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Merge(nil, nil, ms)
	require.EqualError(t, err, "Target document must not be null!")

	_, err = Merge(nil, target, ms)
	require.EqualError(t, err, "Source document must not be null!")

	_, err = Merge(src, target, nil)
	require.EqualError(t, err, "Mapping must be neither null nor empty!")

	_, err = Merge(doc(t, `[]`), target, ms)
	require.ErrorIs(t, err, ErrNonObjectSource)
	require.EqualError(t, err, "Can't extract from source document, since it is not a map (json object).")

	_, err = Merge(src, doc(t, `"str"`), ms)
	require.ErrorIs(t, err, ErrNonObjectTarget)
	require.EqualError(t, err, "Can't merge into the target document, since it is not a map (json object).")

	_, err = Merge(src, target, mappings("$.missing", "$.s"))
	require.EqualError(t, err, "No data found for query $.missing.")

	_, err = Merge(src, target[:len(target)-1], ms)
	require.ErrorIs(t, err, ErrMalformedDocument)
}

func TestMergeDoesNotModifyInputs(t *testing.T) {
	src := doc(t, sourceJSON)
	target := doc(t, `{"arr": [0, 1], "obj": {"int": 1}}`)
	srcCopy := bytes.Clone(src)
	targetCopy := bytes.Clone(target)
	e := NewEngine(WithInitialCapacity(1))
	_, err := e.Merge(src, target, mappings("$.nested", "$.obj.int", "$.array", "$.arr[0]"))
	require.NoError(t, err)
	_, err = e.Merge(src, target, mappings("$.nested", "$.obj", "$.missing", "$.x"))
	require.Error(t, err)
	require.Equal(t, srcCopy, src)
	require.Equal(t, targetCopy, target)
}

func TestEngineReusesOutput(t *testing.T) {
	src := doc(t, sourceJSON)
	e := NewEngine()
	first, err := e.Extract(src, mappings("$.integer", "$.a"))
	require.NoError(t, err)
	firstCopy := bytes.Clone(first)
	second, err := e.Extract(src, mappings("$.boolean", "$.b"))
	require.NoError(t, err)
	requireDoc(t, `{"b": false}`, second)
	require.Equal(t, &first[0], &second[0])
	requireDoc(t, `{"a": 1024}`, firstCopy)
}

func TestEngineGrowsOutput(t *testing.T) {
	big := `{"s": "` + strings.Repeat("x", 5000) + `"}`
	src := doc(t, big)
	e := NewEngine(WithInitialCapacity(8))
	got, err := e.Extract(src, mappings("$.s", "$.a", "$.s", "$.b"))
	require.NoError(t, err)
	requireDoc(t, `{"a": "`+strings.Repeat("x", 5000)+`", "b": "`+strings.Repeat("x", 5000)+`"}`, got)
}

func TestEngineLimits(t *testing.T) {
	src := doc(t, sourceJSON)
	_, err := Extract(src, mappings("$", "$"), WithMaxDocumentSize(len(src)-1))
	require.ErrorIs(t, err, tree.ErrDocumentTooLarge)
	_, err = Extract(src, mappings("$", "$"), WithMaxDocumentSize(len(src)))
	require.NoError(t, err)

	_, err = Extract(src, mappings("$", "$"), WithMaxDepth(3))
	require.ErrorIs(t, err, tree.ErrMaxDepth)
	_, err = Extract(doc(t, `{"a": 1}`), mappings("$.a", "$.b.c.d"), WithMaxDepth(2))
	require.ErrorIs(t, err, tree.ErrMaxDepth)
}

func TestEngineDeepDocument(t *testing.T) {
	var deep []byte
	deep = msgp.AppendMapHeader(deep, 1)
	deep = msgp.AppendString(deep, "d")
	for range 900 {
		deep = msgp.AppendArrayHeader(deep, 1)
	}
	deep = msgp.AppendNil(deep)
	got, err := Extract(deep, mappings("$", "$"))
	require.NoError(t, err)
	require.Equal(t, deep, got)

	var deeper []byte
	for range tree.DefaultMaxDepth + 1 {
		deeper = msgp.AppendMapHeader(deeper, 1)
		deeper = msgp.AppendString(deeper, "k")
	}
	deeper = msgp.AppendNil(deeper)
	_, err = Extract(deeper, mappings("$", "$"))
	require.ErrorIs(t, err, tree.ErrMaxDepth)
}

func TestEnginesInParallel(t *testing.T) {
	src := doc(t, sourceJSON)
	want := doc(t, `{"x": "test"}`)
	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := NewEngine()
			for range 50 {
				got, err := e.Extract(src, mappings("$.jsonObject.testAttr", "$.x"))
				if err != nil {
					errs[i] = err
					return
				}
				if !bytes.Equal(got, want) {
					errs[i] = errors.New("unexpected result")
					return
				}
			}
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
}

func TestExtractorBuffers(t *testing.T) {
	src := doc(t, sourceJSON)
	srcTree, err := tree.Index(src)
	require.NoError(t, err)

	ext := tree.NewBuffer(0)
	dst := tree.New(src)
	require.NoError(t, NewExtractor(srcTree, dst, ext).Extract(mappings("$.string", "$.s")))
	require.Zero(t, ext.Len())
	n, ok := dst.Node(mpath.MustParse("$.s"))
	require.True(t, ok)
	l, _ := n.Leaf()
	require.Equal(t, tree.Source, l.Buffer)

	target, err := tree.Index(doc(t, `{}`))
	require.NoError(t, err)
	require.NoError(t, NewExtractor(srcTree, target, ext).Extract(mappings("$.string", "$.s", "$.boolean", "$.b")))
	require.Equal(t, append(msgp.AppendString(nil, "value"), msgp.AppendBool(nil, false)...), ext.Bytes())
	n, ok = target.Node(mpath.MustParse("$.b"))
	require.True(t, ok)
	l, _ = n.Leaf()
	require.Equal(t, tree.Leaf{Buffer: tree.Extract, Offset: 6, Length: 1}, l)
}

func TestEngineMetrics(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	m := NewMetrics(reg)
	e := NewEngine(WithMetrics(m))
	src := doc(t, sourceJSON)

	_, err := e.Extract(src, mappings("$.string", "$.s"))
	require.NoError(t, err)
	_, err = e.Extract(src, mappings("$.nope", "$.s"))
	require.Error(t, err)
	_, err = e.Merge(src, doc(t, `{}`), mappings("$.string", "$.s"))
	require.NoError(t, err)
	_, err = e.Merge(src, nil, mappings("$.string", "$.s"))
	require.Error(t, err)

	require.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("extract", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("extract", "no_match")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("merge", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.calls.WithLabelValues("merge", "invalid_argument")))
	require.Equal(t, 2, testutil.CollectAndCount(m.size))
}

func TestEngineLogs(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	e := NewEngine(WithLogger(log))
	_, err := e.Extract(doc(t, `{}`), mappings("$.a", "$.b"))
	require.Error(t, err)
	require.Contains(t, buf.String(), "mapping failed")
	require.Contains(t, buf.String(), "op=extract")
}
