package flow_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/aretw0/qflow/pkg/domain"
	"github.com/aretw0/qflow/pkg/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleTree builds Root -> [Group "G" -> [X, Y], EndSurvey].
func sampleTree() (*flow.Root, *domain.Block, *domain.Block) {
	x := domain.NewBlock("X")
	y := domain.NewBlock("Y")
	root := flow.NewRoot(
		flow.NewGroup("G", flow.NewBlockRef(x), flow.NewBlockRef(y)),
		flow.NewTerminator(),
	)
	return root, x, y
}

func toMap(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestFinalize_ReferenceExample(t *testing.T) {
	root, x, y := sampleTree()
	ids := flow.NewBlockIDs()
	ids.Set(x, "BL_1")
	ids.Set(y, "BL_2")

	doc, err := root.Finalize(ids)
	require.NoError(t, err)

	assert.Equal(t, "FL_1", doc.FlowID)
	assert.Equal(t, flow.TypeRoot, doc.Type)
	require.NotNil(t, doc.Properties)
	assert.Equal(t, 5, doc.Properties.Count)
	assert.Empty(t, doc.Properties.RemovedFieldsets)
	require.Len(t, doc.Flow, 2)

	group, ok := doc.Flow[0].(*flow.GroupElement)
	require.True(t, ok)
	assert.Equal(t, "FL_2", group.FlowID)
	assert.Equal(t, "G", group.Description)
	require.Len(t, group.Flow, 2)

	first := group.Flow[0].(*flow.BlockElement)
	second := group.Flow[1].(*flow.BlockElement)
	assert.Equal(t, "FL_3", first.FlowID)
	assert.Equal(t, "BL_1", first.ID)
	assert.Equal(t, "FL_4", second.FlowID)
	assert.Equal(t, "BL_2", second.ID)

	end := doc.Flow[1].(*flow.EndSurveyElement)
	assert.Equal(t, "FL_5", end.FlowID)
	assert.Equal(t, flow.TypeEndSurvey, end.Type)
}

func TestFinalize_IdentifiersArePreOrder(t *testing.T) {
	a, b, c := domain.NewBlock("A"), domain.NewBlock("B"), domain.NewBlock("C")
	root := flow.NewRoot()
	g := root.AppendChild(flow.NewGroup("outer")).(*flow.Group)
	r := g.AppendChild(flow.NewRandomSubset(1, true)).(*flow.RandomSubset)
	r.AppendBlock(a)
	r.AppendBlock(b)
	g.AppendBlock(c)
	root.AppendChild(flow.NewGroup(""))
	root.AppendBlock(a)
	root.AppendChild(flow.NewTerminator())

	ids := flow.CollectDistinctBlocks(root)
	for i, blk := range ids.Blocks() {
		ids.Set(blk, flow.FormatFlowID(100+i))
	}
	doc, err := root.Finalize(ids)
	require.NoError(t, err)

	// Collect compiled ids in document pre-order.
	var got []string
	var visit func(el flow.Element)
	visit = func(el flow.Element) {
		got = append(got, el.ElementID())
		for _, child := range el.Elements() {
			visit(child)
		}
	}
	visit(doc)

	// And the ids Walk predicts for the tree.
	var want []string
	require.NoError(t, flow.Walk(root, func(n flow.Node, id, depth int) error {
		want = append(want, flow.FormatFlowID(id))
		return nil
	}))

	assert.Equal(t, want, got)
	assert.Len(t, got, flow.Count(root))
	for i, id := range got {
		assert.Equal(t, flow.FormatFlowID(i+1), id)
	}
	assert.Equal(t, flow.Count(root), doc.Properties.Count)
	assert.Equal(t, 9, doc.Properties.Count)
}

func TestFinalize_OmitsEmptyFlow(t *testing.T) {
	root := flow.NewRoot()
	doc, err := root.Finalize(flow.NewBlockIDs())
	require.NoError(t, err)

	m := toMap(t, doc)
	assert.NotContains(t, m, "Flow")
	assert.Equal(t, float64(1), m["Properties"].(map[string]any)["Count"])

	root.AppendChild(flow.NewGroup("empty"))
	root.AppendChild(flow.NewRandomSubset(2, false))
	doc, err = root.Finalize(flow.NewBlockIDs())
	require.NoError(t, err)

	m = toMap(t, doc)
	children := m["Flow"].([]any)
	require.Len(t, children, 2)
	for _, child := range children {
		assert.NotContains(t, child.(map[string]any), "Flow")
	}
}

func TestFinalize_LeavesHaveNoFlowKey(t *testing.T) {
	blk := domain.NewBlock("only")
	root := flow.NewRoot(flow.NewBlockRef(blk), flow.NewTerminator())
	ids := flow.CollectDistinctBlocks(root)
	ids.Set(blk, "BL_abc")

	doc, err := root.Finalize(ids)
	require.NoError(t, err)

	m := toMap(t, doc)
	children := m["Flow"].([]any)
	block := children[0].(map[string]any)
	end := children[1].(map[string]any)

	assert.NotContains(t, block, "Flow")
	assert.Equal(t, []any{}, block["Autofill"])
	assert.Equal(t, "BL_abc", block["ID"])
	assert.NotContains(t, end, "Flow")
	assert.Equal(t, map[string]any{"FlowID": "FL_3", "Type": "EndSurvey"}, end)
}

func TestFinalize_RandomizerFields(t *testing.T) {
	a, b := domain.NewBlock("A"), domain.NewBlock("B")
	root := flow.NewRoot(flow.NewRandomSubset(1, true, flow.NewBlockRef(a), flow.NewBlockRef(b)))
	ids := flow.CollectDistinctBlocks(root)
	ids.Set(a, "BL_a")
	ids.Set(b, "BL_b")

	doc, err := root.Finalize(ids)
	require.NoError(t, err)

	m := toMap(t, doc)
	rnd := m["Flow"].([]any)[0].(map[string]any)
	assert.Equal(t, "BlockRandomizer", rnd["Type"])
	assert.Equal(t, float64(1), rnd["SubSet"])
	assert.Equal(t, true, rnd["EvenPresentation"])
	assert.Len(t, rnd["Flow"], 2)
}

func TestFinalize_SharedBlockResolvesToSameID(t *testing.T) {
	shared := domain.NewBlock("shared")
	root := flow.NewRoot()
	root.AppendBlock(shared)
	root.AppendChild(flow.NewGroup("again")).(*flow.Group).AppendBlock(shared)

	ids := flow.CollectDistinctBlocks(root)
	require.Equal(t, 1, ids.Len())
	ids.Set(shared, "BL_shared")

	doc, err := root.Finalize(ids)
	require.NoError(t, err)

	first := doc.Flow[0].(*flow.BlockElement)
	second := doc.Flow[1].(*flow.GroupElement).Flow[0].(*flow.BlockElement)
	assert.Equal(t, first.ID, second.ID)
	assert.NotEqual(t, first.FlowID, second.FlowID)
}

func TestFinalize_MissingBlock(t *testing.T) {
	root, x, _ := sampleTree()
	ids := flow.CollectDistinctBlocks(root)
	ids.Set(x, "BL_1")

	_, err := root.Finalize(ids)
	require.Error(t, err)
	assert.ErrorIs(t, err, flow.ErrBlockNotRegistered)

	var missing *flow.MissingBlockError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "FL_4", missing.FlowID)
	assert.Equal(t, "Y", missing.Description)

	_, err = root.Finalize(nil)
	assert.ErrorIs(t, err, flow.ErrBlockNotRegistered)
}

func TestFinalize_Idempotent(t *testing.T) {
	root, x, y := sampleTree()
	ids := flow.CollectDistinctBlocks(root)
	ids.Set(x, "BL_1")
	ids.Set(y, "BL_2")

	first, err := root.Finalize(ids)
	require.NoError(t, err)
	second, err := root.Finalize(ids)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	// Recompiling with another table does not disturb the tree.
	other := flow.NewBlockIDs()
	other.Set(x, "BL_9")
	other.Set(y, "BL_8")
	_, err = root.Finalize(other)
	require.NoError(t, err)

	third, err := root.Finalize(ids)
	require.NoError(t, err)
	c, err := json.Marshal(third)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(c))
}

func TestCompile_SubtreeFromArbitraryBase(t *testing.T) {
	blk := domain.NewBlock("b")
	g := flow.NewGroup("g", flow.NewBlockRef(blk), flow.NewTerminator())
	ids := flow.NewBlockIDs()
	ids.Set(blk, "BL_1")

	el, last, err := g.Compile(10, ids)
	require.NoError(t, err)
	assert.Equal(t, 12, last)
	assert.Equal(t, "FL_10", el.ElementID())
	assert.Equal(t, "FL_11", el.Elements()[0].ElementID())
	assert.Equal(t, "FL_12", el.Elements()[1].ElementID())

	_, last, err = flow.NewTerminator().Compile(7, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, last)
}

func TestCollectDistinctBlocks_FirstEncounterOrder(t *testing.T) {
	a, b := domain.NewBlock("same"), domain.NewBlock("same")
	root := flow.NewRoot(
		flow.NewBlockRef(a),
		flow.NewGroup("g", flow.NewBlockRef(b)),
		flow.NewRandomSubset(1, false, flow.NewBlockRef(a)),
		flow.NewTerminator(),
	)

	refs := root.BlockRefs()
	require.Len(t, refs, 3)

	ids := flow.CollectDistinctBlocks(root)
	blocks := ids.Blocks()
	require.Len(t, blocks, 2)
	assert.Same(t, a, blocks[0])
	assert.Same(t, b, blocks[1])
	assert.Len(t, ids.Missing(), 2)

	_, ok := ids.Lookup(a)
	assert.False(t, ok, "slots start unset")
	assert.True(t, ids.Has(a))

	ids.Set(a, "BL_a")
	got, ok := ids.Lookup(a)
	assert.True(t, ok)
	assert.Equal(t, "BL_a", got)
	assert.Equal(t, []*domain.Block{b}, ids.Missing())
}

func TestCollectDistinctBlocks_TerminatorYieldsNothing(t *testing.T) {
	assert.Empty(t, flow.NewTerminator().BlockRefs())
	assert.Equal(t, 0, flow.CollectDistinctBlocks(flow.NewRoot(flow.NewTerminator())).Len())
}

func TestAppend_LeafRejectsChildren(t *testing.T) {
	leaves := map[string]flow.Node{
		"Terminator": flow.NewTerminator(),
		"BlockRef":   flow.NewBlockRef(domain.NewBlock("b")),
	}

	for name, leaf := range leaves {
		t.Run(name, func(t *testing.T) {
			_, isContainer := leaf.(flow.Container)
			assert.False(t, isContainer)

			_, err := flow.Append(leaf, flow.NewGroup("child"))
			assert.ErrorIs(t, err, flow.ErrNoChildren)

			_, err = flow.AppendBlock(leaf, domain.NewBlock("child"))
			assert.ErrorIs(t, err, flow.ErrNoChildren)

			assert.Empty(t, leaf.Children())
		})
	}
}

func TestAppend_Containers(t *testing.T) {
	blk := domain.NewBlock("b")
	for _, parent := range []flow.Node{flow.NewRoot(), flow.NewGroup(""), flow.NewRandomSubset(1, false)} {
		child := flow.NewTerminator()
		got, err := flow.Append(parent, child)
		require.NoError(t, err)
		assert.Same(t, child, got)

		gotBlock, err := flow.AppendBlock(parent, blk)
		require.NoError(t, err)
		assert.Same(t, blk, gotBlock)
		assert.Len(t, parent.Children(), 2)
	}

	_, err := flow.Append(flow.NewRoot(), nil)
	assert.ErrorIs(t, err, flow.ErrNilChild)
}

func TestAppend_RejectsNestedRoot(t *testing.T) {
	for _, parent := range []flow.Node{flow.NewRoot(), flow.NewGroup(""), flow.NewRandomSubset(1, false)} {
		_, err := flow.Append(parent, flow.NewRoot(flow.NewTerminator()))
		assert.ErrorIs(t, err, flow.ErrNestedRoot, parent.Type())
		assert.Empty(t, parent.Children())
	}

	var root flow.Node = flow.NewRoot()
	_, isChild := root.(flow.Child)
	assert.False(t, isChild, "Root must not be usable as a child")

	doc, err := flow.NewRoot().Finalize(flow.NewBlockIDs())
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Properties.Count)
}

func TestAppend_RejectsTypedNil(t *testing.T) {
	children := map[string]flow.Node{
		"Group":        (*flow.Group)(nil),
		"RandomSubset": (*flow.RandomSubset)(nil),
		"BlockRef":     (*flow.BlockRef)(nil),
		"Terminator":   (*flow.Terminator)(nil),
		"Root":         (*flow.Root)(nil),
	}
	for name, child := range children {
		t.Run(name, func(t *testing.T) {
			root := flow.NewRoot()
			_, err := flow.Append(root, child)
			assert.ErrorIs(t, err, flow.ErrNilChild)
			assert.Empty(t, root.Children())
		})
	}
}

func TestGroup_DefaultDescription(t *testing.T) {
	assert.Equal(t, "Untitled Group", flow.NewGroup("").Description)
}

func TestWalk_SkipChildren(t *testing.T) {
	root := flow.NewRoot(
		flow.NewGroup("skipped", flow.NewTerminator(), flow.NewTerminator()),
		flow.NewTerminator(),
	)

	seen := map[int]string{}
	err := flow.Walk(root, func(n flow.Node, id, depth int) error {
		seen[id] = n.Type()
		if n.Type() == flow.TypeGroup {
			return flow.SkipChildren
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "Root", 2: "Group", 5: "EndSurvey"}, seen)
}
