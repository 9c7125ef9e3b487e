/*
Package flow models a survey flow: the navigation tree that decides which
blocks a participant sees and in what order.

A flow is a tree rooted at a Root. Container elements (Root, Group,
RandomSubset) hold ordered children; leaves (BlockRef, Terminator) do not.
The leaves cannot be appended to: they do not implement Container, and the
dynamic helpers Append and AppendBlock return ErrNoChildren for them.

Compiling a tree turns it into the nested document accepted by the
platform's "update flow" call. Every element receives a flow identifier
(FL_1, FL_2, ...) in depth-first pre-order, starting with the root at 1.
Blocks are uploaded before compiling; their platform identifiers are looked
up in a BlockIDs table keyed by block identity.

	intro := domain.NewBlock("Intro")
	a, b := domain.NewBlock("A"), domain.NewBlock("B")

	root := flow.NewRoot()
	root.AppendBlock(intro)
	root.AppendChild(flow.NewRandomSubset(1, true,
		flow.NewBlockRef(a),
		flow.NewBlockRef(b),
	))
	root.AppendChild(flow.NewTerminator())

	ids := flow.CollectDistinctBlocks(root)
	for _, blk := range ids.Blocks() {
		ids.Set(blk, upload(blk)) // platform call, one per distinct block
	}

	doc, err := root.Finalize(ids)
*/
package flow
