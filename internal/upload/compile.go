package upload

import (
	"fmt"

	"github.com/aretw0/qflow/pkg/flow"
	"github.com/aretw0/qflow/pkg/survey"
)

// DefaultBlockPlaceholder stands for the default block in offline output.
const DefaultBlockPlaceholder = "BL_default"

// Compile builds the flow document of s without contacting a platform.
// Blocks get placeholder IDs "BL_1", "BL_2", ... in upload order. Surveys
// without a flow tree get the linear flow the platform creates for them.
func Compile(s survey.Survey) (*flow.RootElement, error) {
	root, ids, err := Assemble(s)
	if err != nil {
		return nil, err
	}
	return root.Finalize(ids)
}

// Assemble returns the flow tree of s together with placeholder block IDs,
// as used by Compile.
func Assemble(s survey.Survey) (*flow.Root, *flow.BlockIDs, error) {
	plan, err := s.Plan()
	if err != nil {
		return nil, nil, err
	}
	root := plan.Root
	if root == nil {
		root = flow.NewRoot()
		for _, pb := range plan.Blocks {
			root.AppendBlock(pb.Block)
		}
	}

	n := 0
	for _, pb := range plan.Blocks {
		if pb.UseDefault {
			plan.IDs.Set(pb.Block, DefaultBlockPlaceholder)
			continue
		}
		if _, ok := plan.IDs.Lookup(pb.Block); !ok {
			n++
			plan.IDs.Set(pb.Block, fmt.Sprintf("BL_%d", n))
		}
	}
	return root, plan.IDs, nil
}
