package qflow_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/qflow"
	"github.com/aretw0/qflow/pkg/adapters/memory"
	"github.com/aretw0/qflow/pkg/domain"
	"github.com/aretw0/qflow/pkg/flow"
	"github.com/aretw0/qflow/pkg/question"
	"github.com/aretw0/qflow/pkg/survey"
)

// ExampleClient_Create uploads a randomized flow survey to an in-memory
// platform, which needs no credentials.
func ExampleClient_Create() {
	a := domain.NewBlock("A", question.Timing("TA"))
	b := domain.NewBlock("B", question.Timing("TB"))

	s := survey.NewFlowSurvey("Example")
	s.AppendFlow(flow.NewRandomSubset(1, true, flow.NewBlockRef(a), flow.NewBlockRef(b)))
	s.AppendFlow(flow.NewTerminator())

	platform := memory.NewPlatform()
	id, err := qflow.New(platform).Create(context.Background(), s)
	if err != nil {
		log.Fatal(err)
	}

	doc := platform.Flow(id)
	props := doc["Properties"].(map[string]any)
	fmt.Println(id, props["Count"])
	// Output: SV_1 5
}

// ExampleCompile shows the flow document with placeholder block IDs.
func ExampleCompile() {
	intro := domain.NewBlock("intro")
	s := survey.NewFlowSurvey("Example")
	s.AppendBlock(intro)
	s.AppendFlow(flow.NewGroup("", flow.NewBlockRef(intro)))

	doc, err := qflow.Compile(s)
	if err != nil {
		log.Fatal(err)
	}
	for _, el := range doc.Flow {
		fmt.Println(el.ElementID(), el.ElementType())
	}
	fmt.Println(doc.Properties.Count)
	// Output:
	// FL_2 Block
	// FL_3 Group
	// 4
}
