/*
Package qflow builds Qualtrics surveys in Go and uploads them through the
survey-definitions REST API.

A survey is assembled from three layers: questions (package question),
blocks of questions (package domain) and, optionally, a flow tree that
arranges blocks into groups, randomizers and early exits (package flow).
The Client uploads a survey one call at a time: the survey, its options,
each distinct block with its questions, and finally the compiled flow.

# Flow trees

A flow tree is compiled into the document the platform expects. Elements
are numbered FL_1, FL_2, ... in depth-first pre-order, and each block
reference is resolved to the ID the platform assigned to that block. A block
referenced several times is uploaded once.

# Usage

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/aretw0/qflow"
		"github.com/aretw0/qflow/pkg/adapters/qualtrics"
		"github.com/aretw0/qflow/pkg/domain"
		"github.com/aretw0/qflow/pkg/flow"
		"github.com/aretw0/qflow/pkg/question"
		"github.com/aretw0/qflow/pkg/survey"
	)

	func main() {
		consent := domain.NewBlock("consent", question.TextGraphic("<p>Welcome!</p>", ""))
		a := domain.NewBlock("condition A", question.Timing("timeA"))
		b := domain.NewBlock("condition B", question.Timing("timeB"))

		s := survey.NewFlowSurvey("Experiment")
		s.AppendBlock(consent)
		s.AppendFlow(flow.NewRandomSubset(1, true, flow.NewBlockRef(a), flow.NewBlockRef(b)))

		api := qualtrics.New(os.Getenv("QUALTRICS_API_TOKEN"), "syd1")
		id, err := qflow.New(api).Create(context.Background(), s)
		if err != nil {
			log.Fatal(err)
		}
		log.Println("created", id, api.PreviewURL(id))
	}
*/
package qflow
