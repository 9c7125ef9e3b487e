package domain

// DefaultBlockDescription is the description the survey editor gives new blocks.
const DefaultBlockDescription = "Standard Question Block"

// Block is a virtual block of questions.
// Blocks are referenced by pointer: the flow tree and the uploader key
// everything on *Block, so the same block appended twice is uploaded once.
type Block struct {
	// Description is shown in the survey editor but not to participants.
	Description string
	Questions   []Question
}

// NewBlock creates a block with the given description and questions.
// An empty description falls back to DefaultBlockDescription.
func NewBlock(description string, questions ...Question) *Block {
	if description == "" {
		description = DefaultBlockDescription
	}
	return &Block{
		Description: description,
		Questions:   append([]Question(nil), questions...),
	}
}

// AppendQuestion adds a question to the end of the block.
func (b *Block) AppendQuestion(q Question) *Block {
	b.Questions = append(b.Questions, q)
	return b
}

// AppendPageBreak ends the current page of the block.
func (b *Block) AppendPageBreak() *Block {
	return b.AppendQuestion(PageBreak())
}
