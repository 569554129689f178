package openai

import "fmt"

const generationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "questions": {
      "type": "array",
      "items": {
        "type": "string"
      }
    }
  },
  "required": ["questions"],
  "additionalProperties": false
}`

const generationPromptTemplate = `You are given a passage of context information. Generate exactly %d questions
a reader might ask that can be answered using only the passage, and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Each question must be fully answerable from the passage alone, without any outside knowledge.
- Questions must be standalone: do not reference "the passage", "the text", "the author", or "this document".
- Questions must be diverse in nature and must not repeat or trivially rephrase one another.
- Do not ask about formatting, headings, or document structure.
- If the passage contains too little content for %d distinct questions, return fewer rather than padding.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

// buildGenerationPrompt builds the system prompt asking for n questions.
func buildGenerationPrompt(n int) string {
	return fmt.Sprintf(generationPromptTemplate, n, generationResponseSchema, n)
}
