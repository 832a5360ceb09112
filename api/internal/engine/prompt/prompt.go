package prompt

// System prompt and response schema for homework parsing. The schema is
// passed to the model verbatim; replies are decoded by the homework
// package, with a free-text fallback for models that ignore the JSON
// instruction.

const ParseSystem = `You are the parsing module of a homework study assistant.
Extract every question on the photographed page together with its answer.
Rules:
- Do not invent questions that are not on the page.
- If the page shows a student's written work, also grade it: fill
  student_answer, correct_answer, grade, points and a short feedback line.
- Detect the school subject of the page and your confidence in it.
- Reply with JSON only, strictly matching parse.schema.json. Any text
  outside the JSON is an error.

parse.schema.json follows:`

const ParseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["subject", "subject_confidence", "questions"],
  "properties": {
    "subject": { "type": "string" },
    "subject_confidence": { "type": "number", "minimum": 0, "maximum": 1 },
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["text", "answer", "confidence"],
        "properties": {
          "number": { "type": ["integer", "null"] },
          "text": { "type": "string" },
          "answer": { "type": "string" },
          "confidence": { "type": "number", "minimum": 0, "maximum": 1 },
          "has_visuals": { "type": "boolean" },
          "student_answer": { "type": "string" },
          "correct_answer": { "type": "string" },
          "grade": { "type": "string" },
          "points": { "type": ["number", "null"] },
          "feedback": { "type": "string" },
          "options": { "type": "array", "items": { "type": "string" } }
        }
      }
    }
  }
}`

// ParseUser is the per-request instruction sent alongside the image.
const ParseUser = "Reply with JSON only, per parse.schema.json. No comments."
