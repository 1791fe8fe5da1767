package library

// JSON Schemas used to validate persisted payloads at load time. Files on
// disk outlive process restarts and may have been edited or written by an
// older build, so unlike freshly parsed generation output they are
// re-checked before use.

const courseSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["title", "topics"],
	"properties": {
		"title": {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"learning_objectives": {"type": "array", "items": {"type": "string"}},
		"introduction": {"type": "string"},
		"topics": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string"},
					"content": {"type": "string"},
					"subtopics": {
						"type": "array",
						"items": {
							"type": "object",
							"required": ["name"],
							"properties": {
								"name": {"type": "string"},
								"content": {"type": "string"},
								"examples": {"type": "array", "items": {"type": "string"}}
							}
						}
					},
					"examples": {"type": "array", "items": {"type": "string"}}
				}
			}
		},
		"summary": {"type": "string"},
		"key_takeaways": {"type": "array", "items": {"type": "string"}}
	}
}`

const quizSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["questions"],
	"properties": {
		"questions": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"required": ["text", "choices", "correct_index"],
				"properties": {
					"text": {"type": "string"},
					"choices": {
						"type": "array",
						"minItems": 4,
						"maxItems": 4,
						"items": {"type": "string"}
					},
					"correct_index": {"type": "integer", "minimum": 0, "maximum": 3},
					"explanation": {"type": "string"}
				}
			}
		}
	}
}`
