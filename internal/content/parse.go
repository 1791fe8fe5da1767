package content

import (
	"encoding/json"
	"strings"
)

// ParseCourse turns raw generation output into a validated Course.
//
// The input is untrusted: it may wrap the JSON payload in prose or markdown
// fences, and the payload itself may violate the course schema. Extraction,
// decoding and validation are separate steps with distinct ParseError kinds
// so callers can tell "no content" from "broken content" from "wrong shape".
// The function is pure.
func ParseCourse(raw string) (*Course, error) {
	payload, ok := extractObject(raw)
	if !ok {
		return nil, noStructure()
	}

	var c Course
	if err := decodeStrict(payload, &c); err != nil {
		return nil, malformed(err)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	c.normalize()
	return &c, nil
}

// ParseQuiz turns raw generation output into a validated Quiz. Same
// contract as ParseCourse.
func ParseQuiz(raw string) (*Quiz, error) {
	payload, ok := extractObject(raw)
	if !ok {
		return nil, noStructure()
	}

	var q Quiz
	if err := decodeStrict(payload, &q); err != nil {
		return nil, malformed(err)
	}

	if err := q.validate(); err != nil {
		return nil, err
	}
	return &q, nil
}

// decodeStrict decodes a single JSON object, rejecting trailing data inside
// the extracted span. Unknown fields are tolerated: models frequently add
// extra keys and the schema check below is what actually guards shape.
func decodeStrict(payload string, v any) error {
	dec := json.NewDecoder(strings.NewReader(payload))
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}
