package domain

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
)

// Required JSON keys of a question record.
const (
	FieldDescription = "desc"
	FieldType        = "type"
	FieldChoices     = "choices"
	FieldAnswerIndex = "answer_idx"
	FieldSolution    = "solution"
	FieldNote        = "note"
	FieldTag         = "tag"
)

// QuestionRecord is one quiz question as stored in the archive.
// Optional fields are nil when absent; an empty string is a present value.
type QuestionRecord struct {
	// Description is the question prompt and the identity key for deduplication.
	Description string `json:"desc"`

	// Type is the answering mode.
	Type QuestionType `json:"type"`

	// Choices are the option texts in source order.
	Choices []string `json:"choices"`

	// AnswerIndex marks the correct choice(s).
	AnswerIndex AnswerIndex `json:"answer_idx"`

	// Solution is an optional explanation.
	Solution *string `json:"solution,omitempty"`

	// Note is an optional free-text annotation.
	Note *string `json:"note,omitempty"`

	// Tag is an optional classification label.
	Tag *string `json:"tag,omitempty"`

	// extra keeps keys outside the known fields so they are written back.
	extra map[string]json.RawMessage
	// missing lists required keys absent from the decoded JSON.
	missing []string
	// rawType keeps the undecodable type text for error reporting.
	rawType string
}

// StringPtr returns a pointer to s, for populating optional fields.
func StringPtr(s string) *string {
	return &s
}

// Clone returns a deep copy of the record.
func (r QuestionRecord) Clone() QuestionRecord {
	out := r
	if r.Choices != nil {
		out.Choices = append([]string(nil), r.Choices...)
	}
	out.AnswerIndex = r.AnswerIndex
	if r.AnswerIndex.indices != nil {
		out.AnswerIndex.indices = r.AnswerIndex.Indices()
	}
	out.Solution = cloneString(r.Solution)
	out.Note = cloneString(r.Note)
	out.Tag = cloneString(r.Tag)
	if r.missing != nil {
		out.missing = append([]string(nil), r.missing...)
	}
	if r.extra != nil {
		out.extra = make(map[string]json.RawMessage, len(r.extra))
		for k, v := range r.extra {
			out.extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// Extra returns the keys of the decoded JSON that are not record fields.
func (r QuestionRecord) Extra() map[string]json.RawMessage {
	return r.extra
}

// recordFields is QuestionRecord without its methods.
type recordFields QuestionRecord

// MarshalJSON writes the known fields in declaration order, then any extra
// keys kept from decoding, sorted.
func (r QuestionRecord) MarshalJSON() ([]byte, error) {
	known, err := encodeUnescaped(recordFields(r))
	if err != nil {
		return nil, err
	}
	if len(r.extra) == 0 {
		return known, nil
	}

	keys := make([]string, 0, len(r.extra))
	for k := range r.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.Write(known[:len(known)-1])
	for _, k := range keys {
		name, err := encodeUnescaped(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(r.extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeUnescaped marshals v compactly without HTML escaping.
func encodeUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes a record and remembers which required keys were absent.
// An unrecognised type is not a decode error; it is rejected by NewQuestion.
func (r *QuestionRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var rec QuestionRecord
	for _, key := range []string{FieldDescription, FieldType, FieldChoices, FieldAnswerIndex} {
		if v, ok := raw[key]; !ok || isNull(v) {
			rec.missing = append(rec.missing, key)
		}
	}

	if v, ok := raw[FieldDescription]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &rec.Description); err != nil {
			return err
		}
	}
	if v, ok := raw[FieldType]; ok && !isNull(v) {
		rec.Type, rec.rawType = decodeQuestionType(v)
	}
	if v, ok := raw[FieldChoices]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &rec.Choices); err != nil {
			return err
		}
	}
	if v, ok := raw[FieldAnswerIndex]; ok && !isNull(v) {
		if err := json.Unmarshal(v, &rec.AnswerIndex); err != nil {
			return err
		}
	}
	for key, dst := range map[string]**string{
		FieldSolution: &rec.Solution,
		FieldNote:     &rec.Note,
		FieldTag:      &rec.Tag,
	} {
		if v, ok := raw[key]; ok && !isNull(v) {
			var s string
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}
			*dst = &s
		}
	}

	for key, v := range raw {
		switch key {
		case FieldDescription, FieldType, FieldChoices, FieldAnswerIndex, FieldSolution, FieldNote, FieldTag:
			continue
		}
		if rec.extra == nil {
			rec.extra = make(map[string]json.RawMessage)
		}
		rec.extra[key] = append(json.RawMessage(nil), v...)
	}

	*r = rec
	return nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// decodeQuestionType accepts a JSON number or string. Unknown values yield
// QuestionTypeUnknown plus the raw text.
func decodeQuestionType(v json.RawMessage) (QuestionType, string) {
	text := strings.TrimSpace(string(v))
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		text = s
	}
	t, ok := ParseQuestionType(text)
	if !ok {
		return QuestionTypeUnknown, text
	}
	return t, ""
}
