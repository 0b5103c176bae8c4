// Package persist stores the task collection in a string-keyed store behind
// an integrity checksum.
package persist

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf16"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/sandeepkv93/tasklist/internal/model"
)

//go:embed schema/tasks.schema.json
var tasksSchemaJSON string

const tasksSchemaURL = "https://tasklist.local/schema/tasks.schema.json"

var compileTasksSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(tasksSchemaURL, strings.NewReader(tasksSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add tasks schema: %w", err)
	}
	return compiler.Compile(tasksSchemaURL)
})

// record is the stored shape of a task. Timestamps are milliseconds since
// the Unix epoch.
type record struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Completed   bool           `json:"completed"`
	Priority    model.Priority `json:"priority"`
	CreatedAt   int64          `json:"createdAt"`
	DueDate     *int64         `json:"dueDate,omitempty"`
	CompletedAt *int64         `json:"completedAt,omitempty"`
}

// Checksum hashes data the way the stored digest was produced: over UTF-16
// code units, hash = hash*31 + c with signed 32-bit wraparound, seeded at 0.
func Checksum(data string) int32 {
	var hash int32
	for _, c := range utf16.Encode([]rune(data)) {
		hash = hash*31 + int32(c)
	}
	return hash
}

// ChecksumString renders the checksum in the decimal form written to the store.
func ChecksumString(data string) string {
	return strconv.FormatInt(int64(Checksum(data)), 10)
}

// Encode serializes tasks to a JSON array, preserving order. Optional fields
// are omitted when absent.
func Encode(tasks []model.Task) (string, error) {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, toRecord(t))
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Decode parses a stored task array. The payload must satisfy the embedded
// JSON schema, every task must validate and ids must be unique.
func Decode(data string) ([]model.Task, error) {
	schema, err := compileTasksSchema()
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate tasks: %w", err)
	}

	var records []record
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	out := make([]model.Task, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		t := fromRecord(r)
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("task %d: %w: %q", i, model.ErrDuplicateID, t.ID)
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

func toRecord(t model.Task) record {
	r := record{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		Priority:  t.Priority,
		CreatedAt: model.Millis(t.CreatedAt),
	}
	if t.DueDate != nil {
		ms := model.Millis(*t.DueDate)
		r.DueDate = &ms
	}
	if t.CompletedAt != nil {
		ms := model.Millis(*t.CompletedAt)
		r.CompletedAt = &ms
	}
	return r
}

func fromRecord(r record) model.Task {
	t := model.Task{
		ID:        r.ID,
		Title:     r.Title,
		Completed: r.Completed,
		Priority:  r.Priority,
		CreatedAt: model.FromMillis(r.CreatedAt),
	}
	if r.DueDate != nil {
		due := model.FromMillis(*r.DueDate)
		t.DueDate = &due
	}
	if r.CompletedAt != nil {
		done := model.FromMillis(*r.CompletedAt)
		t.CompletedAt = &done
	}
	return t
}
