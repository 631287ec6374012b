package domain

import (
	"context"
	"errors"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrUserNotFound    = errors.New("user not found")
)

// SchemaType enumerates the value kinds a response schema can require.
type SchemaType string

const (
	SchemaObject  SchemaType = "object"
	SchemaArray   SchemaType = "array"
	SchemaString  SchemaType = "string"
	SchemaNumber  SchemaType = "number"
	SchemaInteger SchemaType = "integer"
	SchemaBoolean SchemaType = "boolean"
)

// ResponseSchema is the shape a structured generation must conform to.
// It mirrors the subset of JSON schema the generation service accepts;
// the llm adapter translates it to the provider's native form.
type ResponseSchema struct {
	Type        SchemaType
	Description string
	Properties  map[string]*ResponseSchema
	Items       *ResponseSchema
	Required    []string
}

// GenerateOptions are per-call sampling knobs. The zero value means
// "use the gateway's defaults".
type GenerateOptions struct {
	Model          string
	Temperature    float32
	ThinkingBudget int32
}

// Generator is the gateway to the generative text service. Each call is
// independent and stateless: no retries, no caching. Transport and
// service failures come back as plain errors; conformance of structured
// output is the caller's problem (validate before trusting).
type Generator interface {
	// GenerateText runs an instruction in free-text mode.
	GenerateText(ctx context.Context, instruction string, opts GenerateOptions) (string, error)

	// GenerateJSON runs an instruction in schema-constrained mode and
	// returns the raw JSON payload.
	GenerateJSON(ctx context.Context, instruction string, schema *ResponseSchema, opts GenerateOptions) ([]byte, error)
}

// ProjectStore persists projects. Update semantics are merge-by-field:
// concurrent writers from different instances resolve last-write-wins
// per field, which is a documented trade-off rather than an accident.
type ProjectStore interface {
	CreateProject(project *Project) error
	GetProject(id ProjectID) (*Project, error)
	ListProjectsByOwner(owner UserID, limit int) ([]*Project, error)
	UpdateProject(project *Project) error

	// SaveAsset merges one generated document under its type key,
	// leaving the rest of the assets map untouched.
	SaveAsset(id ProjectID, doc DocType, content string) error

	// MergePlan replaces the sections present in delta and leaves all
	// other sections untouched.
	MergePlan(id ProjectID, delta PlanData) error
}

// MessageStore persists the mentor conversation, append-only.
type MessageStore interface {
	AppendMessage(msg *ChatMessage) error
	GetMessagesByProject(id ProjectID, limit int) ([]*ChatMessage, error)
}

// UserStore persists entrepreneur profiles. SaveUser merges by field.
type UserStore interface {
	SaveUser(user *UserProfile) error
	GetUser(id UserID) (*UserProfile, error)
}
