package forge

import (
	"context"
	"fmt"
	"sync"

	"github.com/trigenys/apex-forge/internal/domain"
	"github.com/trigenys/apex-forge/internal/forge"
	"github.com/trigenys/apex-forge/internal/observability"
)

// RefineSession drives the refinement loop of one document. It is a
// single-writer object: while a turn is in flight, further turns are
// rejected with ErrRefineInFlight instead of queued, so the document
// can never interleave two replacements.
type RefineSession struct {
	svc       *Service
	projectID domain.ProjectID
	docType   domain.DocType

	mu      sync.Mutex
	busy    bool
	content string
	history []forge.Turn
}

// OpenRefineSession loads the current asset content and opens a session
// on it. A missing asset opens on empty content: refining from scratch
// is allowed.
func (s *Service) OpenRefineSession(projectID domain.ProjectID, docType domain.DocType) (*RefineSession, error) {
	project, err := s.projectStore.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	return &RefineSession{
		svc:       s,
		projectID: projectID,
		docType:   docType,
		content:   project.GeneratedAssets[docType],
	}, nil
}

// Content returns the session's current document state.
func (r *RefineSession) Content() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content
}

// History returns a copy of the refinement conversation so far.
func (r *RefineSession) History() []forge.Turn {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]forge.Turn(nil), r.history...)
}

type RefineResult struct {
	AssistantMessage string
	Content          string

	// Recovered is set when the structured reply could not be decoded
	// and the document was deliberately left unchanged.
	Recovered bool
}

// Refine runs one refinement turn. The reply always carries the full
// replacement document; a malformed reply keeps the previous content
// and apologizes instead of failing the session. Transport errors
// propagate and leave the session state untouched.
func (r *RefineSession) Refine(ctx context.Context, userMessage string) (*RefineResult, error) {
	r.mu.Lock()
	if r.busy {
		r.mu.Unlock()
		return nil, ErrRefineInFlight
	}
	r.busy = true
	content := r.content
	history := append([]forge.Turn(nil), r.history...)
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.busy = false
		r.mu.Unlock()
	}()

	log := observability.LoggerFromContext(ctx).With(
		"project_id", r.projectID,
		"doc_type", r.docType,
	)

	project, err := r.svc.projectStore.GetProject(r.projectID)
	if err != nil {
		return nil, err
	}

	instruction := forge.RefineInstruction(r.docType, content, userMessage, history, project)

	raw, err := r.svc.gen.GenerateJSON(ctx, instruction, forge.RefineSchema(), domain.GenerateOptions{
		Model: r.svc.flashModel,
	})
	if err != nil {
		log.Error("refine generation failed", "error", err)
		return nil, fmt.Errorf("refine: %w", err)
	}

	result := &RefineResult{}
	decoded, decodeErr := forge.DecodeRefineResponse(raw)
	if decodeErr != nil {
		log.Warn("refine response did not decode, keeping document unchanged", "error", decodeErr)
		result.AssistantMessage = forge.RefineApology
		result.Content = content
		result.Recovered = true
	} else {
		result.AssistantMessage = decoded.AssistantMessage
		result.Content = decoded.UpdatedContent
	}

	r.mu.Lock()
	r.content = result.Content
	r.history = append(r.history,
		forge.Turn{Role: domain.RoleUser, Text: userMessage},
		forge.Turn{Role: domain.RoleAssistant, Text: result.AssistantMessage},
	)
	r.mu.Unlock()

	if !result.Recovered {
		if err := r.svc.projectStore.SaveAsset(r.projectID, r.docType, result.Content); err != nil {
			// The caller still gets the refined content; the next
			// successful turn re-persists the full document.
			log.Error("failed to persist refined asset", "error", err)
		}
	}

	return result, nil
}
