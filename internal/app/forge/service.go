package forge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/trigenys/apex-forge/internal/domain"
	"github.com/trigenys/apex-forge/internal/forge"
	"github.com/trigenys/apex-forge/internal/observability"
)

// ErrRefineInFlight is returned when a refinement is requested while
// another one is still running on the same session.
var ErrRefineInFlight = errors.New("a refinement is already in progress for this document")

// forgeFailurePlaceholder is stored when the initial forge call fails,
// so the asset slot exists and refinement can recover it later.
const forgeFailurePlaceholder = "## GENERATION FAILED\n- The document could not be generated. Use the refinement chat to retry."

// Service forges, refines and persists blueprint documents.
type Service struct {
	gen          domain.Generator
	projectStore domain.ProjectStore
	messageStore domain.MessageStore
	userStore    domain.UserStore
	registry     *forge.Registry
	now          func() time.Time

	// Model routing: long-form forging on the pro model, interactive
	// calls on the flash model.
	proModel   string
	flashModel string
}

func NewService(
	gen domain.Generator,
	projectStore domain.ProjectStore,
	messageStore domain.MessageStore,
	userStore domain.UserStore,
	registry *forge.Registry,
	proModel, flashModel string,
) *Service {
	return &Service{
		gen:          gen,
		projectStore: projectStore,
		messageStore: messageStore,
		userStore:    userStore,
		registry:     registry,
		now:          time.Now,
		proModel:     proModel,
		flashModel:   flashModel,
	}
}

type ForgeAssetInput struct {
	ProjectID domain.ProjectID
	DocType   domain.DocType

	AgencyOverride   domain.AgencyType
	RevenueOverride  domain.RevenueModelType
	CategoryOverride domain.ProjectCategory
}

type ForgeAssetOutput struct {
	Content string

	// Failed is set when the placeholder was stored instead of a real
	// document.
	Failed bool
}

// ForgeAsset generates a blueprint document and persists it under its
// type key. A generation failure stores the placeholder instead of
// leaving the slot empty; a persistence failure after a successful
// generation is logged but does not discard the content.
func (s *Service) ForgeAsset(ctx context.Context, in ForgeAssetInput) (*ForgeAssetOutput, error) {
	log := observability.LoggerFromContext(ctx).With(
		"project_id", in.ProjectID,
		"doc_type", in.DocType,
	)

	project, err := s.projectStore.GetProject(in.ProjectID)
	if err != nil {
		return nil, err
	}
	user, history, err := s.loadContext(project)
	if err != nil {
		return nil, err
	}

	instruction := s.registry.Build(in.DocType, forge.BuildInput{
		Project:          project,
		User:             user,
		History:          history,
		AgencyOverride:   in.AgencyOverride,
		RevenueOverride:  in.RevenueOverride,
		CategoryOverride: in.CategoryOverride,
	})

	content, genErr := s.gen.GenerateText(ctx, instruction, domain.GenerateOptions{
		Model:          s.proModel,
		Temperature:    0.2,
		ThinkingBudget: 4000,
	})
	failed := false
	if genErr != nil {
		log.Error("forge generation failed", "error", genErr)
		content = forgeFailurePlaceholder
		failed = true
	}

	if err := s.projectStore.SaveAsset(in.ProjectID, in.DocType, content); err != nil {
		log.Error("failed to persist forged asset", "error", err)
		if failed {
			return nil, fmt.Errorf("forge asset: %w", genErr)
		}
		return nil, fmt.Errorf("persist asset: %w", err)
	}

	log.Info("asset forged", "failed", failed)
	return &ForgeAssetOutput{Content: content, Failed: failed}, nil
}

// ForgeContract generates a formal legal document from a raw label and
// the mentor transcript. The result is returned without being stored
// under a catalog key; contracts outside the catalog are the caller's
// to keep.
func (s *Service) ForgeContract(ctx context.Context, projectID domain.ProjectID, label string) (string, error) {
	log := observability.LoggerFromContext(ctx).With("project_id", projectID, "label", label)

	project, err := s.projectStore.GetProject(projectID)
	if err != nil {
		return "", err
	}
	user, history, err := s.loadContext(project)
	if err != nil {
		return "", err
	}

	instruction := forge.LegalInstruction(label, history, user, project.AgencyType)

	content, err := s.gen.GenerateText(ctx, instruction, domain.GenerateOptions{
		Model:          s.proModel,
		Temperature:    0.1,
		ThinkingBudget: 8000,
	})
	if err != nil {
		log.Error("contract generation failed", "error", err)
		return "", fmt.Errorf("forge contract: %w", err)
	}
	return content, nil
}

type SculptInput struct {
	ProjectID    domain.ProjectID
	Collaborator domain.CollaboratorProfile
}

// SculptCollaborator sharpens a collaborator profile. A decode failure
// returns the original profile untouched.
func (s *Service) SculptCollaborator(ctx context.Context, in SculptInput) (*domain.CollaboratorProfile, error) {
	log := observability.LoggerFromContext(ctx).With("project_id", in.ProjectID, "collaborator", in.Collaborator.Name)

	project, err := s.projectStore.GetProject(in.ProjectID)
	if err != nil {
		return nil, err
	}

	raw, err := s.gen.GenerateJSON(ctx, forge.SculptInstruction(&in.Collaborator, project), forge.SculptSchema(), domain.GenerateOptions{
		Model: s.flashModel,
	})
	if err != nil {
		return nil, fmt.Errorf("sculpt collaborator: %w", err)
	}

	sculpted, err := forge.DecodeSculptedProfile(raw)
	if err != nil {
		log.Warn("sculpt response did not decode, keeping original", "error", err)
		out := in.Collaborator
		return &out, nil
	}

	out := in.Collaborator
	out.Role = sculpted.Role
	out.Bio = sculpted.Bio
	out.Expertise = sculpted.Expertise
	return &out, nil
}

// SimulateFinancials projects a 24-month trajectory for a free-text
// scenario.
func (s *Service) SimulateFinancials(ctx context.Context, projectID domain.ProjectID, scenario string) ([]domain.SimulationPoint, error) {
	project, err := s.projectStore.GetProject(projectID)
	if err != nil {
		return nil, err
	}

	raw, err := s.gen.GenerateJSON(ctx, forge.SimulationInstruction(scenario, project.Country), forge.SimulationSchema(), domain.GenerateOptions{
		Model: s.flashModel,
	})
	if err != nil {
		return nil, fmt.Errorf("simulate financials: %w", err)
	}

	points, err := forge.DecodeSimulation(raw)
	if err != nil {
		return nil, fmt.Errorf("simulate financials: %w", err)
	}
	return points, nil
}

func (s *Service) loadContext(project *domain.Project) (*domain.UserProfile, []*domain.ChatMessage, error) {
	history, err := s.messageStore.GetMessagesByProject(project.ID, 0)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userStore.GetUser(project.OwnerID)
	if errors.Is(err, domain.ErrUserNotFound) {
		user = s.userFromProject(project)
	} else if err != nil {
		return nil, nil, err
	}
	return user, history, nil
}

// userFromProject builds the profile view the builders consume when the
// owner has no stored profile yet.
func (s *Service) userFromProject(project *domain.Project) *domain.UserProfile {
	names := make([]string, 0, len(project.Collaborators))
	for _, c := range project.Collaborators {
		names = append(names, c.Name)
	}
	return &domain.UserProfile{
		ID:            project.OwnerID,
		Country:       project.Country,
		Currency:      project.Currency,
		BusinessName:  project.Name,
		MainGoal:      project.MainGoal,
		Collaborators: names,
	}
}
