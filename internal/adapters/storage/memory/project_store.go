package memory

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/trigenys/apex-forge/internal/domain"
)

// ProjectStore is the in-memory project backend for local mode and
// tests. Writes copy the stored value so callers never share mutable
// state with the store.
type ProjectStore struct {
	mu       sync.RWMutex
	projects map[domain.ProjectID]*domain.Project
}

func NewProjectStore() *ProjectStore {
	return &ProjectStore{
		projects: make(map[domain.ProjectID]*domain.Project),
	}
}

func cloneProject(p *domain.Project) *domain.Project {
	out := *p
	out.Collaborators = append([]domain.CollaboratorProfile(nil), p.Collaborators...)
	out.Plan = p.Plan.Merge(nil)
	out.GeneratedAssets = make(map[domain.DocType]string, len(p.GeneratedAssets))
	for k, v := range p.GeneratedAssets {
		out.GeneratedAssets[k] = v
	}
	return &out
}

func (s *ProjectStore) CreateProject(p *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[p.ID]; exists {
		return errors.New("project already exists")
	}

	s.projects[p.ID] = cloneProject(p)
	return nil
}

func (s *ProjectStore) GetProject(id domain.ProjectID) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (s *ProjectStore) ListProjectsByOwner(owner domain.UserID, limit int) ([]*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Project
	for _, p := range s.projects {
		if p.OwnerID == owner {
			result = append(result, cloneProject(p))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *ProjectStore) UpdateProject(p *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.projects[p.ID]; !exists {
		return domain.ErrProjectNotFound
	}

	s.projects[p.ID] = cloneProject(p)
	return nil
}

func (s *ProjectStore) SaveAsset(id domain.ProjectID, doc domain.DocType, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}

	if p.GeneratedAssets == nil {
		p.GeneratedAssets = make(map[domain.DocType]string)
	}
	p.GeneratedAssets[doc] = content
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *ProjectStore) MergePlan(id domain.ProjectID, delta domain.PlanData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return domain.ErrProjectNotFound
	}

	p.Plan = p.Plan.Merge(delta)
	p.UpdatedAt = time.Now().UTC()
	return nil
}
