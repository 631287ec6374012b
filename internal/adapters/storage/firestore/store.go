package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/trigenys/apex-forge/internal/domain"
)

// Store implements the project, message, and user ports on Firestore.
// Projects live in "projects", users in "users", and the mentor
// transcript in a "messages" subcollection under each project. All
// updates are merge-by-field Sets: concurrent writers resolve
// last-write-wins per field.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore store for the given project.
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) projectsCol() *firestore.CollectionRef {
	return s.client.Collection("projects")
}

func (s *Store) projectDoc(id domain.ProjectID) *firestore.DocumentRef {
	return s.projectsCol().Doc(string(id))
}

func (s *Store) messagesCol(projectID domain.ProjectID) *firestore.CollectionRef {
	return s.projectDoc(projectID).Collection("messages")
}

func (s *Store) usersCol() *firestore.CollectionRef {
	return s.client.Collection("users")
}

type collaboratorDoc struct {
	Name      string   `firestore:"name"`
	Role      string   `firestore:"role"`
	Bio       string   `firestore:"bio"`
	Expertise []string `firestore:"expertise"`
}

type sectionDoc struct {
	Content    string  `firestore:"content"`
	Completion float64 `firestore:"completion"`
}

type projectDoc struct {
	OwnerID  string `firestore:"owner_id"`
	Name     string `firestore:"name"`
	Country  string `firestore:"country"`
	Currency string `firestore:"currency"`

	MainGoal        string `firestore:"main_goal"`
	Description     string `firestore:"description"`
	Offer           string `firestore:"offer"`
	Problem         string `firestore:"problem"`
	ICP             string `firestore:"icp"`
	Value           string `firestore:"value"`
	Differentiation string `firestore:"differentiation"`
	RevenueModel    string `firestore:"revenue_model"`
	Pricing         string `firestore:"pricing"`
	Positioning     string `firestore:"positioning"`
	Constraints     string `firestore:"constraints"`
	Proof           string `firestore:"proof"`
	Services        string `firestore:"services"`
	Stack           string `firestore:"stack"`
	Scope           string `firestore:"scope"`
	Timeline        string `firestore:"timeline"`
	Assumptions     string `firestore:"assumptions"`
	Costs           string `firestore:"costs"`
	ClientName      string `firestore:"client_name"`
	ClientContact   string `firestore:"client_contact"`

	AgencyType       string `firestore:"agency_type"`
	RevenueModelType string `firestore:"revenue_model_type"`
	Category         string `firestore:"category"`

	Collaborators []collaboratorDoc     `firestore:"collaborators"`
	Plan          map[string]sectionDoc `firestore:"plan"`
	Assets        map[string]string     `firestore:"generated_assets"`

	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type messageDoc struct {
	ProjectID string    `firestore:"project_id"`
	Role      string    `firestore:"role"`
	Text      string    `firestore:"text"`
	CreatedAt time.Time `firestore:"created_at"`
	Citations []string  `firestore:"citations"`
}

type userDoc struct {
	Name          string    `firestore:"name"`
	FullName      string    `firestore:"full_name"`
	Email         string    `firestore:"email"`
	Country       string    `firestore:"country"`
	Currency      string    `firestore:"currency"`
	BusinessName  string    `firestore:"business_name"`
	Industry      string    `firestore:"industry"`
	MainGoal      string    `firestore:"main_goal"`
	Team          string    `firestore:"team"`
	Collaborators []string  `firestore:"collaborators"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

func toProjectDoc(p *domain.Project) projectDoc {
	collabs := make([]collaboratorDoc, 0, len(p.Collaborators))
	for _, c := range p.Collaborators {
		collabs = append(collabs, collaboratorDoc{
			Name: c.Name, Role: c.Role, Bio: c.Bio, Expertise: c.Expertise,
		})
	}

	plan := make(map[string]sectionDoc, len(p.Plan))
	for section, progress := range p.Plan {
		plan[string(section)] = sectionDoc{Content: progress.Content, Completion: progress.Completion}
	}

	assets := make(map[string]string, len(p.GeneratedAssets))
	for doc, content := range p.GeneratedAssets {
		assets[string(doc)] = content
	}

	return projectDoc{
		OwnerID:  string(p.OwnerID),
		Name:     p.Name,
		Country:  p.Country,
		Currency: p.Currency,

		MainGoal:        p.MainGoal,
		Description:     p.Description,
		Offer:           p.Offer,
		Problem:         p.Problem,
		ICP:             p.ICP,
		Value:           p.Value,
		Differentiation: p.Differentiation,
		RevenueModel:    p.RevenueModel,
		Pricing:         p.Pricing,
		Positioning:     p.Positioning,
		Constraints:     p.Constraints,
		Proof:           p.Proof,
		Services:        p.Services,
		Stack:           p.Stack,
		Scope:           p.Scope,
		Timeline:        p.Timeline,
		Assumptions:     p.Assumptions,
		Costs:           p.Costs,
		ClientName:      p.ClientName,
		ClientContact:   p.ClientContact,

		AgencyType:       string(p.AgencyType),
		RevenueModelType: string(p.RevenueModelType),
		Category:         string(p.Category),

		Collaborators: collabs,
		Plan:          plan,
		Assets:        assets,

		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromProjectDoc(id domain.ProjectID, doc projectDoc) *domain.Project {
	collabs := make([]domain.CollaboratorProfile, 0, len(doc.Collaborators))
	for _, c := range doc.Collaborators {
		collabs = append(collabs, domain.CollaboratorProfile{
			Name: c.Name, Role: c.Role, Bio: c.Bio, Expertise: c.Expertise,
		})
	}

	plan := make(domain.PlanData, len(doc.Plan))
	for section, progress := range doc.Plan {
		plan[domain.PlanSection(section)] = domain.SectionProgress{
			Content: progress.Content, Completion: progress.Completion,
		}
	}

	assets := make(map[domain.DocType]string, len(doc.Assets))
	for docType, content := range doc.Assets {
		assets[domain.DocType(docType)] = content
	}

	return &domain.Project{
		ID:      id,
		OwnerID: domain.UserID(doc.OwnerID),
		Name:    doc.Name,

		Country:  doc.Country,
		Currency: doc.Currency,

		MainGoal:        doc.MainGoal,
		Description:     doc.Description,
		Offer:           doc.Offer,
		Problem:         doc.Problem,
		ICP:             doc.ICP,
		Value:           doc.Value,
		Differentiation: doc.Differentiation,
		RevenueModel:    doc.RevenueModel,
		Pricing:         doc.Pricing,
		Positioning:     doc.Positioning,
		Constraints:     doc.Constraints,
		Proof:           doc.Proof,
		Services:        doc.Services,
		Stack:           doc.Stack,
		Scope:           doc.Scope,
		Timeline:        doc.Timeline,
		Assumptions:     doc.Assumptions,
		Costs:           doc.Costs,
		ClientName:      doc.ClientName,
		ClientContact:   doc.ClientContact,

		AgencyType:       domain.AgencyType(doc.AgencyType),
		RevenueModelType: domain.RevenueModelType(doc.RevenueModelType),
		Category:         domain.ProjectCategory(doc.Category),

		Collaborators: collabs,
		Plan:          plan,
		GeneratedAssets: assets,

		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

// ProjectStore implementation

func (s *Store) CreateProject(p *domain.Project) error {
	ctx := context.Background()

	if _, err := s.projectDoc(p.ID).Create(ctx, toProjectDoc(p)); err != nil {
		return fmt.Errorf("firestore CreateProject: %w", err)
	}
	return nil
}

func (s *Store) GetProject(id domain.ProjectID) (*domain.Project, error) {
	ctx := context.Background()

	snap, err := s.projectDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("firestore GetProject: %w", err)
	}

	var doc projectDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetProject decode: %w", err)
	}
	return fromProjectDoc(id, doc), nil
}

func (s *Store) ListProjectsByOwner(owner domain.UserID, limit int) ([]*domain.Project, error) {
	ctx := context.Background()

	q := s.projectsCol().Where("owner_id", "==", string(owner)).OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.Project
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore ListProjectsByOwner: %w", err)
		}

		var doc projectDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode projectDoc: %w", err)
		}
		out = append(out, fromProjectDoc(domain.ProjectID(snap.Ref.ID), doc))
	}
	return out, nil
}

func (s *Store) UpdateProject(p *domain.Project) error {
	ctx := context.Background()

	data, err := sanitizeMap(structToMap(toProjectDoc(p)))
	if err != nil {
		return fmt.Errorf("firestore UpdateProject sanitize: %w", err)
	}

	if _, err := s.projectDoc(p.ID).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore UpdateProject: %w", err)
	}
	return nil
}

// SaveAsset merges a single generated document under its type key. The
// nested-map write touches only that one asset field.
func (s *Store) SaveAsset(id domain.ProjectID, doc domain.DocType, content string) error {
	ctx := context.Background()

	data := map[string]interface{}{
		"generated_assets": map[string]interface{}{
			string(doc): content,
		},
		"updated_at": time.Now().UTC(),
	}

	if _, err := s.projectDoc(id).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore SaveAsset: %w", err)
	}
	return nil
}

// MergePlan replaces the sections present in delta and leaves all other
// sections untouched.
func (s *Store) MergePlan(id domain.ProjectID, delta domain.PlanData) error {
	ctx := context.Background()

	sections := make(map[string]interface{}, len(delta))
	for section, progress := range delta {
		sections[string(section)] = map[string]interface{}{
			"content":    progress.Content,
			"completion": progress.Completion,
		}
	}

	data := map[string]interface{}{
		"plan":       sections,
		"updated_at": time.Now().UTC(),
	}

	if _, err := s.projectDoc(id).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore MergePlan: %w", err)
	}
	return nil
}

// MessageStore implementation

func (s *Store) AppendMessage(msg *domain.ChatMessage) error {
	ctx := context.Background()

	doc := messageDoc{
		ProjectID: string(msg.ProjectID),
		Role:      string(msg.Role),
		Text:      msg.Text,
		CreatedAt: msg.CreatedAt,
		Citations: msg.Citations,
	}

	if _, err := s.messagesCol(msg.ProjectID).Doc(string(msg.ID)).Set(ctx, doc); err != nil {
		return fmt.Errorf("firestore AppendMessage: %w", err)
	}
	return nil
}

func (s *Store) GetMessagesByProject(id domain.ProjectID, limit int) ([]*domain.ChatMessage, error) {
	ctx := context.Background()

	q := s.messagesCol(id).OrderBy("created_at", firestore.Asc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []*domain.ChatMessage
	for {
		snap, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, fmt.Errorf("firestore GetMessagesByProject: %w", err)
		}

		var doc messageDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode messageDoc: %w", err)
		}

		out = append(out, &domain.ChatMessage{
			ID:        domain.MessageID(snap.Ref.ID),
			ProjectID: id,
			Role:      domain.Role(doc.Role),
			Text:      doc.Text,
			CreatedAt: doc.CreatedAt,
			Citations: doc.Citations,
		})
	}
	return out, nil
}

// UserStore implementation

func (s *Store) SaveUser(u *domain.UserProfile) error {
	ctx := context.Background()

	doc := userDoc{
		Name:          u.Name,
		FullName:      u.FullName,
		Email:         u.Email,
		Country:       u.Country,
		Currency:      u.Currency,
		BusinessName:  u.BusinessName,
		Industry:      u.Industry,
		MainGoal:      u.MainGoal,
		Team:          u.Team,
		Collaborators: u.Collaborators,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}

	data, err := sanitizeMap(structToMap(doc))
	if err != nil {
		return fmt.Errorf("firestore SaveUser sanitize: %w", err)
	}

	if _, err := s.usersCol().Doc(string(u.ID)).Set(ctx, data, firestore.MergeAll); err != nil {
		return fmt.Errorf("firestore SaveUser: %w", err)
	}
	return nil
}

func (s *Store) GetUser(id domain.UserID) (*domain.UserProfile, error) {
	ctx := context.Background()

	snap, err := s.usersCol().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("firestore GetUser: %w", err)
	}

	var doc userDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("firestore GetUser decode: %w", err)
	}

	return &domain.UserProfile{
		ID:            id,
		Name:          doc.Name,
		FullName:      doc.FullName,
		Email:         doc.Email,
		Country:       doc.Country,
		Currency:      doc.Currency,
		BusinessName:  doc.BusinessName,
		Industry:      doc.Industry,
		MainGoal:      doc.MainGoal,
		Team:          doc.Team,
		Collaborators: doc.Collaborators,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}
