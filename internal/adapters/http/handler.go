package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	appforge "github.com/trigenys/apex-forge/internal/app/forge"
	"github.com/trigenys/apex-forge/internal/app/mentor"
	"github.com/trigenys/apex-forge/internal/domain"
)

type Server struct {
	forgeSvc  *appforge.Service
	mentorSvc *mentor.Service

	projectStore domain.ProjectStore
	userStore    domain.UserStore

	// Open refinement sessions, one per (project, doc). The session
	// itself enforces the single-writer rule; this map just keeps it
	// alive between turns.
	refineMu sync.Mutex
	refines  map[string]*appforge.RefineSession

	now func() time.Time
}

func NewServer(
	forgeSvc *appforge.Service,
	mentorSvc *mentor.Service,
	projectStore domain.ProjectStore,
	userStore domain.UserStore,
) http.Handler {
	s := &Server{
		forgeSvc:     forgeSvc,
		mentorSvc:    mentorSvc,
		projectStore: projectStore,
		userStore:    userStore,
		refines:      make(map[string]*appforge.RefineSession),
		now:          time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/users", s.handleUsers)
	mux.HandleFunc("/projects", s.handleProjects)
	mux.HandleFunc("/projects/", s.handleProjectWithID)

	return chainMiddlewares(mux, withLogging, withCORS, withRequestID)
}

// DTOs (request/response)

type upsertUserRequest struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	FullName      string   `json:"full_name,omitempty"`
	Email         string   `json:"email,omitempty"`
	Country       string   `json:"country,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	BusinessName  string   `json:"business_name,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	MainGoal      string   `json:"main_goal,omitempty"`
	Team          string   `json:"team,omitempty"`
	Collaborators []string `json:"collaborators,omitempty"`
}

type createProjectRequest struct {
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`

	Country  string `json:"country,omitempty"`
	Currency string `json:"currency,omitempty"`

	MainGoal        string `json:"main_goal,omitempty"`
	Description     string `json:"description,omitempty"`
	Offer           string `json:"offer,omitempty"`
	Problem         string `json:"problem,omitempty"`
	ICP             string `json:"icp,omitempty"`
	Value           string `json:"value,omitempty"`
	Differentiation string `json:"differentiation,omitempty"`
	RevenueModel    string `json:"revenue_model,omitempty"`
	Pricing         string `json:"pricing,omitempty"`
	Positioning     string `json:"positioning,omitempty"`
	Constraints     string `json:"constraints,omitempty"`
	Proof           string `json:"proof,omitempty"`
	Services        string `json:"services,omitempty"`
	Stack           string `json:"stack,omitempty"`
	Scope           string `json:"scope,omitempty"`
	Timeline        string `json:"timeline,omitempty"`
	Assumptions     string `json:"assumptions,omitempty"`
	Costs           string `json:"costs,omitempty"`
	ClientName      string `json:"client_name,omitempty"`
	ClientContact   string `json:"client_contact,omitempty"`
}

type projectResponse struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`

	Country  string `json:"country,omitempty"`
	Currency string `json:"currency,omitempty"`
	MainGoal string `json:"main_goal,omitempty"`

	AgencyType       string `json:"agency_type,omitempty"`
	RevenueModelType string `json:"revenue_model_type,omitempty"`
	Category         string `json:"category,omitempty"`

	Plan            map[string]sectionResponse `json:"plan,omitempty"`
	GeneratedAssets map[string]string          `json:"generated_assets,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type sectionResponse struct {
	Content    string  `json:"content"`
	Completion float64 `json:"completion"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type sendMessageRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	UserMessage   messageResponse `json:"user_message"`
	MentorMessage messageResponse `json:"mentor_message"`
}

type startConversationRequest struct {
	UserID string `json:"user_id"`
}

type forgeAssetRequest struct {
	AgencyType       string `json:"agency_type,omitempty"`
	RevenueModelType string `json:"revenue_model_type,omitempty"`
	Category         string `json:"category,omitempty"`
}

type forgeAssetResponse struct {
	DocType string `json:"doc_type"`
	Content string `json:"content"`
	Failed  bool   `json:"failed"`
}

type refineRequest struct {
	Message string `json:"message"`
}

type refineResponse struct {
	AssistantMessage string `json:"assistant_message"`
	Content          string `json:"content"`
	Recovered        bool   `json:"recovered,omitempty"`
}

type contractRequest struct {
	Label string `json:"label"`
}

type contractResponse struct {
	Content string `json:"content"`
}

type simulateRequest struct {
	Scenario string `json:"scenario"`
}

type sculptRequest struct {
	Name      string   `json:"name"`
	Role      string   `json:"role,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Expertise []string `json:"expertise,omitempty"`
}

// Routing

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleUpsertUser(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateProject(w, r)
	case http.MethodGet:
		s.handleListProjects(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /projects/{id}
// /projects/{id}/conversation
// /projects/{id}/messages
// /projects/{id}/plan
// /projects/{id}/assets/{docType}/forge
// /projects/{id}/assets/{docType}/refine
// /projects/{id}/contracts
// /projects/{id}/simulate
// /projects/{id}/collaborators/sculpt
func (s *Server) handleProjectWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/projects/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	id := domain.ProjectID(parts[0])

	switch {
	case len(parts) == 1:
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleGetProject(w, r, id)

	case len(parts) == 2 && parts[1] == "conversation":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleStartConversation(w, r, id)

	case len(parts) == 2 && parts[1] == "messages":
		switch r.Method {
		case http.MethodPost:
			s.handleSendMessage(w, r, id)
		case http.MethodGet:
			s.handleGetMessages(w, r, id)
		default:
			methodNotAllowed(w)
		}

	case len(parts) == 2 && parts[1] == "plan":
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		s.handleGetPlan(w, r, id)

	case len(parts) == 3 && parts[1] == "assets":
		// trailing action is required, handled below
		http.NotFound(w, r)

	case len(parts) == 4 && parts[1] == "assets" && parts[3] == "forge":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleForgeAsset(w, r, id, domain.DocType(parts[2]))

	case len(parts) == 4 && parts[1] == "assets" && parts[3] == "refine":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleRefineAsset(w, r, id, domain.DocType(parts[2]))

	case len(parts) == 2 && parts[1] == "contracts":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleForgeContract(w, r, id)

	case len(parts) == 2 && parts[1] == "simulate":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleSimulate(w, r, id)

	case len(parts) == 3 && parts[1] == "collaborators" && parts[2] == "sculpt":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleSculpt(w, r, id)

	default:
		http.NotFound(w, r)
	}
}

// Concrete handlers

func (s *Server) handleUpsertUser(w http.ResponseWriter, r *http.Request) {
	var req upsertUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.ID == "" {
		badRequest(w, "id is required")
		return
	}

	now := s.now()
	user := &domain.UserProfile{
		ID:            domain.UserID(req.ID),
		Name:          req.Name,
		FullName:      req.FullName,
		Email:         req.Email,
		Country:       req.Country,
		Currency:      req.Currency,
		BusinessName:  req.BusinessName,
		Industry:      req.Industry,
		MainGoal:      req.MainGoal,
		Team:          req.Team,
		Collaborators: req.Collaborators,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.userStore.SaveUser(user); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": req.ID})
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.OwnerID == "" {
		badRequest(w, "owner_id is required")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		badRequest(w, "name is required")
		return
	}

	now := s.now()
	project := &domain.Project{
		ID:      domain.ProjectID(uuid.NewString()),
		OwnerID: domain.UserID(req.OwnerID),
		Name:    req.Name,

		Country:  req.Country,
		Currency: req.Currency,

		MainGoal:        req.MainGoal,
		Description:     req.Description,
		Offer:           req.Offer,
		Problem:         req.Problem,
		ICP:             req.ICP,
		Value:           req.Value,
		Differentiation: req.Differentiation,
		RevenueModel:    req.RevenueModel,
		Pricing:         req.Pricing,
		Positioning:     req.Positioning,
		Constraints:     req.Constraints,
		Proof:           req.Proof,
		Services:        req.Services,
		Stack:           req.Stack,
		Scope:           req.Scope,
		Timeline:        req.Timeline,
		Assumptions:     req.Assumptions,
		Costs:           req.Costs,
		ClientName:      req.ClientName,
		ClientContact:   req.ClientContact,

		Plan:            domain.PlanData{},
		GeneratedAssets: map[domain.DocType]string{},

		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.projectStore.CreateProject(project); err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProjectResponse(project))
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		badRequest(w, "owner query parameter is required")
		return
	}

	projects, err := s.projectStore.ListProjectsByOwner(domain.UserID(owner), 50)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": out})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request, id domain.ProjectID) {
	project, err := s.projectStore.GetProject(id)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectResponse(project))
}

func (s *Server) handleStartConversation(w http.ResponseWriter, r *http.Request, id domain.ProjectID) {
	var req startConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}

	out, err := s.mentorSvc.StartConversation(r.Context(), mentor.StartConversationInput{
		ProjectID: id,
		UserID:    domain.UserID(req.UserID),
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"opening": toMessageResponse(out.Opening),
	})
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, id domain.ProjectID) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "text is required")
		return
	}

	out, err := s.mentorSvc.SendMessage(r.Context(), mentor.SendMessageInput{
		ProjectID: id,
		UserID:    domain.UserID(req.UserID),
		Text:      req.Text,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sendMessageResponse{
		UserMessage:   toMessageResponse(out.UserMessage),
		MentorMessage: toMessageResponse(out.MentorMessage),
	})
}

func (s *Server) handleGetMessages(w http.ResponseWriter, r *http.Request, id domain.ProjectID) {
	msgs, err := s.mentorSvc.GetHistory(r.Context(), id, 0)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": out})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request, id domain.ProjectID) {
	project, err := s.projectStore.GetProject(id)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	plan := make(map[string]sectionResponse, len(project.Plan))
	for section, progress := range project.Plan {
		plan[string(section)] = sectionResponse{Content: progress.Content, Completion: progress.Completion}
	}
	writeJSON(w, http.StatusOK, map[string]any{"plan": plan})
}

func (s *Server) handleForgeAsset(w http.ResponseWriter, r *http.Request, id domain.ProjectID, docType domain.DocType) {
	var req forgeAssetRequest
	if r.Body != nil {
		// Empty body is fine: all fields are optional overrides.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	out, err := s.forgeSvc.ForgeAsset(r.Context(), appforge.ForgeAssetInput{
		ProjectID:        id,
		DocType:          docType,
		AgencyOverride:   domain.AgencyType(req.AgencyType),
		RevenueOverride:  domain.RevenueModelType(req.RevenueModelType),
		CategoryOverride: domain.ProjectCategory(req.Category),
	})
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	// The forge replaced the stored document; an open refine session
	// would keep refining the pre-forge content, so drop it.
	s.evictRefineSession(id, docType)

	writeJSON(w, http.StatusOK, forgeAssetResponse{
		DocType: string(docType),
		Content: out.Content,
		Failed:  out.Failed,
	})
}

func (s *Server) handleRefineAsset(w http.ResponseWriter, r *http.Request, id domain.ProjectID, docType domain.DocType) {
	var req refineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		badRequest(w, "message is required")
		return
	}

	session, err := s.refineSession(id, docType)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	out, err := session.Refine(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, appforge.ErrRefineInFlight) {
			writeJSON(w, http.StatusConflict, map[string]string{
				"error": appforge.ErrRefineInFlight.Error(),
			})
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, refineResponse{
		AssistantMessage: out.AssistantMessage,
		Content:          out.Content,
		Recovered:        out.Recovered,
	})
}

func (s *Server) handleForgeContract(w http.ResponseWriter, r *http.Request, id domain.ProjectID) {
	var req contractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Label) == "" {
		badRequest(w, "label is required")
		return
	}

	content, err := s.forgeSvc.ForgeContract(r.Context(), id, req.Label)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contractResponse{Content: content})
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request, id domain.ProjectID) {
	var req simulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Scenario) == "" {
		badRequest(w, "scenario is required")
		return
	}

	points, err := s.forgeSvc.SimulateFinancials(r.Context(), id, req.Scenario)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"points": points})
}

func (s *Server) handleSculpt(w http.ResponseWriter, r *http.Request, id domain.ProjectID) {
	var req sculptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		badRequest(w, "name is required")
		return
	}

	out, err := s.forgeSvc.SculptCollaborator(r.Context(), appforge.SculptInput{
		ProjectID: id,
		Collaborator: domain.CollaboratorProfile{
			Name:      req.Name,
			Role:      req.Role,
			Bio:       req.Bio,
			Expertise: req.Expertise,
		},
	})
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func refineKey(id domain.ProjectID, docType domain.DocType) string {
	return string(id) + "/" + string(docType)
}

func (s *Server) refineSession(id domain.ProjectID, docType domain.DocType) (*appforge.RefineSession, error) {
	key := refineKey(id, docType)

	s.refineMu.Lock()
	defer s.refineMu.Unlock()

	if session, ok := s.refines[key]; ok {
		return session, nil
	}
	session, err := s.forgeSvc.OpenRefineSession(id, docType)
	if err != nil {
		return nil, err
	}
	s.refines[key] = session
	return session, nil
}

func (s *Server) evictRefineSession(id domain.ProjectID, docType domain.DocType) {
	s.refineMu.Lock()
	delete(s.refines, refineKey(id, docType))
	s.refineMu.Unlock()
}

// Helpers

func toProjectResponse(p *domain.Project) projectResponse {
	plan := make(map[string]sectionResponse, len(p.Plan))
	for section, progress := range p.Plan {
		plan[string(section)] = sectionResponse{Content: progress.Content, Completion: progress.Completion}
	}

	assets := make(map[string]string, len(p.GeneratedAssets))
	for docType, content := range p.GeneratedAssets {
		assets[string(docType)] = content
	}

	return projectResponse{
		ID:      string(p.ID),
		OwnerID: string(p.OwnerID),
		Name:    p.Name,

		Country:  p.Country,
		Currency: p.Currency,
		MainGoal: p.MainGoal,

		AgencyType:       string(p.AgencyType),
		RevenueModelType: string(p.RevenueModelType),
		Category:         string(p.Category),

		Plan:            plan,
		GeneratedAssets: assets,

		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toMessageResponse(m *domain.ChatMessage) messageResponse {
	return messageResponse{
		ID:        string(m.ID),
		ProjectID: string(m.ProjectID),
		Role:      string(m.Role),
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
