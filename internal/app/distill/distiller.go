package distill

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/trigenys/apex-forge/internal/domain"
	"github.com/trigenys/apex-forge/internal/forge"
	"github.com/trigenys/apex-forge/internal/observability"
)

// DefaultDebounce is the quiet period after the last transcript change
// before a distillation pass runs.
const DefaultDebounce = 1500 * time.Millisecond

// Distiller watches the mentor transcript and folds its content into
// the project plan. Passes are debounced per project and never overlap:
// a notification arriving while a pass runs is remembered and triggers
// one follow-up pass when the current one finishes.
type Distiller struct {
	gen          domain.Generator
	projectStore domain.ProjectStore
	messageStore domain.MessageStore
	userStore    domain.UserStore
	logger       *slog.Logger

	model    string
	debounce time.Duration

	mu     sync.Mutex
	timers map[domain.ProjectID]*time.Timer
	state  map[domain.ProjectID]*projectState
}

type projectState struct {
	inProgress bool
	rerun      bool
}

func NewDistiller(
	gen domain.Generator,
	projectStore domain.ProjectStore,
	messageStore domain.MessageStore,
	userStore domain.UserStore,
	model string,
	debounce time.Duration,
) *Distiller {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Distiller{
		gen:          gen,
		projectStore: projectStore,
		messageStore: messageStore,
		userStore:    userStore,
		logger:       observability.Logger(),
		model:        model,
		debounce:     debounce,
		timers:       make(map[domain.ProjectID]*time.Timer),
		state:        make(map[domain.ProjectID]*projectState),
	}
}

// NotifyHistoryChanged arms (or re-arms) the debounce timer for the
// project. Rapid successive changes collapse into a single pass.
func (d *Distiller) NotifyHistoryChanged(projectID domain.ProjectID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[projectID]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(d.debounce, func() {
		d.mu.Lock()
		// Only drop the entry if it is still ours; a re-arm may have
		// replaced it between firing and acquiring the lock.
		if d.timers[projectID] == t {
			delete(d.timers, projectID)
		}
		d.mu.Unlock()
		d.run(projectID)
	})
	d.timers[projectID] = t
}

// run guards against overlap, then distills. A notification that fires
// mid-pass sets rerun so fresh content is not lost.
func (d *Distiller) run(projectID domain.ProjectID) {
	d.mu.Lock()
	st, ok := d.state[projectID]
	if !ok {
		st = &projectState{}
		d.state[projectID] = st
	}
	if st.inProgress {
		st.rerun = true
		d.mu.Unlock()
		return
	}
	st.inProgress = true
	d.mu.Unlock()

	if err := d.DistillNow(context.Background(), projectID); err != nil {
		d.logger.Error("distillation pass failed", "project_id", projectID, "error", err)
	}

	d.mu.Lock()
	st.inProgress = false
	again := st.rerun
	st.rerun = false
	d.mu.Unlock()

	if again {
		d.NotifyHistoryChanged(projectID)
	}
}

// DistillNow runs one synchronous distillation pass. It skips when the
// last transcript message is from the user: distilling a question the
// mentor has not answered yet only churns the plan. A payload that does
// not decode merges nothing.
func (d *Distiller) DistillNow(ctx context.Context, projectID domain.ProjectID) error {
	log := observability.LoggerFromContext(ctx).With("project_id", projectID)

	history, err := d.messageStore.GetMessagesByProject(projectID, 0)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return nil
	}
	if history[len(history)-1].Role == domain.RoleUser {
		log.Debug("skipping distillation, last message is from the user")
		return nil
	}

	project, err := d.projectStore.GetProject(projectID)
	if err != nil {
		return err
	}
	user, err := d.userStore.GetUser(project.OwnerID)
	if err != nil {
		user = &domain.UserProfile{ID: project.OwnerID}
	}

	raw, err := d.gen.GenerateJSON(ctx, forge.DistillInstruction(history, user), forge.PlanSchema(), domain.GenerateOptions{
		Model: d.model,
	})
	if err != nil {
		return fmt.Errorf("distill: %w", err)
	}

	delta, err := forge.DecodePlan(raw)
	if err != nil {
		log.Warn("distillation payload did not decode, merging nothing", "error", err)
		return nil
	}
	if len(delta) == 0 {
		return nil
	}

	if err := d.projectStore.MergePlan(projectID, delta); err != nil {
		return fmt.Errorf("merge plan: %w", err)
	}

	log.Info("plan distilled", "sections", len(delta))
	return nil
}

// Stop cancels all pending timers. In-flight passes finish on their
// own.
func (d *Distiller) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for id, t := range d.timers {
		t.Stop()
		delete(d.timers, id)
	}
}
