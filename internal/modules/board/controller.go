package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crmboard/internal/domain"
	"crmboard/internal/modules/realtime"
	"crmboard/internal/repository"
)

type Direction string

const (
	DirectionPrev Direction = "prev"
	DirectionNext Direction = "next"
)

const defaultPersistTimeout = 10 * time.Second

// Controller owns the board state of one open (company, pipeline) view.
// Every mutation applies to memory first, then persists; a failed persist
// rolls the memory back unless a later operation on the same entity has
// already superseded it (last-intent-wins per entity).
type Controller struct {
	companyID  int64
	pipelineID int64

	mu         sync.Mutex
	stages     []domain.Stage
	leads      map[int64][]domain.Lead
	pendingPos map[int64]bool // temp stage ids with a deferred position write
	nextTempID int64
	seq        uint64
	latest     map[string]uint64
	closed     bool

	stageStore StageStore
	leadStore  LeadStore
	events     Broadcaster
	timeout    time.Duration
}

func NewController(companyID, pipelineID int64, stages StageStore, leads LeadStore, events Broadcaster) *Controller {
	return &Controller{
		companyID:  companyID,
		pipelineID: pipelineID,
		leads:      make(map[int64][]domain.Lead),
		pendingPos: make(map[int64]bool),
		nextTempID: -1,
		latest:     make(map[string]uint64),
		stageStore: stages,
		leadStore:  leads,
		events:     events,
		timeout:    defaultPersistTimeout,
	}
}

// Load pulls the stage order and every lead column from the stores.
func (c *Controller) Load(ctx context.Context) error {
	stages, err := c.stageStore.ListByPipeline(ctx, c.companyID, c.pipelineID)
	if err != nil {
		return err
	}

	leads := make(map[int64][]domain.Lead, len(stages))
	for _, st := range stages {
		column, err := c.leadStore.ListByStage(ctx, c.companyID, st.ID)
		if err != nil {
			return err
		}
		leads[st.ID] = column
	}

	c.mu.Lock()
	c.stages = stages
	c.leads = leads
	c.mu.Unlock()
	return nil
}

// Snapshot returns a deep copy for rendering and serialization.
func (c *Controller) Snapshot() Board {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Board{
		PipelineID:   c.pipelineID,
		Stages:       cloneStages(c.stages),
		LeadsByStage: cloneLeadMap(c.leads),
	}
}

func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *Controller) nextSeq(key string) uint64 {
	c.seq++
	c.latest[key] = c.seq
	return c.seq
}

// isCurrent reports whether the operation is still the latest intent for
// the entity. Called under c.mu.
func (c *Controller) isCurrent(key string, seq uint64) bool {
	return !c.closed && c.latest[key] == seq
}

func (c *Controller) persistCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Controller) broadcast(eventType string, payload any) {
	if c.events == nil {
		return
	}
	c.events.Broadcast(c.companyID, realtime.Event{Type: eventType, Payload: payload})
}

// ReorderStages moves the stage at fromIndex to toIndex with array-move
// semantics and renumbers every stage to its new dense index. One position
// write is issued per changed persisted stage; temp stages defer theirs.
func (c *Controller) ReorderStages(ctx context.Context, fromIndex, toIndex int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrBoardClosed
	}
	n := len(c.stages)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		c.mu.Unlock()
		return ErrIndexOutOfRange
	}
	if fromIndex == toIndex {
		c.mu.Unlock()
		return nil
	}

	prev := cloneStages(c.stages)

	c.stages = arrayMove(c.stages, fromIndex, toIndex)
	for i := range c.stages {
		c.stages[i].Position = i
	}

	// positions of stages outside [min,max] did not change
	prevPos := make(map[int64]int, n)
	for i, st := range prev {
		prevPos[st.ID] = i
	}
	var changed []domain.Stage
	for _, st := range c.stages {
		if prevPos[st.ID] != st.Position {
			changed = append(changed, st)
		}
	}

	opSeq := c.nextSeq("stages")
	// payload is captured under the lock; a concurrent reorder must not
	// tear the broadcast board
	reordered := cloneStages(c.stages)
	c.mu.Unlock()

	c.broadcast("stage.reordered", Board{
		PipelineID: c.pipelineID,
		Stages:     reordered,
	})

	pctx, cancel := c.persistCtx(ctx)
	defer cancel()

	for _, st := range changed {
		if isTempStage(st.ID) {
			c.mu.Lock()
			c.pendingPos[st.ID] = true
			c.mu.Unlock()
			continue
		}
		if err := c.stageStore.UpdatePosition(pctx, c.companyID, st.ID, st.Position); err != nil {
			c.rollbackStages(prev, opSeq)
			return fmt.Errorf("persist stage order: %w", err)
		}
	}
	return nil
}

func (c *Controller) rollbackStages(prev []domain.Stage, opSeq uint64) {
	c.mu.Lock()
	if !c.isCurrent("stages", opSeq) {
		// a later reorder owns the state now, leave it alone
		c.mu.Unlock()
		return
	}
	c.stages = prev
	c.mu.Unlock()

	c.broadcast("stage.reorder_failed", Board{
		PipelineID: c.pipelineID,
		Stages:     cloneStages(prev),
	})
}

// MoveLead removes the lead from its source column and inserts it at
// toIndex of the destination column. Exactly one column loses the lead
// and exactly one (possibly the same) gains it. Every lead whose slot
// changed, neighbours included, is persisted in one transactional write,
// so the confirmed order survives a reload.
func (c *Controller) MoveLead(ctx context.Context, leadID, fromStageID, toStageID int64, toIndex int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrBoardClosed
	}

	if c.stageIndex(fromStageID) < 0 || c.stageIndex(toStageID) < 0 {
		c.mu.Unlock()
		return ErrStageNotFound
	}

	source := c.leads[fromStageID]
	fromIndex := -1
	for i, l := range source {
		if l.ID == leadID {
			fromIndex = i
			break
		}
	}
	if fromIndex < 0 {
		c.mu.Unlock()
		return ErrLeadNotFound
	}

	sameStage := fromStageID == toStageID

	if sameStage {
		// indices address the current list, the lead itself included
		if toIndex < 0 || toIndex >= len(source) {
			if toIndex == len(source) {
				toIndex = len(source) - 1
			} else {
				c.mu.Unlock()
				return ErrIndexOutOfRange
			}
		}
	} else if toIndex < 0 || toIndex > len(c.leads[toStageID]) {
		c.mu.Unlock()
		return ErrIndexOutOfRange
	}

	// remember the lead as it was, and the slots of everyone around it
	prevLead := source[fromIndex]
	prevPos := make(map[int64]int, len(source)+len(c.leads[toStageID]))
	for _, l := range source {
		prevPos[l.ID] = l.Position
	}
	if !sameStage {
		for _, l := range c.leads[toStageID] {
			prevPos[l.ID] = l.Position
		}
	}

	if sameStage {
		c.leads[fromStageID] = leadArrayMove(source, fromIndex, toIndex)
	} else {
		moved := source[fromIndex]
		moved.StageID = toStageID
		c.leads[fromStageID] = leadRemove(source, fromIndex)
		c.leads[toStageID] = leadInsert(c.leads[toStageID], toIndex, moved)
	}
	c.renumber(fromStageID)
	if !sameStage {
		c.renumber(toStageID)
	}

	// moved lead first, then every neighbour whose position shifted
	placements := []repository.LeadPlacement{{LeadID: leadID, StageID: toStageID, Position: toIndex}}
	for _, l := range c.leads[fromStageID] {
		if l.ID != leadID && prevPos[l.ID] != l.Position {
			placements = append(placements, repository.LeadPlacement{LeadID: l.ID, StageID: fromStageID, Position: l.Position})
		}
	}
	if !sameStage {
		for _, l := range c.leads[toStageID] {
			if l.ID != leadID && prevPos[l.ID] != l.Position {
				placements = append(placements, repository.LeadPlacement{LeadID: l.ID, StageID: toStageID, Position: l.Position})
			}
		}
	}

	key := fmt.Sprintf("lead:%d", leadID)
	opSeq := c.nextSeq(key)
	c.mu.Unlock()

	c.broadcast("lead.moved", map[string]any{
		"pipeline_id":   c.pipelineID,
		"lead_id":       leadID,
		"from_stage_id": fromStageID,
		"to_stage_id":   toStageID,
		"to_index":      toIndex,
	})

	pctx, cancel := c.persistCtx(ctx)
	defer cancel()

	if err := c.leadStore.UpdatePlacements(pctx, c.companyID, placements); err != nil {
		c.rollbackLead(prevLead, fromIndex, key, opSeq)
		return fmt.Errorf("persist lead placement: %w", err)
	}
	return nil
}

// rollbackLead puts the one failed lead back where it was. The columns
// are not restored wholesale: a concurrent move of a different lead
// through the same columns may have been confirmed in the meantime and
// must survive this rollback.
func (c *Controller) rollbackLead(prev domain.Lead, fromIndex int, key string, opSeq uint64) {
	c.mu.Lock()
	if !c.isCurrent(key, opSeq) {
		c.mu.Unlock()
		return
	}
	if stageID, idx, ok := c.locateLead(prev.ID); ok {
		c.leads[stageID] = leadRemove(c.leads[stageID], idx)
		c.renumber(stageID)
	}
	column := c.leads[prev.StageID]
	if fromIndex > len(column) {
		fromIndex = len(column)
	}
	c.leads[prev.StageID] = leadInsert(column, fromIndex, prev)
	c.renumber(prev.StageID)
	c.mu.Unlock()

	c.broadcast("lead.move_failed", map[string]any{
		"pipeline_id": c.pipelineID,
		"lead_id":     prev.ID,
		"stage_id":    prev.StageID,
	})
}

// MoveLeadAdjacent moves the lead to the end of the neighbouring stage in
// pipeline order. At the boundary it is a no-op, not an error.
func (c *Controller) MoveLeadAdjacent(ctx context.Context, leadID int64, direction Direction) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrBoardClosed
	}

	currentStageID, _, found := c.locateLead(leadID)
	if !found {
		c.mu.Unlock()
		return ErrLeadNotFound
	}

	idx := c.stageIndex(currentStageID)
	var destIdx int
	switch direction {
	case DirectionPrev:
		destIdx = idx - 1
	case DirectionNext:
		destIdx = idx + 1
	default:
		c.mu.Unlock()
		return fmt.Errorf("unknown direction %q", direction)
	}

	if destIdx < 0 || destIdx >= len(c.stages) {
		c.mu.Unlock()
		return nil
	}

	destStageID := c.stages[destIdx].ID
	destEnd := len(c.leads[destStageID])
	c.mu.Unlock()

	return c.MoveLead(ctx, leadID, currentStageID, destStageID, destEnd)
}

// AddTempStage registers a stage that exists only locally until its create
// call succeeds. It orders like any persisted stage.
func (c *Controller) AddTempStage(name, color string) domain.Stage {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := domain.Stage{
		ID:         c.nextTempID,
		PipelineID: c.pipelineID,
		CompanyID:  c.companyID,
		Name:       name,
		Color:      color,
		Position:   len(c.stages),
	}
	c.nextTempID--
	c.stages = append(c.stages, st)
	c.leads[st.ID] = nil
	return st
}

// ResolveTempStage swaps a temp stage for its persisted row. A reorder
// that touched the temp stage deferred its position write; it is flushed
// here, after the create.
func (c *Controller) ResolveTempStage(ctx context.Context, tempID int64, persisted domain.Stage) error {
	c.mu.Lock()
	idx := c.stageIndex(tempID)
	if idx < 0 {
		c.mu.Unlock()
		return ErrStageNotFound
	}

	persisted.Position = idx
	c.stages[idx] = persisted
	c.leads[persisted.ID] = c.leads[tempID]
	delete(c.leads, tempID)

	deferred := c.pendingPos[tempID]
	delete(c.pendingPos, tempID)
	c.mu.Unlock()

	if deferred {
		pctx, cancel := c.persistCtx(ctx)
		defer cancel()
		if err := c.stageStore.UpdatePosition(pctx, c.companyID, persisted.ID, idx); err != nil {
			return fmt.Errorf("flush deferred stage position: %w", err)
		}
	}
	return nil
}

// callers hold c.mu
func (c *Controller) stageIndex(stageID int64) int {
	for i, st := range c.stages {
		if st.ID == stageID {
			return i
		}
	}
	return -1
}

// callers hold c.mu
func (c *Controller) locateLead(leadID int64) (stageID int64, index int, ok bool) {
	for stageID, column := range c.leads {
		for i, l := range column {
			if l.ID == leadID {
				return stageID, i, true
			}
		}
	}
	return 0, 0, false
}

// callers hold c.mu
func (c *Controller) renumber(stageID int64) {
	column := c.leads[stageID]
	for i := range column {
		column[i].Position = i
	}
}
