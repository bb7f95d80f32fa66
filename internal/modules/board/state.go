package board

import "crmboard/internal/domain"

// Board is a rendering snapshot: stages in pipeline order and, per stage,
// the ordered lead column. It is a deep copy, safe to serialize while the
// controller keeps mutating its own state.
type Board struct {
	PipelineID   int64                   `json:"pipeline_id"`
	Stages       []domain.Stage          `json:"stages"`
	LeadsByStage map[int64][]domain.Lead `json:"leads_by_stage"`
}

// Temporary stages exist only in board memory until their create call
// succeeds. They are allocated negative ids so they can never collide
// with a persisted row.
func isTempStage(id int64) bool {
	return id < 0
}

// arrayMove removes the element at from and reinserts it at to. Elements
// strictly between the two indices shift by one. Indices must be valid.
func arrayMove(stages []domain.Stage, from, to int) []domain.Stage {
	moved := stages[from]
	rest := append(append([]domain.Stage{}, stages[:from]...), stages[from+1:]...)
	out := append(append([]domain.Stage{}, rest[:to]...), moved)
	return append(out, rest[to:]...)
}

func leadArrayMove(leads []domain.Lead, from, to int) []domain.Lead {
	moved := leads[from]
	rest := append(append([]domain.Lead{}, leads[:from]...), leads[from+1:]...)
	out := append(append([]domain.Lead{}, rest[:to]...), moved)
	return append(out, rest[to:]...)
}

func leadInsert(leads []domain.Lead, at int, l domain.Lead) []domain.Lead {
	out := append(append([]domain.Lead{}, leads[:at]...), l)
	return append(out, leads[at:]...)
}

func leadRemove(leads []domain.Lead, at int) []domain.Lead {
	return append(append([]domain.Lead{}, leads[:at]...), leads[at+1:]...)
}

func cloneStages(stages []domain.Stage) []domain.Stage {
	return append([]domain.Stage{}, stages...)
}

func cloneLeads(leads []domain.Lead) []domain.Lead {
	return append([]domain.Lead{}, leads...)
}

func cloneLeadMap(m map[int64][]domain.Lead) map[int64][]domain.Lead {
	out := make(map[int64][]domain.Lead, len(m))
	for k, v := range m {
		out[k] = cloneLeads(v)
	}
	return out
}
