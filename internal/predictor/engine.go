// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package predictor

import (
	"fmt"
	"hash/fnv"
	"sort"
	"sync"
	"time"
)

// Status is the lifecycle state of a prediction. Transitions are monotonic:
// pending → correct or pending → failed, never back.
type Status string

const (
	StatusPending Status = "pending"
	StatusCorrect Status = "correct"
	StatusFailed  Status = "failed"
)

// predictionTemplate is the literal text sent when a prediction is emitted.
const predictionTemplate = "🔵%d 🔵3K: statut :⏳"

// statusGlyphs maps a verification offset to the glyph substituted into the
// prediction message on success.
var statusGlyphs = map[int]string{
	0: "✅0️⃣",
	1: "✅1️⃣",
	2: "✅2️⃣",
	3: "✅3️⃣",
}

// failureGlyph replaces the hourglass once the verification window closes
// without a success.
const failureGlyph = "⭕⭕"

// maxVerificationOffset is the last game offset still inside the window.
const maxVerificationOffset = 3

// MessageRef is an opaque handle to a sent Telegram message, kept so the
// prediction text can be edited in place later.
type MessageRef struct {
	ChatID    int64
	MessageID int64
}

// IsZero reports whether the ref identifies no message.
func (r MessageRef) IsZero() bool { return r.ChatID == 0 && r.MessageID == 0 }

// Prediction is a forward-looking record that the message for TargetGame
// will contain exactly three suit occurrences in its first section.
type Prediction struct {
	TargetGame  int
	SourceGame  int
	Combination string
	Status      Status
	// VerificationOffset is set when the prediction resolves correct: the
	// distance (0–3) between the resolving game and TargetGame.
	VerificationOffset int
	CreatedAt          time.Time
}

// Emission is the result of a positive prediction evaluation. The caller
// materialises it with CreatePrediction and sends Text to the target chat.
type Emission struct {
	TargetGame  int
	SourceGame  int
	Combination string
	Text        string
}

// Outcome describes the resolution of one prediction: the original
// templated text and the replacement to edit into the sent message.
type Outcome struct {
	TargetGame int
	Status     Status
	Offset     int
	OldText    string
	NewText    string
	// Ref is the stored handle for the outbound prediction message. Zero
	// when the send was never recorded; the caller then falls back to
	// sending NewText as a fresh message.
	Ref MessageRef
}

// PendingEdit is a provisional message filed for later correlation once its
// final edit arrives.
type PendingEdit struct {
	MessageID int64
	Text      string
	FiledAt   time.Time
}

// Engine owns all mutable prediction state. One Engine is constructed at
// process start and shared by the webhook handlers; every evaluate+mutate
// path runs under a single mutex, so an inbound event is processed as one
// atomic step.
type Engine struct {
	mu           sync.Mutex
	predictions  map[int]*Prediction
	processed    map[uint64]struct{}
	sent         map[int]MessageRef
	pendingEdits map[int64]PendingEdit
	now          func() time.Time
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{
		predictions:  make(map[int]*Prediction),
		processed:    make(map[uint64]struct{}),
		sent:         make(map[int]MessageRef),
		pendingEdits: make(map[int64]PendingEdit),
		now:          time.Now,
	}
}

// EvaluateForPrediction decides whether text should trigger a new
// prediction for the following game. The checks short-circuit in order:
// no game tag, duplicate pending target, no card sections, no section with
// exactly three distinct suits, already-processed text.
//
// edited is threaded through for symmetry with verification but does not
// gate the trigger itself; the router only sends finalised edited messages
// down this path.
func (e *Engine) EvaluateForPrediction(text string, edited bool) (Emission, bool) {
	sourceGame, ok := ExtractGameNumber(text)
	if !ok {
		return Emission{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	targetGame := sourceGame + 1
	if p, exists := e.predictions[targetGame]; exists && p.Status == StatusPending {
		return Emission{}, false
	}

	sections := ExtractCardSections(text)
	if len(sections) == 0 {
		return Emission{}, false
	}

	combination := ""
	for _, s := range sections {
		if s.Count() == 3 {
			combination = s.Combination()
			break
		}
	}
	if combination == "" {
		return Emission{}, false
	}

	fp := fingerprint(text)
	if _, seen := e.processed[fp]; seen {
		return Emission{}, false
	}
	e.processed[fp] = struct{}{}

	return Emission{
		TargetGame:  targetGame,
		SourceGame:  sourceGame,
		Combination: combination,
		Text:        fmt.Sprintf(predictionTemplate, targetGame),
	}, true
}

// CreatePrediction inserts a pending prediction for targetGame and returns
// it. A still-pending prediction for the same target is left untouched.
func (e *Engine) CreatePrediction(targetGame, sourceGame int, combination string) *Prediction {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p, exists := e.predictions[targetGame]; exists && p.Status == StatusPending {
		return p
	}
	p := &Prediction{
		TargetGame:  targetGame,
		SourceGame:  sourceGame,
		Combination: combination,
		Status:      StatusPending,
		CreatedAt:   e.now(),
	}
	e.predictions[targetGame] = p
	return p
}

// RecordSent stores the handle of the outbound prediction message so a
// later verification can edit it in place.
func (e *Engine) RecordSent(targetGame int, ref MessageRef) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sent[targetGame] = ref
}

// EvaluateForVerification checks text against all outstanding predictions
// and resolves at most one of them. Candidates are scanned oldest first;
// the first one yielding an outcome stops the scan, so each inbound edit
// maps to at most one outbound message edit.
func (e *Engine) EvaluateForVerification(text string, edited bool) (Outcome, bool) {
	currentGame, ok := ExtractGameNumber(text)
	if !ok {
		return Outcome{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// A prediction can be recorded as sent before (or without) being
	// registered; fold those targets back into the table first.
	for target := range e.sent {
		if _, exists := e.predictions[target]; !exists {
			e.predictions[target] = &Prediction{
				TargetGame: target,
				Status:     StatusPending,
				CreatedAt:  e.now(),
			}
		}
	}

	candidates := make([]int, 0, len(e.predictions))
	for target, p := range e.predictions {
		if p.Status == StatusPending {
			candidates = append(candidates, target)
		}
	}
	sort.Ints(candidates)

	hasCompletion := HasCompletionIndicators(text)

	for _, target := range candidates {
		p := e.predictions[target]
		offset := currentGame - target

		switch {
		case offset >= 0 && offset <= maxVerificationOffset:
			if !edited || !hasCompletion {
				continue
			}
			if CountFirstSectionSuits(text) != 3 {
				// This game did not land the pattern; the prediction stays
				// pending for the rest of its window.
				continue
			}
			p.Status = StatusCorrect
			p.VerificationOffset = offset
			return e.outcomeLocked(p, statusGlyphs[offset], offset), true

		case offset >= maxVerificationOffset+1:
			p.Status = StatusFailed
			return e.outcomeLocked(p, failureGlyph, offset), true

		default:
			// Future game relative to this message; keep scanning.
		}
	}

	return Outcome{}, false
}

func (e *Engine) outcomeLocked(p *Prediction, glyph string, offset int) Outcome {
	return Outcome{
		TargetGame: p.TargetGame,
		Status:     p.Status,
		Offset:     offset,
		OldText:    fmt.Sprintf(predictionTemplate, p.TargetGame),
		NewText:    fmt.Sprintf("🔵%d 🔵3K: statut :%s", p.TargetGame, glyph),
		Ref:        e.sent[p.TargetGame],
	}
}

// FilePendingEdit records a provisional message (pending indicators, no
// completion yet) for bookkeeping until its final edit arrives.
func (e *Engine) FilePendingEdit(messageID int64, text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingEdits[messageID] = PendingEdit{
		MessageID: messageID,
		Text:      text,
		FiledAt:   e.now(),
	}
}

// Reset clears all state containers. Used for manual recalibration only.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.predictions = make(map[int]*Prediction)
	e.processed = make(map[uint64]struct{})
	e.sent = make(map[int]MessageRef)
	e.pendingEdits = make(map[int64]PendingEdit)
}

// Snapshot summarises the engine's state for the /stats endpoint and the
// report command.
type Snapshot struct {
	Pending          int `json:"pending" yaml:"pending"`
	Correct          int `json:"correct" yaml:"correct"`
	Failed           int `json:"failed" yaml:"failed"`
	OutstandingSends int `json:"outstanding_sends" yaml:"outstanding_sends"`
	PendingEdits     int `json:"pending_edits" yaml:"pending_edits"`
}

// Snapshot returns current prediction counts by status.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	var s Snapshot
	for _, p := range e.predictions {
		switch p.Status {
		case StatusPending:
			s.Pending++
		case StatusCorrect:
			s.Correct++
		case StatusFailed:
			s.Failed++
		}
	}
	s.OutstandingSends = len(e.sent)
	s.PendingEdits = len(e.pendingEdits)
	return s
}

// fingerprint hashes message text for the dedupe set.
func fingerprint(text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return h.Sum64()
}
