// Package pipeline orchestrates the content-to-assessment flow:
// normalize → score → generate → validate → dedup/balance → assemble.
// Each run owns its whole unit/candidate graph; nothing is shared
// across concurrent requests.
package pipeline

import (
	"context"
	"errors"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/quizcraft/backend/internal/assemble"
	"github.com/quizcraft/backend/internal/dedup"
	"github.com/quizcraft/backend/internal/generate"
	"github.com/quizcraft/backend/internal/models"
	"github.com/quizcraft/backend/internal/normalize"
	"github.com/quizcraft/backend/internal/score"
	"github.com/quizcraft/backend/internal/similarity"
	"github.com/quizcraft/backend/internal/validate"
)

// Capabilities are the injected text functions the pipeline runs on.
// Any nil capability falls back to the deterministic built-in, so the
// zero value runs fully offline.
type Capabilities struct {
	Scorer     score.Scorer
	Generator  generate.Generator
	Similarity similarity.Func

	// NewGenerator builds a generator bound to a run's unit corpus.
	// Used only when Generator is nil; defaults to the heuristic
	// generator, which mines distractors from the corpus.
	NewGenerator func(units []models.ContentUnit) generate.Generator
}

type Pipeline struct {
	caps Capabilities
}

func New(caps Capabilities) *Pipeline {
	if caps.Scorer == nil {
		caps.Scorer = score.Lexical{}
	}
	if caps.Similarity == nil {
		caps.Similarity = similarity.Jaccard
	}
	if caps.Generator == nil && caps.NewGenerator == nil {
		caps.NewGenerator = func(units []models.ContentUnit) generate.Generator {
			return generate.NewHeuristic(units)
		}
	}
	return &Pipeline{caps: caps}
}

// GenerateQuiz runs the full pipeline for one request. The caller
// receives a quiz meeting the target count, a smaller quiz meeting at
// least the configured minimum, or an error — never a partially
// invalid quiz.
func (p *Pipeline) GenerateQuiz(ctx context.Context, rawText string, cfg models.QuizConfig) (*models.Quiz, error) {
	cfg = cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.PerRequestDeadline)
	defer cancel()

	units, _, err := normalize.Normalize(rawText, normalize.Config{
		MinUnitLength: cfg.MinUnitLength,
		MaxUnitLength: cfg.MaxUnitLength,
	})
	if err != nil {
		return nil, err
	}

	run := &run{
		pipeline: p,
		cfg:      cfg,
		units:    units,
		unitByID: make(map[string]models.ContentUnit, len(units)),
		position: make(map[string]int, len(units)),
		attempts: make(map[string]int, len(units)),
		checker: validate.NewChecker(validate.Config{
			MinQuestionLength: cfg.MinQuestionLength,
			MaxQuestionLength: cfg.MaxQuestionLength,
			GroundedThreshold: cfg.GroundedThreshold,
		}, p.caps.Similarity),
		results: make(map[string]models.ValidationResult),
	}
	for i, u := range units {
		run.unitByID[u.ID] = u
		run.position[u.ID] = i
	}

	run.generator = p.caps.Generator
	if run.generator == nil {
		run.generator = p.caps.NewGenerator(units)
	}

	if err := run.scoreUnits(ctx); err != nil {
		return nil, err
	}
	if err := run.generateAndValidate(ctx); err != nil {
		return nil, err
	}
	kept := run.balance(ctx)

	quiz, err := assemble.Assemble(kept, run.units, run.gaps, assemble.Config{
		MinItemCount:        cfg.MinItemCount,
		WorthinessThreshold: cfg.WorthinessThreshold,
		ShuffleSeed:         cfg.ShuffleSeed,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Quiz %s assembled: %d items, coverage %.2f, %d generation gaps",
		quiz.ID, len(quiz.Items), quiz.CoverageRatio, run.gaps)
	return quiz, nil
}

// run holds the state of one request. It is never shared across
// requests.
type run struct {
	pipeline *Pipeline
	cfg      models.QuizConfig

	units    []models.ContentUnit // document order, scores filled in
	ranked   []models.ContentUnit // worthiness order
	unitByID map[string]models.ContentUnit
	position map[string]int

	generator generate.Generator
	checker   *validate.Checker

	mu         sync.Mutex
	accepted   []*models.QuestionCandidate
	results    map[string]models.ValidationResult
	attempts   map[string]int // unit ID → regeneration rounds used
	regenQueue []generate.Request
	nextSeq    int // next plan slot for balance regenerations
	produced   int // candidates produced, any status
	gaps       int
}

// scoreUnits fans the scoring capability out across units on a
// bounded worker pool, then ranks by worthiness. A failed score call
// degrades that unit to zero rather than failing the run.
func (r *run) scoreUnits(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)

	for i := range r.units {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			r.units[i].ScoreWorthiness = r.pipeline.caps.Scorer.Score(r.units[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	// Refresh the index with the scored copies.
	for _, u := range r.units {
		r.unitByID[u.ID] = u
	}

	r.ranked = make([]models.ContentUnit, len(r.units))
	copy(r.ranked, r.units)
	score.SortDescending(r.ranked)
	return nil
}

// pool returns the units eligible for generation: those above the
// worthiness threshold, or every unit when none clears it, so
// low-signal text still yields a quiz instead of failing.
func (r *run) pool() []models.ContentUnit {
	var worthy []models.ContentUnit
	for _, u := range r.ranked {
		if u.ScoreWorthiness >= r.cfg.WorthinessThreshold {
			worthy = append(worthy, u)
		}
	}
	if len(worthy) == 0 {
		return r.ranked
	}
	return worthy
}

// generateAndValidate produces the initial candidate set and drains
// the regeneration queue. Fails only when the whole pool produced
// nothing usable.
func (r *run) generateAndValidate(ctx context.Context) error {
	requests := r.plan()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)
	for _, req := range requests {
		g.Go(func() error {
			r.produceOne(gctx, req)
			return nil
		})
	}
	if err := g.Wait(); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	// Drain regenerations sequentially; the retry path is bounded by
	// the per-unit budget and the request deadline.
	r.drainRegenerations(ctx)

	// The partial-result policy applies only to the request deadline.
	// A caller that cancelled wants out, not a smaller quiz.
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	if r.produced == 0 && ctx.Err() == nil {
		return models.ErrNoCandidates
	}
	return nil
}

// plan lays out the initial generation requests: one candidate per
// unit per round, until the target count is planned or the pool is
// exhausted. Question types follow the configured per-type mix when
// one is given, otherwise they rotate by unit position. Each request
// gets a sequence number so output order stays reproducible no
// matter which worker finishes first.
func (r *run) plan() []generate.Request {
	pool := r.pool()
	types := r.cfg.TypesAllowed
	mix := typeCycle(r.cfg.TypeTarget, types)

	rounds := len(types)
	if len(mix) > 0 {
		// A mix can demand more slots per unit than one per type.
		rounds = (r.cfg.TargetItemCount + len(pool) - 1) / len(pool)
	}

	var requests []generate.Request
	for round := 0; len(requests) < r.cfg.TargetItemCount && round < rounds; round++ {
		for ui, u := range pool {
			if len(requests) >= r.cfg.TargetItemCount {
				break
			}
			hint := types[(ui+round)%len(types)]
			if len(mix) > 0 {
				hint = mix[len(requests)%len(mix)]
			}
			requests = append(requests, generate.Request{
				Unit:       u,
				TypeHint:   hint,
				Difficulty: r.difficultyHint(len(requests)),
				Seq:        len(requests),
			})
		}
	}
	r.nextSeq = len(requests)
	return requests
}

// typeCycle expands the per-type target mix into a repeating slot
// assignment, in types-allowed order for determinism.
func typeCycle(target map[models.QuestionType]int, types []models.QuestionType) []models.QuestionType {
	var cycle []models.QuestionType
	for _, qt := range types {
		for i := 0; i < target[qt]; i++ {
			cycle = append(cycle, qt)
		}
	}
	return cycle
}

// difficultyHint spreads the configured difficulty distribution over
// the planned requests in a deterministic repeating cycle.
func (r *run) difficultyHint(planned int) models.Difficulty {
	cycle := difficultyCycle(r.cfg.DifficultyTarget)
	if len(cycle) == 0 {
		return ""
	}
	return cycle[planned%len(cycle)]
}

func difficultyCycle(target map[models.Difficulty]int) []models.Difficulty {
	var cycle []models.Difficulty
	for _, d := range []models.Difficulty{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard} {
		for i := 0; i < target[d]; i++ {
			cycle = append(cycle, d)
		}
	}
	return cycle
}

// produceOne runs one generate→validate round for a request and
// queues nothing; regeneration decisions land in the attempts map and
// are picked up by drainRegenerations.
func (r *run) produceOne(ctx context.Context, req generate.Request) {
	cand, err := callGenerator(ctx, r.generator, req, r.cfg.CapabilityTimeout)
	if err != nil {
		r.recordGap(req, err)
		return
	}
	cand.Sequence = req.Seq

	r.mu.Lock()
	r.produced++
	r.mu.Unlock()

	result := r.checker.Check(cand, r.unitByID[cand.UnitID])
	status := validate.Decide(result, req.Attempt, r.cfg.MaxRetriesPerUnit)
	cand.Status = status

	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[cand.ID] = result
	switch status {
	case models.StatusAccepted:
		r.accepted = append(r.accepted, cand)
	case models.StatusNeedsRegeneration:
		r.regenQueue = append(r.regenQueue, generate.Request{
			Unit:       req.Unit,
			TypeHint:   req.TypeHint,
			Difficulty: req.Difficulty,
			Attempt:    req.Attempt + 1,
			Seq:        req.Seq,
		})
	}
}

// drainRegenerations serially re-runs failed units until the queue
// empties, the budget runs out, or the deadline passes. On deadline
// the pipeline proceeds to assembly with whatever completed.
func (r *run) drainRegenerations(ctx context.Context) {
	for {
		if err := ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.Printf("WARN: request deadline reached with %d regenerations pending, proceeding to assembly", len(r.regenQueue))
			}
			return
		}

		r.mu.Lock()
		if len(r.regenQueue) == 0 {
			r.mu.Unlock()
			return
		}
		req := r.regenQueue[0]
		r.regenQueue = r.regenQueue[1:]
		r.attempts[req.Unit.ID] = req.Attempt
		r.mu.Unlock()

		r.produceOne(ctx, req)
	}
}

func (r *run) recordGap(req generate.Request, err error) {
	r.mu.Lock()
	r.gaps++
	r.mu.Unlock()
	log.Printf("WARN: generation gap for unit %s (type %s, attempt %d): %v",
		req.Unit.ID, req.TypeHint, req.Attempt, err)
}

// balance deduplicates the accepted set, applies the diversity
// constraints, and runs one bounded round of shortfall regeneration
// before a final dedup pass.
func (r *run) balance(ctx context.Context) []*models.QuestionCandidate {
	result := r.dedupAccepted()

	result = dedup.Balance(result, dedup.Config{
		SimilarityThreshold: r.cfg.SimilarityThreshold,
		MaxTypeShare:        r.cfg.MaxTypeShare,
		MinDistinctUnits:    r.cfg.MinDistinctUnits,
		TypeTarget:          r.cfg.TypeTarget,
	}, r.pool(), r.cfg.TypesAllowed)

	if len(result.UnderRepresentedUnits) == 0 && len(result.UnderRepresentedTypes) == 0 {
		return keptCandidates(result)
	}

	r.regenerateForBalance(ctx, result)
	// Balance regenerations can queue their own retries.
	r.drainRegenerations(ctx)
	return keptCandidates(r.dedupAccepted())
}

func (r *run) dedupAccepted() dedup.Result {
	r.mu.Lock()
	items := make([]dedup.Item, 0, len(r.accepted))
	kept := r.accepted[:0]
	for _, c := range r.accepted {
		if c.Status != models.StatusAccepted {
			continue // Rejected by an earlier dedup pass.
		}
		kept = append(kept, c)
		items = append(items, dedup.Item{
			Candidate:  c,
			Position:   r.position[c.UnitID],
			Seq:        c.Sequence,
			Confidence: r.results[c.ID].Confidence,
		})
	}
	r.accepted = kept
	r.mu.Unlock()

	return dedup.Dedup(items, r.pipeline.caps.Similarity, r.cfg.SimilarityThreshold)
}

// regenerateForBalance asks the generator for items on units or types
// the surviving set under-represents, inside the same per-unit retry
// budget.
func (r *run) regenerateForBalance(ctx context.Context, result dedup.Result) {
	types := result.UnderRepresentedTypes
	if len(types) == 0 {
		types = r.cfg.TypesAllowed
	}

	for i, unitID := range result.UnderRepresentedUnits {
		if ctx.Err() != nil {
			return
		}
		attempt := r.attempts[unitID]
		if attempt >= r.cfg.MaxRetriesPerUnit {
			continue
		}
		r.attempts[unitID] = attempt + 1
		r.produceOne(ctx, generate.Request{
			Unit:     r.unitByID[unitID],
			TypeHint: types[i%len(types)],
			Attempt:  attempt,
			Seq:      r.nextSeq,
		})
		r.nextSeq++
	}

	if len(result.UnderRepresentedUnits) == 0 {
		// Type imbalance only: regenerate on the best-scoring units.
		for i, u := range r.pool() {
			if i >= len(types) || ctx.Err() != nil {
				return
			}
			attempt := r.attempts[u.ID]
			if attempt >= r.cfg.MaxRetriesPerUnit {
				continue
			}
			r.attempts[u.ID] = attempt + 1
			r.produceOne(ctx, generate.Request{
				Unit:     u,
				TypeHint: types[i%len(types)],
				Attempt:  attempt,
				Seq:      r.nextSeq,
			})
			r.nextSeq++
		}
	}
}

func keptCandidates(result dedup.Result) []*models.QuestionCandidate {
	out := make([]*models.QuestionCandidate, 0, len(result.Kept))
	for _, it := range result.Kept {
		out = append(out, it.Candidate)
	}
	return out
}
