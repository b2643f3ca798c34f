package engine

import (
	"context"
	"strings"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/internal/pkg/logger"
	"frontline-citizen-be/pkg/triage/classify"
	"frontline-citizen-be/pkg/triage/compose"
	"frontline-citizen-be/pkg/triage/degraded"
	"frontline-citizen-be/pkg/triage/reserve"
	"frontline-citizen-be/pkg/triage/resolve"
	"frontline-citizen-be/pkg/triage/state"
)

// Phase names a pipeline state. The machine runs
// start -> lite_detected -> classified -> (resolved -> booked)? -> composed -> done,
// with fallback as the second terminal reachable from any phase.
type Phase string

const (
	PhaseStart        Phase = "start"
	PhaseLiteDetected Phase = "lite_detected"
	PhaseClassified   Phase = "classified"
	PhaseResolved     Phase = "resolved"
	PhaseBooked       Phase = "booked"
	PhaseComposed     Phase = "composed"
	PhaseDone         Phase = "done"
	PhaseFallback     Phase = "fallback"
)

// Result is what a pipeline run always yields: a session in a terminal
// phase, never an error. Failures inside stages surface as the fallback
// terminal, not as crashes to the case originator.
type Result struct {
	Session  *state.Session
	Terminal Phase
}

// Engine sequences the case pipeline over one session. Strategies are
// selected once at construction and never mutated per request, so a single
// engine serves any number of concurrent cases.
type Engine struct {
	detector   degraded.Detector
	classifier classify.Strategy
	resolvers  map[entity.CaseType]resolve.Strategy
	desk       *reserve.Desk
	composer   compose.Composer
	log        logger.ILogger
}

func New(
	detector degraded.Detector,
	classifier classify.Strategy,
	resolvers map[entity.CaseType]resolve.Strategy,
	desk *reserve.Desk,
	composer compose.Composer,
	log logger.ILogger,
) *Engine {
	return &Engine{
		detector:   detector,
		classifier: classifier,
		resolvers:  resolvers,
		desk:       desk,
		composer:   composer,
		log:        log,
	}
}

// Run drives the session to a terminal. A panic in any stage or an exceeded
// caller deadline routes to the fallback terminal; a degraded generative
// backend only defaults the affected fields and the run continues.
func (e *Engine) Run(ctx context.Context, sess *state.Session) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("Engine", "stage panic, taking fallback terminal", map[string]interface{}{
				"case_id": sess.CaseId,
				"panic":   r,
			})
			result = e.fallback(sess)
		}
	}()

	sess.Lite = e.detector.Detect(sess.BatteryPct, sess.BandwidthKbps)
	e.transition(sess, PhaseLiteDetected)
	if ctx.Err() != nil {
		return e.fallback(sess)
	}

	caseType, err := e.classifier.Classify(ctx, sess)
	if err != nil {
		if ctx.Err() != nil {
			return e.fallback(sess)
		}
		e.log.Warn("Engine", "classification degraded, defaulting to unknown", map[string]interface{}{
			"case_id": sess.CaseId,
			"error":   err.Error(),
		})
		caseType = entity.CaseTypeUnknown
	}
	sess.CaseType = caseType
	e.transition(sess, PhaseClassified)

	// Lite short-circuits the specialist and reservation stages entirely,
	// as do case types without a resolver (disaster, unknown).
	if !sess.Lite {
		if resolver, ok := e.resolvers[sess.CaseType]; ok {
			if err := resolver.Resolve(ctx, sess); err != nil {
				if ctx.Err() != nil {
					return e.fallback(sess)
				}
				e.log.Warn("Engine", "specialist resolution degraded", map[string]interface{}{
					"case_id": sess.CaseId,
					"error":   err.Error(),
				})
			}
			e.transition(sess, PhaseResolved)

			if sess.Target != nil {
				sess.Booking = e.desk.Book(sess.Target, "")
				e.transition(sess, PhaseBooked)
			}
		}
	}
	if ctx.Err() != nil {
		return e.fallback(sess)
	}

	text, err := e.composer.Compose(ctx, sess)
	if err != nil {
		if ctx.Err() != nil {
			return e.fallback(sess)
		}
		e.log.Warn("Engine", "composer degraded, deterministic rendering used", map[string]interface{}{
			"case_id": sess.CaseId,
			"error":   err.Error(),
		})
	}
	if text == "" || !strings.Contains(text, sess.CaseId) {
		text = genericConfirmation(sess.CaseId)
	}
	sess.Confirmation = text
	e.transition(sess, PhaseComposed)

	return &Result{Session: sess, Terminal: PhaseDone}
}

// fallback builds the guaranteed-safe terminal: inputs are preserved, every
// pipeline field takes its documented safe default.
func (e *Engine) fallback(sess *state.Session) *Result {
	safe := &state.Session{
		CaseId:        sess.CaseId,
		UserMessage:   sess.UserMessage,
		Location:      sess.Location,
		BatteryPct:    sess.BatteryPct,
		BandwidthKbps: sess.BandwidthKbps,
		CitizenPhone:  sess.CitizenPhone,
		Lang:          sess.Lang,

		Lite:         true,
		CaseType:     entity.CaseTypeUnknown,
		Urgency:      entity.UrgencyLow,
		Confirmation: genericConfirmation(sess.CaseId),
	}
	return &Result{Session: safe, Terminal: PhaseFallback}
}

func (e *Engine) transition(sess *state.Session, phase Phase) {
	e.log.Debug("Engine", "phase transition", map[string]interface{}{
		"case_id": sess.CaseId,
		"phase":   string(phase),
	})
}

func genericConfirmation(caseId string) string {
	return "Your request has been recorded. Case ID: " + caseId
}
