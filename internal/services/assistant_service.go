// Package services – AssistantService
//
// The emergency assistant is a canned-response table behind a chat-shaped
// endpoint: a keyword match against fixed entries, with a fallback reply
// when nothing clears the confidence threshold. Stateless and unpersisted.
package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/pestward/go-booking-backend/internal/canned"
)

// DefaultFallbackReply is returned when no entry clears the threshold.
const DefaultFallbackReply = "I'm not sure about that one. For urgent pest problems call our emergency line, or book an inspection and a technician will take a look."

// AssistantService answers widget messages from a fixed response table.
type AssistantService struct {
	// Responder is the keyword matcher.
	Responder canned.Responder
	// Threshold is the minimum match score in [0,1]; weaker matches get
	// the fallback.
	Threshold float64
	// Fallback overrides DefaultFallbackReply when non-empty.
	Fallback string
}

// NewAssistantService builds the service over the default pest-control
// response table.
func NewAssistantService(threshold float64) *AssistantService {
	return &AssistantService{
		Responder: canned.New(defaultEntries(), canned.WithStopwords(defaultStopwords())),
		Threshold: threshold,
	}
}

// Reply returns the canned answer for message and the match score (0 for
// fallbacks). A blank message is a validation error.
func (s *AssistantService) Reply(ctx context.Context, message string) (string, float64, error) {
	tr := otel.Tracer("services/AssistantService")
	_, span := tr.Start(ctx, "Reply",
		trace.WithAttributes(attribute.Int("message.len", len(message))),
	)
	defer span.End()

	if strings.TrimSpace(message) == "" {
		return "", 0, ErrEmptyMessage
	}
	m, ok := s.Responder.Best(message)
	if !ok || m.Score < s.Threshold {
		return s.fallback(), 0, nil
	}
	return m.Reply, m.Score, nil
}

func (s *AssistantService) fallback() string {
	if s.Fallback != "" {
		return s.Fallback
	}
	return DefaultFallbackReply
}

// defaultEntries is the assistant's response table. Replies are written
// for the website widget; triggers are keyword bags, not grammars.
func defaultEntries() []canned.Entry {
	return []canned.Entry{
		{
			Triggers: []string{"rats mice rodent droppings scratching walls attic"},
			Reply:    "Scratching sounds and droppings usually mean rodents. We offer rodent exclusion visits with entry-point sealing — book one online and we can usually come out within the week.",
		},
		{
			Triggers: []string{"termites termite wood damage swarm mud tubes foundation"},
			Reply:    "Possible termite activity should be inspected quickly. Book a Termite Inspection and we'll check the full structure and give you a written report.",
		},
		{
			Triggers: []string{"wasp wasps nest bees hornets stinging swarm eaves"},
			Reply:    "Please keep your distance from the nest. We remove wasp and hornet nests safely, usually within 24 hours of booking.",
		},
		{
			Triggers: []string{"bed bugs bites mattress bedbug itchy"},
			Reply:    "Bed bugs spread fast. Our Bed Bug Treatment combines heat and targeted chemicals; book it and avoid moving bedding between rooms in the meantime.",
		},
		{
			Triggers: []string{"cockroach roaches kitchen infestation"},
			Reply:    "Roaches in the kitchen call for a General Pest Control visit. Keep food sealed and surfaces dry until the technician arrives.",
		},
		{
			Triggers: []string{"ants ant trail sugar kitchen"},
			Reply:    "Ant trails are covered by our General Pest Control service. Wipe the trail with soapy water and avoid sprays before the visit so we can trace the colony.",
		},
		{
			Triggers: []string{"price cost pricing quote how much pay"},
			Reply:    "Pricing is listed on each service in our catalog, and protection plans are available at checkout. One-time treatments start at $199.",
		},
		{
			Triggers: []string{"hours open closed weekend saturday sunday schedule"},
			Reply:    "We take appointments Monday to Friday 8:00-18:00 and Saturday 9:00-14:00. The booking widget only shows times we can actually staff.",
		},
		{
			Triggers: []string{"appointment book booking reschedule cancel visit"},
			Reply:    "You can book, view, and cancel appointments from your dashboard. Pick a service, a date, and any open time slot.",
		},
		{
			Triggers: []string{"emergency urgent now today help asap"},
			Reply:    "For same-day emergencies call our emergency line directly — the chat widget can't dispatch a technician.",
		},
	}
}

// defaultStopwords trims conversational filler before matching.
func defaultStopwords() []string {
	return []string{
		"i", "a", "an", "the", "my", "in", "on", "at", "is", "are", "was",
		"it", "of", "to", "do", "can", "you", "have", "there", "what",
		"hello", "hi", "please",
	}
}
