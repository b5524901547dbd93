package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"carconvo/internal/models/domain_models"
	"carconvo/internal/models/response_models"
	"carconvo/pkg/utils"
)

const (
	firstReplyMaxTokens    = 400
	followUpReplyMaxTokens = 150
	historyWindow          = 4
)

type ChatServiceInterface interface {
	Chat(ctx context.Context, sessionID, message string, budget *int) (response_models.ChatResponse, error)
}

type ChatService struct {
	sessions SessionServiceInterface
	ai       utils.ChatClientInterface
}

func NewChatService(sessions SessionServiceInterface, ai utils.ChatClientInterface) ChatServiceInterface {
	return &ChatService{sessions: sessions, ai: ai}
}

// Chat runs one conversational turn: record the user message, let the AI
// collaborator extract structured signals from it, re-rank with the updated
// budget and filters, then generate and scrub the assistant reply.
func (c *ChatService) Chat(ctx context.Context, sessionID, message string, budget *int) (response_models.ChatResponse, error) {
	if _, err := c.sessions.Get(sessionID); err != nil {
		return response_models.ChatResponse{}, err
	}

	if err := c.sessions.RecordTurn(sessionID, domain_models.RoleUser, message); err != nil {
		return response_models.ChatResponse{}, err
	}

	if budget != nil {
		if err := c.sessions.SetBudget(sessionID, *budget); err != nil {
			return response_models.ChatResponse{}, err
		}
	}

	// Signal extraction failing is not fatal: the turn proceeds on whatever
	// budget and filters the session already holds.
	hints := domain_models.FilterHints{}
	signals, err := c.ai.ExtractSignals(ctx, message)
	if err != nil {
		log.Printf("Signal extraction failed, continuing without new hints: %v", err)
	} else {
		hints = signals.Filters
		if budget == nil && signals.Budget != nil {
			if err := c.sessions.SetBudget(sessionID, *signals.Budget); err != nil {
				return response_models.ChatResponse{}, err
			}
		}
	}

	results, err := c.sessions.Rescore(sessionID, hints)
	if err != nil {
		return response_models.ChatResponse{}, err
	}

	session, err := c.sessions.Get(sessionID)
	if err != nil {
		return response_models.ChatResponse{}, err
	}

	firstMessage := len(session.History) <= 1
	prompt := buildReplyPrompt(session, results, firstMessage)

	maxTokens := followUpReplyMaxTokens
	if firstMessage {
		maxTokens = firstReplyMaxTokens
	}

	reply, err := c.ai.GenerateReply(ctx, prompt, recentHistory(session.History), maxTokens)
	if err != nil {
		log.Printf("AI reply generation failed: %v", err)
		return response_models.ChatResponse{}, fmt.Errorf("%w: %v", utils.ErrAIUnavailable, err)
	}
	reply = utils.ScrubMatchScores(reply)

	if err := c.sessions.RecordTurn(sessionID, domain_models.RoleAssistant, reply); err != nil {
		return response_models.ChatResponse{}, err
	}

	return response_models.ChatResponse{
		Response:            reply,
		RecommendedVehicles: results,
	}, nil
}

func recentHistory(history []domain_models.Turn) []utils.ChatMessage {
	start := len(history) - historyWindow
	if start < 0 {
		start = 0
	}
	window := history[start:]
	messages := make([]utils.ChatMessage, len(window))
	for i, turn := range window {
		messages[i] = utils.ChatMessage{Role: turn.Role, Content: turn.Content}
	}
	return messages
}

// vehicleSummary is the compact ranked form the reply prompt carries; it
// keeps prompt size bounded no matter how verbose the catalog records are.
type vehicleSummary struct {
	Rank       int      `json:"rank"`
	Make       string   `json:"make"`
	Model      string   `json:"model"`
	Year       int      `json:"year"`
	BodyType   string   `json:"body_type"`
	Price      int      `json:"price"`
	MPG        int      `json:"mpg"`
	Horsepower int      `json:"horsepower"`
	Seating    int      `json:"seating"`
	Engine     string   `json:"engine"`
	Reasons    []string `json:"match_reasons"`
	Pros       []string `json:"pros"`
	Cons       []string `json:"cons"`
}

func summarize(results []domain_models.MatchResult) []vehicleSummary {
	summaries := make([]vehicleSummary, len(results))
	for i, r := range results {
		v := r.Vehicle
		summaries[i] = vehicleSummary{
			Rank:       i + 1,
			Make:       v.BasicInfo.Make,
			Model:      v.BasicInfo.Model,
			Year:       v.BasicInfo.Year,
			BodyType:   v.BasicInfo.BodyType,
			Price:      v.BasicInfo.MSRP,
			MPG:        v.Specs.MPGCombined,
			Horsepower: v.Specs.Horsepower,
			Seating:    v.Specs.SeatingCapacity,
			Engine:     v.Specs.Engine,
			Reasons:    r.Reasons,
			Pros:       firstN(v.Pros, 3),
			Cons:       firstN(v.Cons, 2),
		}
	}
	return summaries
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func buildReplyPrompt(session domain_models.Session, results []domain_models.MatchResult, firstMessage bool) string {
	profileJSON, _ := json.MarshalIndent(session.Profile, "", "  ")
	carsJSON, _ := json.MarshalIndent(summarize(results), "", "  ")

	if firstMessage {
		return fmt.Sprintf(`You are a friendly car recommendation expert. This is the user's first interaction.

USER PROFILE:
%s

RECOMMENDED CARS (Ranked 1-%d):
%s

RESPONSE FORMAT (First Message):
Write exactly 2 small-medium paragraphs.

Paragraph 1: Warm welcome + explain WHY these cars match their lifestyle.
Reference their top 2-3 lifestyle traits (e.g., "family_friendly: 8/10") and
how the recommendations align with them. 4-5 sentences.

Paragraph 2: Introduce the top 2-3 cars briefly with key specs (price, MPG,
seating), highlight what makes each unique, and invite questions. 3-4
sentences.

RULES:
- DO reference their lifestyle scores: "your strong family_friendly (8/10)".
- DON'T mention match percentages or scores.
- DO use specific numbers: price, MPG, HP, seating.
- DO be warm but natural, never overly formal.`,
			profileJSON, len(results), carsJSON)
	}

	return fmt.Sprintf(`You are a car recommendation expert. Give brief, helpful responses.

USER PROFILE:
%s

RECOMMENDED CARS (Ranked 1-%d):
%s

RESPONSE RULES:
1. BREVITY: 2-3 sentences only.
2. SPECIFICS: Use numbers (MPG, price, HP, seating).
3. PERSONALIZATION: Reference their lifestyle scores when relevant.
4. NO PERCENTAGES: Never mention match scores or percentages.
5. FORMAT: general question -> quick overview + top pick; specific car -> why
   it fits THEM + key specs + 1 pro/con; comparison -> key differences with
   numbers.
6. TONE: Friendly but direct.`,
		profileJSON, len(results), carsJSON)
}
