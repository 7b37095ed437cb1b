package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"knowledge-assistant-be/internal/config"
	"knowledge-assistant-be/internal/dto"
	"knowledge-assistant-be/internal/pkg/serverutils"
	"knowledge-assistant-be/pkg/store"

	"github.com/fatih/color"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()

	baseURL := flag.String("url", cfg.App.BaseURL+"/api", "API base URL")
	token := flag.String("token", os.Getenv("ASK_TOKEN"), "bearer token (minted from JWT_SECRET when empty)")
	userID := flag.String("user", "cli-user", "user_id claim for a minted token")
	role := flag.String("role", "employee", "role claim for a minted token")
	company := flag.String("company", "", "company_id claim for a minted token")
	sessionID := flag.String("session", "", "session id (random when empty)")
	flag.Parse()

	question := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if question == "" {
		color.Red("Usage: ask [flags] <question>")
		os.Exit(2)
	}

	if *token == "" {
		minted, err := mintToken(cfg.App.JWTSecret, *userID, *role, *company)
		if err != nil {
			color.Red("Failed to mint token: %v", err)
			os.Exit(1)
		}
		*token = minted
	}
	if *sessionID == "" {
		*sessionID = uuid.NewString()
	}

	res, err := ask(*baseURL, *token, dto.QueryRequest{Query: question, SessionId: *sessionID})
	if err != nil {
		color.Red("Request failed: %v", err)
		os.Exit(1)
	}

	render(res)
}

func mintToken(secret, userID, role, company string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET is not set, pass -token instead")
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    userID,
		"role":       role,
		"company_id": company,
		"exp":        time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
}

func ask(baseURL, token string, req dto.QueryRequest) (*dto.QueryResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, baseURL+"/assistant/v1/query", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed serverutils.BaseResponse[dto.QueryResponse]
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unexpected response (%s): %s", resp.Status, string(body))
	}
	if !parsed.Success {
		return nil, fmt.Errorf("%s: %s", resp.Status, parsed.Message)
	}
	return &parsed.Data, nil
}

func render(res *dto.QueryResponse) {
	r := res.Response

	color.Cyan("Intent: %s   Conversation: %s   (%d ms)", res.Intent, res.ConversationId, res.ExecutionTimeMs)
	confidenceColor(r.ConfidenceLevel)("Confidence: %s", r.ConfidenceLevel)

	fmt.Println()
	color.New(color.Bold).Println(r.Summary)

	if len(r.Steps) > 0 {
		fmt.Println()
		for i, step := range r.Steps {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
	}

	if r.StrategicSuggestion != "" {
		fmt.Println()
		color.Magenta("Sugestão: %s", r.StrategicSuggestion)
	}

	if len(r.Sources) > 0 {
		fmt.Println()
		color.Blue("Fontes:")
		for _, s := range r.Sources {
			fmt.Printf("  - %s (v%s) relevância %.2f\n", s.Title, s.Version, s.Relevance)
		}
	}

	if r.RequiresHumanFallback {
		fmt.Println()
		color.Yellow("Encaminhado para atendimento humano: %s", r.FallbackReason)
	}
	if r.NextAction != "" {
		color.Yellow("Próximo passo: %s", r.NextAction)
	}
}

func confidenceColor(level store.ConfidenceLevel) func(format string, a ...interface{}) {
	switch level {
	case store.ConfidenceHigh:
		return color.Green
	case store.ConfidenceMedium:
		return color.Yellow
	default:
		return color.Red
	}
}
