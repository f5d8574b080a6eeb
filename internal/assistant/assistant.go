// Package assistant wraps the model API behind the three operations
// the app actually needs. Callers degrade gracefully: every failure
// here has a non-AI fallback at the call site.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ErrUnavailable is returned when no API key was configured.
var ErrUnavailable = errors.New("assistant: not configured")

const model = anthropic.ModelClaude3_5HaikuLatest

type Client struct {
	api     anthropic.Client
	enabled bool
}

func New(apiKey string) *Client {
	if apiKey == "" {
		return &Client{}
	}
	return &Client{api: anthropic.NewClient(option.WithAPIKey(apiKey)), enabled: true}
}

func (c *Client) Enabled() bool { return c.enabled }

func (c *Client) complete(ctx context.Context, system, prompt string) (string, error) {
	if !c.enabled {
		return "", ErrUnavailable
	}
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     model,
		MaxTokens: 1024,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("assistant: %w", err)
	}
	var out strings.Builder
	for _, block := range msg.Content {
		out.WriteString(block.Text)
	}
	return strings.TrimSpace(out.String()), nil
}

// Ask answers a free-form business question grounded on a compact
// summary of the user's own data.
func (c *Client) Ask(ctx context.Context, question, dataSummary string) (string, error) {
	system := "Voce e um assistente de gestao para um prestador de servicos de campo. " +
		"Responda em portugues, de forma curta e pratica, usando apenas os dados fornecidos."
	prompt := fmt.Sprintf("Dados atuais:\n%s\n\nPergunta: %s", dataSummary, question)
	return c.complete(ctx, system, prompt)
}

// EstimateDistanceKm asks for a driving distance between two addresses
// and parses the single number out of the reply.
func (c *Client) EstimateDistanceKm(ctx context.Context, origin, destination string) (float64, error) {
	system := "Estime a distancia de carro em quilometros entre dois enderecos. " +
		"Responda somente com o numero, sem unidade e sem texto."
	prompt := fmt.Sprintf("Origem: %s\nDestino: %s", origin, destination)
	reply, err := c.complete(ctx, system, prompt)
	if err != nil {
		return 0, err
	}
	km, ok := parseKm(reply)
	if !ok {
		return 0, fmt.Errorf("assistant: no distance in reply %q", reply)
	}
	return km, nil
}

// ProfessionalizeNotes rewrites rough technician notes into report
// prose.
func (c *Client) ProfessionalizeNotes(ctx context.Context, notes string) (string, error) {
	system := "Reescreva as anotacoes do tecnico como um paragrafo profissional para um " +
		"relatorio de servico, em portugues. Mantenha todos os fatos; nao invente nada."
	return c.complete(ctx, system, notes)
}

var numberRe = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// parseKm pulls the first number out of a model reply, tolerating a
// decimal comma.
func parseKm(s string) (float64, bool) {
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
