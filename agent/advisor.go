package agent

import (
	"context"
	"fmt"

	"github.com/etnz/allocation"
	"github.com/etnz/allocation/docs"
	"github.com/etnz/allocation/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// ReviewPrompt is the first question of a review session.
const ReviewPrompt = `Review my portfolio allocation. Comment on the diversification of my current
holdings, on the risk and expected return of the optimal portfolio compared to the current one,
and tell me whether the proposed trades are worth their size.`

// newFacilitator creates the expert talking to the user.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and of answering the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They keep the context of your previous questions.

			The user holds a portfolio that was optimized with modern portfolio theory. Ask the
			Analyst for any figure before answering, never invent one. Be concise and answer in markdown.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns the expert knowing an optimization report. It can render the report and
// plan alternative rebalancings of the holdings.
func NewAnalyst(holdings allocation.Holdings, report *allocation.Report, threshold float64) *Expert {
	lib := []Function{reportFunc(report), rebalanceFunc(holdings, report.TotalValue, threshold), topicFunc()}
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It knows the user's holdings, the statistics of their assets,
		the efficient frontier, the optimal portfolio and the proposed trades.
		It can also compute the trades toward other target weights.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a quantitative analyst in charge of the user's portfolio allocation.
				Use the available tools to read the optimization report, to compute the trades toward
				other weights, and to read the documentation of the optimizer.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

func reportFunc(report *allocation.Report) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Report",
			Description: `Report returns the optimization report: asset statistics, current, optimal and minimum risk portfolios, efficient frontier and rebalancing trades.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report.",
			},
		},
		Func: func(ctx context.Context, args map[string]any) (string, error) {
			return renderer.RenderReport(renderer.NewReport(report)), nil
		},
	}
}

func rebalanceFunc(holdings allocation.Holdings, total allocation.Money, threshold float64) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Rebalance",
			Description: `Rebalance computes the trades turning the current holdings into target weights.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"weights": {
						Type:        genai.TypeString,
						Description: `Target weights as comma separated <symbol>=<weight> pairs summing to 1, like "AAA=0.6,BBB=0.4". Symbols left out get a zero weight.`,
					},
				},
				Required: []string{"weights"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the trades.",
			},
		},
		Func: func(ctx context.Context, args map[string]any) (string, error) {
			list, ok := args["weights"].(string)
			if !ok {
				return "", fmt.Errorf("argument 'weights' is not a string as expected but %T", args["weights"])
			}
			target, err := allocation.ParseWeights(list, holdings.Symbols())
			if err != nil {
				return "", err
			}
			plan, err := allocation.PlanRebalance(holdings, holdings.Weights(), target, total, threshold)
			if err != nil {
				return "", err
			}
			return renderer.RenderPlan(renderer.NewPlan(plan)), nil
		},
	}
}

func topicFunc() *Func {
	topics, _ := docs.GetAllTopics()
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Topic",
			Description: `Topic returns the documentation of the optimizer on a topic.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "The topic name.",
						Enum:        topics,
					},
				},
				Required: []string{"name"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The markdown documentation.",
			},
		},
		Func: func(ctx context.Context, args map[string]any) (string, error) {
			name, ok := args["name"].(string)
			if !ok {
				return "", fmt.Errorf("argument 'name' is not a string as expected but %T", args["name"])
			}
			return docs.GetTopic(name)
		},
	}
}
