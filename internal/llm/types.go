package llm

import (
	"genai-chat/internal/chat"
	"genai-chat/internal/model"
)

// Wire shapes of the OCI Generative AI inference API (version 20231130).

const (
	apiVersion       = "20231130"
	apiFormatCohere  = "COHERE"
	ServingOnDemand  = "ON_DEMAND"
	ServingDedicated = "DEDICATED"
)

type servingMode struct {
	ServingType string `json:"servingType"`
	ModelID     string `json:"modelId,omitempty"`
	EndpointID  string `json:"endpointId,omitempty"`
}

type cohereMessage struct {
	Role    string `json:"role"`
	Message string `json:"message"`
}

type cohereChatRequest struct {
	APIFormat        string           `json:"apiFormat"`
	Message          string           `json:"message"`
	ChatHistory      []cohereMessage  `json:"chatHistory,omitempty"`
	Documents        []map[string]any `json:"documents,omitempty"`
	PreambleOverride string           `json:"preambleOverride,omitempty"`
	IsStream         bool             `json:"isStream"`
	IsEcho           bool             `json:"isEcho"`
	MaxTokens        int              `json:"maxTokens"`
	Temperature      float64          `json:"temperature"`
	TopP             float64          `json:"topP"`
	TopK             int              `json:"topK"`
	FrequencyPenalty float64          `json:"frequencyPenalty"`
	PresencePenalty  float64          `json:"presencePenalty"`
	Seed             *int             `json:"seed,omitempty"`
}

type chatDetails struct {
	CompartmentID string            `json:"compartmentId"`
	ServingMode   servingMode       `json:"servingMode"`
	ChatRequest   cohereChatRequest `json:"chatRequest"`
}

type cohereCitation struct {
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Text        string   `json:"text"`
	DocumentIDs []string `json:"documentIds"`
}

// cohereChatResponse is both the synchronous chatResponse object and the
// payload of every streamed event. Pointer fields distinguish absent keys.
type cohereChatResponse struct {
	APIFormat    string           `json:"apiFormat"`
	Text         *string          `json:"text"`
	FinishReason *string          `json:"finishReason"`
	ChatHistory  []cohereMessage  `json:"chatHistory"`
	Citations    []cohereCitation `json:"citations"`
	Prompt       *string          `json:"prompt"`
}

type chatResult struct {
	ModelID      string             `json:"modelId"`
	ModelVersion string             `json:"modelVersion"`
	ChatResponse cohereChatResponse `json:"chatResponse"`
}

type guardrailsTextInput struct {
	Type         string `json:"type"`
	Content      string `json:"content"`
	LanguageCode string `json:"languageCode,omitempty"`
}

type piiConfig struct {
	Types []string `json:"types,omitempty"`
}

type contentModerationConfig struct {
	Categories []string `json:"categories,omitempty"`
}

type promptInjectionConfig struct{}

type guardrailConfigs struct {
	PII               *piiConfig               `json:"personallyIdentifiableInformationConfig,omitempty"`
	ContentModeration *contentModerationConfig `json:"contentModerationConfig,omitempty"`
	PromptInjection   *promptInjectionConfig   `json:"promptInjectionConfig,omitempty"`
}

type applyGuardrailsDetails struct {
	Input            guardrailsTextInput `json:"input"`
	GuardrailConfigs guardrailConfigs    `json:"guardrailConfigs"`
	CompartmentID    string              `json:"compartmentId"`
}

type guardrailsResult struct {
	Results struct {
		ContentModeration *struct {
			Categories []struct {
				Name  string  `json:"name"`
				Score float64 `json:"score"`
			} `json:"categories"`
		} `json:"contentModeration"`
		PersonallyIdentifiableInformation []struct {
			Length int     `json:"length"`
			Offset int     `json:"offset"`
			Text   string  `json:"text"`
			Label  string  `json:"label"`
			Score  float64 `json:"score"`
		} `json:"personallyIdentifiableInformation"`
		PromptInjection *struct {
			Score float64 `json:"score"`
		} `json:"promptInjection"`
	} `json:"results"`
}

type serviceError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toCohereRequest(req *chat.Request) cohereChatRequest {
	s := req.Sampling()
	out := cohereChatRequest{
		APIFormat:        apiFormatCohere,
		Message:          req.Message(),
		PreambleOverride: req.PreambleOverride(),
		IsStream:         req.Stream(),
		IsEcho:           req.Echo(),
		MaxTokens:        req.MaxTokens(),
		Temperature:      s.Temperature,
		TopP:             s.TopP,
		TopK:             s.TopK,
		FrequencyPenalty: s.FrequencyPenalty,
		PresencePenalty:  s.PresencePenalty,
		Seed:             req.Seed(),
	}
	for _, turn := range req.History() {
		out.ChatHistory = append(out.ChatHistory, cohereMessage{Role: string(turn.Role), Message: turn.Message})
	}
	for _, doc := range req.Documents() {
		d := map[string]any{"snippet": doc.Snippet}
		if doc.ID != "" {
			d["id"] = doc.ID
		}
		if doc.Title != "" {
			d["title"] = doc.Title
		}
		if doc.URL != "" {
			d["website"] = doc.URL
		}
		out.Documents = append(out.Documents, d)
	}
	return out
}

// toFinal maps a response payload onto the Final fragment.
func (r *cohereChatResponse) toFinal() model.Final {
	f := model.Final{Text: r.Text}
	if r.FinishReason != nil {
		f.FinishReason = model.FinishReason(*r.FinishReason)
	}
	if r.Prompt != nil {
		f.Prompt = *r.Prompt
	}
	for _, m := range r.ChatHistory {
		f.ChatHistory = append(f.ChatHistory, model.ChatTurn{Role: model.Role(m.Role), Message: m.Message})
	}
	for _, c := range r.Citations {
		f.Citations = append(f.Citations, model.Citation{
			DocumentIDs: c.DocumentIDs,
			Start:       c.Start,
			End:         c.End,
			Text:        c.Text,
		})
	}
	return f
}
