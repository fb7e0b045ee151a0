package ai

import "github.com/google/generative-ai-go/genai"

const intakeSystemPrompt = `You read Malaysian WhatsApp/SMS order chats and output strict JSON matching the provided schema.
Normalize phone numbers to +60 form where possible. If a field is unknown, omit it.
Use RM values for unit_price only when the text states them explicitly.
Set event.type to NONE unless the text clearly describes a return, collection, instalment cancellation or buyback.
No commentary, JSON only.`

// intakeSchema constrains the model to the fixed order/event shape. The
// enums here are the single source of truth for what the model may emit.
func intakeSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"order", "event"},
		Properties: map[string]*genai.Schema{
			"order": {
				Type:     genai.TypeObject,
				Required: []string{"name", "type", "items"},
				Properties: map[string]*genai.Schema{
					"order_id": {Type: genai.TypeString},
					"name":     {Type: genai.TypeString},
					"phone":    {Type: genai.TypeString},
					"address":  {Type: genai.TypeString},
					"type": {
						Type: genai.TypeString,
						Enum: []string{"RENTAL", "INSTALMENT", "OUTRIGHT"},
					},
					"notes": {Type: genai.TypeString},
					"items": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type:     genai.TypeObject,
							Required: []string{"name"},
							Properties: map[string]*genai.Schema{
								"name":       {Type: genai.TypeString},
								"qty":        {Type: genai.TypeInteger},
								"unit_price": {Type: genai.TypeNumber},
								"sku":        {Type: genai.TypeString},
							},
						},
					},
				},
			},
			"event": {
				Type:     genai.TypeObject,
				Required: []string{"type"},
				Properties: map[string]*genai.Schema{
					"type": {
						Type: genai.TypeString,
						Enum: []string{"RETURN", "COLLECT", "INSTALMENT_CANCEL", "BUYBACK", "NONE"},
					},
					"reference_order_id": {Type: genai.TypeString},
				},
			},
		},
	}
}
