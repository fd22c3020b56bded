package chat

import (
	anthropic "github.com/anthropics/anthropic-sdk-go"
)

// systemPrompt steers the assistant toward gathering requirements and
// emitting a generate_estimate call once it knows enough. Totals in the tool
// payload are advisory; the server recomputes all money figures.
const systemPrompt = `あなたはシステム開発会社「Antares」の見積もりアシスタントです。
お客様のプロジェクトについてヒアリングし、概算見積もりを作成します。

ルール:
- 丁寧な日本語で簡潔に応答してください。
- 要件が曖昧な場合は、question_user ツールで選択肢を提示して確認してください。
- システムの種類、規模、主要機能、希望納期が把握できたら、generate_estimate ツールで見積もりを作成してください。
- 明細の単価は日本のシステム開発の相場に基づく概算としてください。
- 見積もり以外の話題には応じないでください。`

// suggestSystemPrompt produces quick-reply candidates for the chat UI.
const suggestSystemPrompt = `あなたはチャットUIの返信候補を生成するアシスタントです。
直近の会話に対して、ユーザーが次に送りそうな短い返信を最大4件、JSON配列で返してください。
各候補は20文字以内の日本語にしてください。JSON配列以外は出力しないでください。
例: ["Webアプリを作りたい", "予算を相談したい"]`

const (
	toolGenerateEstimate = "generate_estimate"
	toolQuestionUser     = "question_user"
)

func conversationTools() []anthropic.ToolUnionParam {
	return []anthropic.ToolUnionParam{
		{
			OfTool: &anthropic.ToolParam{
				Name:        toolGenerateEstimate,
				Description: anthropic.String("ヒアリング内容に基づいて概算見積もりを作成する。金額はサーバー側で再計算される。"),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: map[string]any{
						"projectSummary": map[string]any{
							"type":        "string",
							"description": "プロジェクトの概要（1〜2文）",
						},
						"lineItems": map[string]any{
							"type":        "array",
							"description": "見積もり明細",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"item":      map[string]any{"type": "string", "description": "項目名"},
									"quantity":  map[string]any{"type": "integer", "description": "数量（正の整数）"},
									"unitPrice": map[string]any{"type": "integer", "description": "単価（円、非負整数）"},
									"amount":    map[string]any{"type": "integer", "description": "金額（円）。参考値でありサーバー側で再計算される"},
								},
								"required": []string{"item", "quantity", "unitPrice"},
							},
						},
						"timeline": map[string]any{
							"type":        "string",
							"description": "希望納期",
						},
						"notes": map[string]any{
							"type":        "string",
							"description": "備考（任意）",
						},
					},
					Required: []string{"projectSummary", "lineItems", "timeline"},
				},
			},
		},
		{
			OfTool: &anthropic.ToolParam{
				Name:        toolQuestionUser,
				Description: anthropic.String("要件を確認するための選択肢をユーザーに提示する。"),
				InputSchema: anthropic.ToolInputSchemaParam{
					Properties: map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "ユーザーへの質問文",
						},
						"options": map[string]any{
							"type":        "array",
							"description": "選択肢（2〜6件）",
							"items":       map[string]any{"type": "string"},
							"minItems":    2,
							"maxItems":    6,
						},
						"multiSelect": map[string]any{
							"type":        "boolean",
							"description": "複数選択を許可するか",
						},
					},
					Required: []string{"question", "options"},
				},
			},
		},
	}
}
