package parser

import (
	"fmt"
	"strings"

	"ai-voiceshop-be/pkg/store"
)

const fewShotExamples = `
示例 1:
用户: "帮我买一个能进元宇宙音乐派对的 NFT"
意图: QUERY
实体: {
  "product_type": "NFT",
  "use_case": "元宇宙音乐派对",
  "category": "活动门票"
}

示例 2:
用户: "我想要一个价格在 100 MATIC 以下的游戏道具"
意图: QUERY
实体: {
  "product_type": "NFT",
  "category": "游戏道具",
  "price_max": 100,
  "currency": "MATIC"
}

示例 3:
用户: "买第一个"
意图: PURCHASE
实体: {
  "reference": "first",
  "reference_type": "ordinal"
}

示例 4:
用户: "确认购买"
意图: CONFIRM
实体: {}

示例 5:
用户: "取消"
意图: CANCEL
实体: {}

示例 6:
用户: "我之前买过什么"
意图: HISTORY
实体: {}
`

const systemPromptTemplate = `你是一个 Web3 语音购物助手。用户会用自然语言描述想购买的 NFT 或 Token。

你的任务是：
1. 识别用户意图（QUERY/PURCHASE/CONFIRM/CANCEL/HELP/HISTORY）
2. 提取商品特征（类型、属性、价格范围、区块链网络）
3. 如果信息不完整，识别缺失的必要信息

%s

当前对话历史：
%s

用户输入: %s

请分析用户意图并提取实体。以 JSON 格式返回结果：
{
  "intent": "意图类型",
  "entities": {实体字典},
  "confidence": 置信度(0-1),
  "missing_info": [缺失信息列表]
}
`

// buildPrompt renders the classification prompt from the few-shot block,
// the truncated conversation history and the current utterance.
func (p *SemanticParser) buildPrompt(text string, history []store.Message) string {
	var sb strings.Builder
	start := 0
	if len(history) > p.maxHistory*2 {
		start = len(history) - p.maxHistory*2
	}
	for _, msg := range history[start:] {
		role := "Assistant"
		if msg.Role == store.RoleUser {
			role = "User"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", role, msg.Content))
	}
	return fmt.Sprintf(systemPromptTemplate, fewShotExamples, sb.String(), text)
}
