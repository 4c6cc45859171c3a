package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeResponseRawJSON(t *testing.T) {
	raw := `{"intent": "query", "entities": {"category": "游戏道具"}, "confidence": 0.9, "missing_info": []}`

	out := decodeResponse(raw)
	assert.Equal(t, "query", out.Intent)
	assert.Equal(t, "游戏道具", out.Entities["category"])
	assert.Equal(t, 0.9, *out.Confidence)
}

func TestDecodeResponseFencedBlock(t *testing.T) {
	raw := "好的，分析结果如下：\n```json\n{\"intent\": \"purchase\", \"entities\": {\"reference\": \"first\"}, \"confidence\": 0.85}\n```\n希望对你有帮助。"

	out := decodeResponse(raw)
	assert.Equal(t, "purchase", out.Intent)
	assert.Equal(t, "first", out.Entities["reference"])
}

func TestDecodeResponseBalancedBraces(t *testing.T) {
	raw := `用户想确认订单。{"intent": "confirm", "entities": {"note": "包含 } 的字符串"}, "confidence": 0.8} 以上。`

	out := decodeResponse(raw)
	assert.Equal(t, "confirm", out.Intent)
	assert.Equal(t, "包含 } 的字符串", out.Entities["note"])
}

func TestDecodeResponseUnparseable(t *testing.T) {
	out := decodeResponse("抱歉，我不太明白你的意思。")
	assert.Equal(t, string(IntentHelp), out.Intent)
	assert.Equal(t, 0.0, *out.Confidence)
	assert.Equal(t, []string{"无法解析响应"}, out.MissingInfo)
}

func TestFirstBalancedObjectNested(t *testing.T) {
	span := firstBalancedObject(`noise {"a": {"b": 1}} trailing {"c": 2}`)
	assert.Equal(t, `{"a": {"b": 1}}`, span)
}
