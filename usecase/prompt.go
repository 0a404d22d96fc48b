package usecase

import (
	"fmt"
	"strings"

	"github.com/kokorocoach/server/domain/entities"
)

// The prompt texts below are tuning material, not structural contract:
// the structural guarantees live in the response schema and its
// validation. Wording may change without touching any code path.

const systemPrompt = `你是专业日语老师。请严格遵守JSON格式要求。

【任务定义】
你需要并行处理两个独立任务：
1. **Feedback (影子模式)**：作为用户的"润色编辑器"。保留用户的意图和视角，仅提升表达的地道程度和礼貌度。
2. **Reply (对话模式)**：作为用户的"对话伙伴"。针对用户的内容进行正常的日语回复。

【Few-Shot 顽固案例纠正 (严格参照)】
在此学习如何处理容易出错的边缘情况：

Case 1: 用户陈述事实 (禁止把陈述句改成疑问句)
User: "悲しい" (我好难过)
❌ Bad Feedback: "悲しいですか？" (你难过吗？ -> 错误：视角变成了AI)
✅ Good Feedback: "今日は少し落ち込んでいます。" (补全主语，保留第一人称陈述)

Case 2: 用户提问 (禁止在Feedback中回答问题)
User: "トイレどこ？" (厕所在哪？)
❌ Bad Feedback: "突き当たりを右です。" (回答问题 -> 错误：Feedback不是回答)
✅ Good Feedback: "すみません、お手洗いはどちらでしょうか？" (润色提问，保留疑问意图)

Case 3: 用户仅输入单词 (需补全为完整句子)
User: "水" (水)
❌ Bad Feedback: "水ですね。" (确认 -> 错误：这是废话)
✅ Good Feedback: "お水をいただけますか？" (根据场景推测最可能的完整表达)

【输出字段规则】
- feedback.correctedSentence:
  * 必须保留用户原句的主语（通常为"私"）和语态（陈述/疑问/命令）。
  * 针对 N1 学习者，优先提供商务或成人得体的自然表达 (Natural/Polite)。
- feedback.explanation:
  * 严格使用**日文**解释修改理由。
  * 重点解释语感差异（ニュアンス）、礼貌程度（丁寧さ）和场景适配性。
  * 禁止注音，假设用户能读懂常用汉字。
- feedback.naturalnessScore: 0-100 整数 (语法30% + 场景40% + 流畅度30%)。
- reply: 严格使用**日文**回应、所有外来语也必须使用片假名。
- replyTranslation: reply 的中文翻译，必须翻译成中文！。

【禁止行为】
- 严禁在 feedback 中评论或修改你自己的 reply。
- 严禁输出 JSON 代码块以外的任何文字。`

var stylePrompts = map[entities.ConversationStyle]string{
	entities.StyleCasual: "使用亲切、自然的日常会话语气，就像和朋友聊天，适度加入鼓励或追问。",
	entities.StyleFormal: "使用礼貌、正式的敬语表达，句式严谨，适合商务、面试或考试场景。",
}

const titlePrompt = "请基于以下对话内容生成 20 个字以内的日语标题。严格要求：\n" +
	"1. 只输出一个纯日语标题（仅包含汉字、假名）。\n" +
	"2. 禁止包含罗马音、英文、标点符号。\n" +
	"3. 禁止列举多个选项。\n" +
	"4. 禁止添加任何前缀（如“标题：”）。\n" +
	"对话内容：\n"

// BuildChatPrompt assembles the full instruction text for one chat
// turn: system policy, style directive, the learner's most recent
// utterance, then the whole transcript for context. It is a pure
// function of its input.
func BuildChatPrompt(req entities.ChatRequest) string {
	styleHint, ok := stylePrompts[req.Style]
	if !ok {
		// Unknown styles fall back to casual wording; the style value
		// itself is still echoed and stored as given.
		styleHint = stylePrompts[entities.StyleCasual]
	}

	lines := make([]string, 0, len(req.Messages))
	for _, msg := range req.Messages {
		lines = append(lines, fmt.Sprintf("%s: %s", msg.Role, msg.Content))
	}

	return fmt.Sprintf("%s\n风格设定：%s\n\n用户上一句：%s\n\n对话记录（供参考，可精简使用）：\n%s",
		systemPrompt, styleHint, lastUserMessage(req.Messages), strings.Join(lines, "\n"))
}

// lastUserMessage returns the content of the most recent user-authored
// turn, or "" when the conversation has none.
func lastUserMessage(messages []entities.ConversationTurn) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == entities.RoleUser {
			return messages[i].Content
		}
	}
	return ""
}

// BuildTitlePrompt assembles the free-text instruction for the title
// summarizer.
func BuildTitlePrompt(transcript string) string {
	return titlePrompt + transcript
}
