package constant

const (
	ChatMessageRoleUser   = "user"
	ChatMessageRoleModel  = "model"
	ChatMessageRoleSystem = "system"

	// RankTeachingsPromptV1 asks the model to grade every candidate against the
	// seeker's topic. The response contract is a bare JSON array so the output
	// survives strict parsing; score semantics match the retrieval threshold.
	RankTeachingsPromptV1 = `You are helping a pastoral team match sermons to what a person is seeking.

The person asked about: "%s"

Candidate sermons (numbered from 0):
%s

Grade EVERY candidate for how directly it speaks to the person's request.
Scoring guide:
- 0.9-1.0: the sermon is squarely about this topic
- 0.7-0.8: the sermon addresses the topic as a major theme
- 0.4-0.6: the topic appears only in passing
- 0.0-0.3: unrelated

Respond with ONLY a JSON array, one object per candidate, like:
[{"index": 0, "score": 0.85, "reason": "directly teaches on this"}, ...]

No markdown, no commentary, no code fences. Every candidate index must appear exactly once.`

	// PastoralReplyPromptV1 turns a ready recommendation list into a short warm
	// message. The list itself is rendered separately, so the reply must not
	// repeat titles.
	PastoralReplyPromptV1 = `You are a warm, encouraging pastoral assistant.

A person asked: "%s"

You found %d sermon(s) for them on this topic. Write a short (1-2 sentence) warm
introduction for the recommendations. Be encouraging and personal. Do NOT list
the sermon titles, the list is shown separately. Do NOT use markdown.`

	// Fixed replies for paths where calling the model adds nothing or the model
	// is unavailable.
	FallbackReplyFound     = "Here are some sermons I found for you. I pray they speak to your heart."
	ReplyNothingFound      = "I couldn't find any sermons on that topic right now. Perhaps try a different word, or ask me for themes like faith, hope, or healing."
	ReplyNeedClarification = "I'd love to help you find a sermon. What topic is on your heart? For example: faith, healing, forgiveness, or hope."
	ReplyNoSession         = "I don't have an earlier search to continue from. Tell me a topic and I'll find sermons for you."
	ReplyNoMoreResults     = "That's everything I found on this topic. Ask me about another theme and I'll keep looking."
	ReplyInternalError     = "Something went wrong on my side while searching. Please try again in a moment."
	ReplyMoreIntro         = "Here are some more sermons from your earlier search."
)
