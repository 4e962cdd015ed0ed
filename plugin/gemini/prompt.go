package gemini

// Topic identifies a conversation practice topic.
type Topic int32

const (
	TopicDailyConversation Topic = 1
	TopicTravel            Topic = 2
	TopicBusiness          Topic = 3
	TopicInterview         Topic = 4
	TopicTechDiscussion    Topic = 5
	TopicFreeTopic         Topic = 6
)

// defaultTopicTitle is used for any topic id outside the known set.
const defaultTopicTitle = "자유 주제"

var topicTitles = map[Topic]string{
	TopicDailyConversation: "일상 대화",
	TopicTravel:            "여행",
	TopicBusiness:          "비즈니스",
	TopicInterview:         "면접 준비",
	TopicTechDiscussion:    "기술 토론",
	TopicFreeTopic:         "자유 주제",
}

var topicClauses = map[Topic]string{
	TopicDailyConversation: "\nTOPIC: Daily conversation (일상 대화) - Talk about everyday life, hobbies, weather, food, etc.",
	TopicTravel:            "\nTOPIC: Travel (여행) - Discuss travel plans, experiences, destinations, and travel tips.",
	TopicBusiness:          "\nTOPIC: Business (비즈니스) - Practice business meetings, email writing, and professional communication.",
	TopicInterview:         "\nTOPIC: Job Interview (면접 준비) - Practice common interview questions and professional responses.",
	TopicTechDiscussion:    "\nTOPIC: Tech Discussion (기술 토론) - Discuss programming, technology trends, and software development.",
	TopicFreeTopic:         "\nTOPIC: Free Topic (자유 주제) - Talk about anything the user wants.",
}

const defaultTopicClause = "\nTOPIC: Free conversation - Talk about anything."

const basePrompt = `You are a friendly and helpful English conversation partner for Korean learners.

RULES:
1. Always reply to the user IN ENGLISH for the conversation part.
2. If the user makes grammar mistakes, vocabulary errors, or unnatural expressions, provide feedback IN KOREAN.
3. Keep your English replies natural, encouraging, and at an intermediate level.
4. If the user's English is perfect, leave feedback empty.
5. Be conversational and ask follow-up questions to keep the chat going.

You MUST respond in the following JSON format ONLY (no markdown, no code blocks):
{"reply": "Your English conversation response here", "feedback": "한국어로 문법/단어 피드백 (없으면 빈 문자열)"}

IMPORTANT: Output ONLY the JSON object. No other text before or after it.`

// TopicTitle returns the display title for a topic id.
// Unknown ids resolve to the default title, never an error.
func TopicTitle(topicID int32) string {
	if title, ok := topicTitles[Topic(topicID)]; ok {
		return title
	}
	return defaultTopicTitle
}

// BuildSystemInstruction returns the full system instruction for a topic id:
// the fixed rule block plus the topic clause. Unknown ids get the default clause.
func BuildSystemInstruction(topicID int32) string {
	clause, ok := topicClauses[Topic(topicID)]
	if !ok {
		clause = defaultTopicClause
	}
	return basePrompt + clause
}
