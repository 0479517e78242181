package service

import "strings"

// EmptyChatMessageReply возвращается на пустое сообщение
const EmptyChatMessageReply = "Please say something."

const chatFallbackReply = "Sorry, I can only answer questions about this portal. Try asking about the 'leaderboard', 'assessments', 'profile', or your 'score'."

type chatRule struct {
	keywords []string
	reply    string
}

// chatRules проверяются по порядку, побеждает первое совпадение.
// Совпадение — вхождение подстроки, поэтому "hi" срабатывает и внутри слов.
var chatRules = []chatRule{
	{keywords: []string{"karthick"}, reply: "Veerakarthick is a developer of the AI Academy portal."},
	{keywords: []string{"sarjan"}, reply: "Sarjan is a developer of the AI Academy portal."},
	{keywords: []string{"vinith"}, reply: "Vinith is a developer of the AI Academy portal."},
	{keywords: []string{"leaderboard"}, reply: "The leaderboard shows student rankings based on their average test scores. Scores are updated every time you complete a new assessment."},
	{keywords: []string{"assessment", "test"}, reply: "You can take tests on various subjects in the Assessments section. Your scores will contribute to your overall ranking on the leaderboard."},
	{keywords: []string{"profile"}, reply: "You can view and edit your profile details, including your name, college, and profile picture, on the Profile page."},
	{keywords: []string{"score"}, reply: "Your overall score is the average of the percentage you get on all completed tests. Keep taking assessments to improve it!"},
	{keywords: []string{"dashboard"}, reply: "The dashboard gives you an overview of your performance in tests and your progress in completing all the available courses."},
	{keywords: []string{"hello", "hi"}, reply: "Hello! How can I help you with the AI Academy portal today? You can ask me about the dashboard, assessments, profile, or leaderboard."},
}

// ChatbotService отвечает на вопросы о портале по ключевым словам
type ChatbotService struct{}

// NewChatbotService создает новый сервис чат-бота
func NewChatbotService() *ChatbotService {
	return &ChatbotService{}
}

// Reply возвращает ответ на сообщение. Функция чистая и не обращается к хранилищу.
func (s *ChatbotService) Reply(message string) string {
	msg := strings.ToLower(message)
	for _, rule := range chatRules {
		for _, kw := range rule.keywords {
			if strings.Contains(msg, kw) {
				return rule.reply
			}
		}
	}
	return chatFallbackReply
}
