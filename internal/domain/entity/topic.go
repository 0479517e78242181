package entity

// UnknownTopicName возвращается для ключей вне каталога
const UnknownTopicName = "Unknown Test"

// Topic — предмет из фиксированного каталога тестов
type Topic struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// topicCatalog — фиксированный каталог из 9 тем. Порядок важен для /api/topics.
var topicCatalog = []Topic{
	{Key: "python", Name: "Python Programming"},
	{Key: "java", Name: "Java Programming"},
	{Key: "cplusplus", Name: "C++ Programming"},
	{Key: "javascript", Name: "JavaScript"},
	{Key: "sql", Name: "SQL & Databases"},
	{Key: "dsa", Name: "Data Structures & Algorithms"},
	{Key: "quantitative", Name: "Quantitative Aptitude"},
	{Key: "logical", Name: "Logical Reasoning"},
	{Key: "verbal", Name: "Verbal Ability"},
}

// TopicCatalogSize — размер каталога, используется для подсчёта inProgress
var TopicCatalogSize = len(topicCatalog)

// Topics возвращает копию каталога тем
func Topics() []Topic {
	out := make([]Topic, len(topicCatalog))
	copy(out, topicCatalog)
	return out
}

// IsKnownTopic проверяет, входит ли ключ в каталог
func IsKnownTopic(key string) bool {
	for _, t := range topicCatalog {
		if t.Key == key {
			return true
		}
	}
	return false
}

// LookupTopic возвращает тему по ключу; для неизвестных ключей имя равно UnknownTopicName
func LookupTopic(key string) Topic {
	for _, t := range topicCatalog {
		if t.Key == key {
			return t
		}
	}
	return Topic{Key: key, Name: UnknownTopicName}
}
