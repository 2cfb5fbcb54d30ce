package stackexchange

// Thread is a question together with its answers and, optionally, the
// comments on each post. It is the unit search and lookup tools hand
// to the formatter.
type Thread struct {
	Question Question `json:"question"`
	Answers  []Answer `json:"answers"`

	// QuestionComments and AnswerComments are nil unless comments were
	// requested. AnswerComments is keyed by answer id.
	QuestionComments []Comment           `json:"question_comments,omitempty"`
	AnswerComments   map[int64][]Comment `json:"answer_comments,omitempty"`
}
