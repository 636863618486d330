package scoring

func likert() []Option {
	return []Option{
		{ID: "a", Text: "Sempre"},
		{ID: "b", Text: "Frequentemente"},
		{ID: "c", Text: "Às vezes"},
		{ID: "d", Text: "Raramente"},
		{ID: "e", Text: "Nunca"},
	}
}

var egogramBank = []Question{
	{ID: "q1", Prompt: "Analiso os fatos antes de tomar uma decisão.", Options: likert()},
	{ID: "q2", Prompt: "Exijo que as regras sejam cumpridas à risca.", Options: likert()},
	{ID: "q3", Prompt: "Gosto de cuidar e ajudar as pessoas ao meu redor.", Options: likert()},
	{ID: "q4", Prompt: "Procuro agradar os outros mesmo quando discordo deles.", Options: likert()},
	{ID: "q5", Prompt: "Expresso minhas emoções livremente.", Options: likert()},
	{ID: "q6", Prompt: "Sou compreensivo com os erros dos outros.", Options: likert()},
	{ID: "q7", Prompt: "Busco informações objetivas antes de opinar.", Options: likert()},
	{ID: "q8", Prompt: "Consigo manter a calma e pensar com clareza sob pressão.", Options: likert()},
	{ID: "q9", Prompt: "Critico quando as coisas não são feitas do jeito certo.", Options: likert()},
	{ID: "q10", Prompt: "Gosto de me divertir e fazer coisas espontâneas.", Options: likert()},
}

func EgogramQuestions() []Question {
	return copyQuestions(egogramBank)
}
