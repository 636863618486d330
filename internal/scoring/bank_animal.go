package scoring

type tw = map[Trait]float64

// Every option is worth 3 points; option "b" always leans dynamic/expressive.
var animalBank = []Question{
	{ID: "q1", Prompt: "Diante de um novo desafio no trabalho, você:", Options: []Option{
		{ID: "a", Text: "Analisa todos os dados antes de agir", Traits: tw{TraitAnalytical: 2, TraitPrecise: 1}},
		{ID: "b", Text: "Assume a liderança e parte para a ação", Traits: tw{TraitDynamic: 2, TraitExpressive: 1}},
		{ID: "c", Text: "Reúne as pessoas para decidir em conjunto", Traits: tw{TraitFriendly: 2, TraitExpressive: 1}},
		{ID: "d", Text: "Segue um plano seguro e já testado", Traits: tw{TraitStable: 2, TraitCautious: 1}},
	}},
	{ID: "q2", Prompt: "Em uma reunião, você costuma:", Options: []Option{
		{ID: "a", Text: "Fazer perguntas detalhadas e precisas", Traits: tw{TraitPrecise: 2, TraitAnalytical: 1}},
		{ID: "b", Text: "Apresentar ideias com entusiasmo e convencer o grupo", Traits: tw{TraitExpressive: 2, TraitDynamic: 1}},
		{ID: "c", Text: "Garantir que todos sejam ouvidos", Traits: tw{TraitFriendly: 3}},
		{ID: "d", Text: "Observar e falar apenas quando necessário", Traits: tw{TraitCautious: 2, TraitStable: 1}},
	}},
	{ID: "q3", Prompt: "Quando precisa tomar uma decisão importante:", Options: []Option{
		{ID: "a", Text: "Compara as alternativas com critérios objetivos", Traits: tw{TraitAnalytical: 3}},
		{ID: "b", Text: "Decide rápido e ajusta no caminho", Traits: tw{TraitDynamic: 3}},
		{ID: "c", Text: "Considera como a decisão afeta as pessoas", Traits: tw{TraitFriendly: 2, TraitStable: 1}},
		{ID: "d", Text: "Espera ter segurança total antes de decidir", Traits: tw{TraitCautious: 3}},
	}},
	{ID: "q4", Prompt: "Seu ambiente de trabalho ideal é:", Options: []Option{
		{ID: "a", Text: "Organizado, com processos claros", Traits: tw{TraitPrecise: 2, TraitStable: 1}},
		{ID: "b", Text: "Dinâmico, com metas ousadas", Traits: tw{TraitDynamic: 2, TraitExpressive: 1}},
		{ID: "c", Text: "Colaborativo e acolhedor", Traits: tw{TraitFriendly: 2, TraitExpressive: 1}},
		{ID: "d", Text: "Estável e previsível", Traits: tw{TraitStable: 3}},
	}},
	{ID: "q5", Prompt: "Quando algo dá errado:", Options: []Option{
		{ID: "a", Text: "Investiga a causa raiz do problema", Traits: tw{TraitAnalytical: 2, TraitPrecise: 1}},
		{ID: "b", Text: "Parte imediatamente para a solução", Traits: tw{TraitDynamic: 2, TraitExpressive: 1}},
		{ID: "c", Text: "Conversa com a equipe para entender o que houve", Traits: tw{TraitFriendly: 2, TraitExpressive: 1}},
		{ID: "d", Text: "Revisa o que poderia ter sido prevenido", Traits: tw{TraitCautious: 2, TraitPrecise: 1}},
	}},
	{ID: "q6", Prompt: "As pessoas costumam descrever você como:", Options: []Option{
		{ID: "a", Text: "Metódico", Traits: tw{TraitPrecise: 3}},
		{ID: "b", Text: "Determinado e comunicativo", Traits: tw{TraitDynamic: 1, TraitExpressive: 2}},
		{ID: "c", Text: "Simpático", Traits: tw{TraitFriendly: 3}},
		{ID: "d", Text: "Prudente", Traits: tw{TraitCautious: 2, TraitStable: 1}},
	}},
	{ID: "q7", Prompt: "Ao receber uma tarefa nova:", Options: []Option{
		{ID: "a", Text: "Lê todas as instruções com atenção", Traits: tw{TraitPrecise: 2, TraitAnalytical: 1}},
		{ID: "b", Text: "Começa logo e aprende fazendo", Traits: tw{TraitDynamic: 3}},
		{ID: "c", Text: "Pergunta quem mais vai participar", Traits: tw{TraitFriendly: 2, TraitExpressive: 1}},
		{ID: "d", Text: "Planeja cada etapa com cuidado", Traits: tw{TraitCautious: 1, TraitStable: 2}},
	}},
	{ID: "q8", Prompt: "O que mais motiva você:", Options: []Option{
		{ID: "a", Text: "Fazer um trabalho impecável", Traits: tw{TraitPrecise: 2, TraitAnalytical: 1}},
		{ID: "b", Text: "Alcançar resultados e reconhecimento", Traits: tw{TraitDynamic: 2, TraitExpressive: 1}},
		{ID: "c", Text: "Ter bons relacionamentos", Traits: tw{TraitFriendly: 3}},
		{ID: "d", Text: "Ter segurança e estabilidade", Traits: tw{TraitStable: 2, TraitCautious: 1}},
	}},
	{ID: "q9", Prompt: "Em situações de conflito:", Options: []Option{
		{ID: "a", Text: "Usa fatos e argumentos lógicos", Traits: tw{TraitAnalytical: 3}},
		{ID: "b", Text: "Enfrenta a situação de forma direta", Traits: tw{TraitDynamic: 2, TraitExpressive: 1}},
		{ID: "c", Text: "Busca conciliar os dois lados", Traits: tw{TraitFriendly: 2, TraitStable: 1}},
		{ID: "d", Text: "Evita o confronto e espera a poeira baixar", Traits: tw{TraitCautious: 3}},
	}},
	{ID: "q10", Prompt: "Seu maior ponto forte é:", Options: []Option{
		{ID: "a", Text: "Precisão", Traits: tw{TraitPrecise: 2, TraitAnalytical: 1}},
		{ID: "b", Text: "Iniciativa", Traits: tw{TraitDynamic: 2, TraitExpressive: 1}},
		{ID: "c", Text: "Empatia", Traits: tw{TraitFriendly: 2, TraitExpressive: 1}},
		{ID: "d", Text: "Constância", Traits: tw{TraitStable: 2, TraitCautious: 1}},
	}},
}

func AnimalQuestions() []Question {
	return copyQuestions(animalBank)
}
