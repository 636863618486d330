package scoring

var proactivityBank = []Question{
	{ID: "q1", Prompt: "Quando percebe um problema que não é de sua responsabilidade:", Options: []Option{
		{ID: "a", Text: "Tomo a iniciativa de resolvê-lo ou de acionar quem pode", Value: points(3)},
		{ID: "b", Text: "Aviso alguém responsável", Value: points(2)},
		{ID: "c", Text: "Comento com colegas, mas não faço nada", Value: points(1)},
		{ID: "d", Text: "Ignoro, pois não é comigo", Value: points(0)},
	}},
	{ID: "q2", Prompt: "Quando um projeto atrasa:", Options: []Option{
		{ID: "a", Text: "Espero que o gestor defina o que fazer", Value: points(1)},
		{ID: "b", Text: "Proponho um novo plano e converso com os envolvidos", Value: points(3)},
		{ID: "c", Text: "Acho que atrasos são inevitáveis", Value: points(0)},
		{ID: "d", Text: "Faço a minha parte mais rápido", Value: points(2)},
	}},
	{ID: "q3", Prompt: "Sobre o seu desenvolvimento profissional:", Options: []Option{
		{ID: "a", Text: "Faço cursos quando a empresa oferece", Value: points(1)},
		{ID: "b", Text: "Não tenho tempo para isso", Value: points(0)},
		{ID: "c", Text: "Tenho um plano próprio e invisto nele com regularidade", Value: points(3)},
		{ID: "d", Text: "Estudo quando surge uma necessidade específica", Value: points(2)},
	}},
	{ID: "q4", Prompt: "Quando recebe uma crítica:", Options: []Option{
		{ID: "a", Text: "Peço exemplos e defino o que vou mudar", Value: points(3)},
		{ID: "b", Text: "Reflito sobre ela depois", Value: points(2)},
		{ID: "c", Text: "Fico chateado, mas deixo passar", Value: points(1)},
		{ID: "d", Text: "Acho que a pessoa não entendeu o contexto", Value: points(0)},
	}},
	{ID: "q5", Prompt: "Diante de uma mudança inesperada na empresa:", Options: []Option{
		{ID: "a", Text: "Resisto até entender que não há alternativa", Value: points(0)},
		{ID: "b", Text: "Aguardo as orientações oficiais", Value: points(1)},
		{ID: "c", Text: "Procuro entender como posso contribuir", Value: points(3)},
		{ID: "d", Text: "Adapto minha rotina conforme necessário", Value: points(2)},
	}},
	{ID: "q6", Prompt: "Quando tem uma ideia de melhoria:", Options: []Option{
		{ID: "a", Text: "Monto uma proposta e apresento a quem decide", Value: points(3)},
		{ID: "b", Text: "Comento informalmente com o gestor", Value: points(2)},
		{ID: "c", Text: "Guardo para mim, provavelmente não vão aceitar", Value: points(0)},
		{ID: "d", Text: "Espero uma oportunidade para sugerir", Value: points(1)},
	}},
	{ID: "q7", Prompt: "Em relação às suas metas:", Options: []Option{
		{ID: "a", Text: "Sigo as metas que me passam", Value: points(1)},
		{ID: "b", Text: "Defino metas próprias e acompanho o progresso", Value: points(3)},
		{ID: "c", Text: "Tenho metas, mas raramente acompanho", Value: points(2)},
		{ID: "d", Text: "Não costumo pensar em metas", Value: points(0)},
	}},
	{ID: "q8", Prompt: "Quando algo dá errado por sua causa:", Options: []Option{
		{ID: "a", Text: "Explico os fatores externos que contribuíram", Value: points(1)},
		{ID: "b", Text: "Espero que ninguém perceba", Value: points(0)},
		{ID: "c", Text: "Assumo o erro e apresento uma solução", Value: points(3)},
		{ID: "d", Text: "Assumo o erro", Value: points(2)},
	}},
	{ID: "q9", Prompt: "Com tempo livre no trabalho:", Options: []Option{
		{ID: "a", Text: "Busco algo útil para adiantar ou melhorar", Value: points(3)},
		{ID: "b", Text: "Pergunto se alguém precisa de ajuda", Value: points(2)},
		{ID: "c", Text: "Aguardo novas demandas", Value: points(1)},
		{ID: "d", Text: "Aproveito para descansar", Value: points(0)},
	}},
	{ID: "q10", Prompt: "Sobre os resultados da sua vida profissional:", Options: []Option{
		{ID: "a", Text: "Dependem principalmente da sorte e das circunstâncias", Value: points(0)},
		{ID: "b", Text: "Dependem muito da empresa e do gestor", Value: points(1)},
		{ID: "c", Text: "Dependem em boa parte de mim", Value: points(2)},
		{ID: "d", Text: "São consequência das escolhas que eu faço", Value: points(3)},
	}},
}

func ProactivityQuestions() []Question {
	return copyQuestions(proactivityBank)
}
