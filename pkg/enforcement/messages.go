package enforcement

// Message is the human-facing text attached to a denial. The tone is a
// pedagogical nudge, not a paywall slam: limits exist to shape study habits,
// and the copy should read that way.
type Message struct {
	Title               string
	Body                string
	UpgradeSuggestion   string
	RecommendedPlanCode string
}

// fallbackMessage renders any reason code the catalog does not know yet, so a
// denial is always presentable even when codes are added ahead of copy.
var fallbackMessage = Message{
	Title:               "Limite atingido",
	Body:                "Você atingiu um limite do seu plano atual.",
	UpgradeSuggestion:   "Conheça os planos com limites maiores para continuar estudando sem pausas.",
	RecommendedPlanCode: "premium",
}

var messageCatalog = map[ReasonCode]Message{
	ReasonNoActiveSubscription: {
		Title:               "Assinatura necessária",
		Body:                "Você ainda não tem uma assinatura ativa. Escolha um plano para começar a estudar.",
		UpgradeSuggestion:   "Assine o plano Essencial e tenha acesso imediato às sessões de estudo.",
		RecommendedPlanCode: "essencial",
	},
	ReasonSubscriptionExpired: {
		Title:               "Assinatura expirada",
		Body:                "Sua assinatura expirou. Renove para continuar de onde parou.",
		UpgradeSuggestion:   "Renove agora e mantenha seu histórico de estudos e estatísticas.",
		RecommendedPlanCode: "essencial",
	},
	ReasonLimitSessionsDaily: {
		Title:               "Limite diário de sessões atingido",
		Body:                "Você já usou todas as sessões de estudo de hoje. Descansar também faz parte da aprovação — amanhã tem mais.",
		UpgradeSuggestion:   "No plano Premium você estuda sem limite diário de sessões.",
		RecommendedPlanCode: "premium",
	},
	ReasonLimitSessionsContinuousStudy: {
		Title:               "Estudo contínuo indisponível",
		Body:                "O modo de estudo contínuo, sem limite de questões por sessão, não está incluído no seu plano.",
		UpgradeSuggestion:   "Desbloqueie o estudo contínuo no plano Premium.",
		RecommendedPlanCode: "premium",
	},
	ReasonLimitQuestionsSession: {
		Title:               "Limite de questões da sessão atingido",
		Body:                "Esta sessão chegou ao máximo de questões. Inicie uma nova sessão para continuar praticando.",
		UpgradeSuggestion:   "No plano Premium as sessões não têm limite de questões.",
		RecommendedPlanCode: "premium",
	},
	ReasonLimitQuestionsDaily: {
		Title:               "Limite diário de questões atingido",
		Body:                "Você respondeu todas as questões disponíveis hoje no seu plano. Revise seus erros enquanto isso — revisão vale tanto quanto questão nova.",
		UpgradeSuggestion:   "Responda questões sem limite diário no plano Premium.",
		RecommendedPlanCode: "premium",
	},
	ReasonLimitPieceWeekly: {
		Title:               "Limite semanal de peças atingido",
		Body:                "Você já praticou todas as peças desta semana no seu plano.",
		UpgradeSuggestion:   "Pratique mais peças por semana no plano Premium.",
		RecommendedPlanCode: "premium",
	},
	ReasonLimitPieceMonthly: {
		Title:               "Limite mensal de peças atingido",
		Body:                "Você já praticou todas as peças deste mês no seu plano. O contador reinicia no próximo mês.",
		UpgradeSuggestion:   "Pratique peças ilimitadas na segunda fase com o plano Premium.",
		RecommendedPlanCode: "premium",
	},
	ReasonFeatureReportCompleteNotAllowed: {
		Title:               "Relatório completo indisponível",
		Body:                "O relatório completo de desempenho, com evolução por disciplina, faz parte dos planos pagos. Seu plano inclui o relatório básico.",
		UpgradeSuggestion:   "Veja sua evolução detalhada por disciplina no plano Premium.",
		RecommendedPlanCode: "premium",
	},
	ReasonFeatureModeProfessionalNotAllowed: {
		Title:               "Modo profissional indisponível",
		Body:                "O modo profissional, com simulados cronometrados no formato da prova, não está incluído no seu plano.",
		UpgradeSuggestion:   "Ative o modo profissional no plano Premium.",
		RecommendedPlanCode: "premium",
	},
}

// sessionNotFoundMessage is the distinct framing used on the answer-question
// path: a failed session lookup means either a stale/foreign session ID or a
// lapsed subscription, and both are surfaced identically.
var sessionNotFoundMessage = Message{
	Title:               "Sessão não encontrada",
	Body:                "Não encontramos uma sessão de estudo ativa para continuar. Inicie uma nova sessão.",
	UpgradeSuggestion:   "Assine um plano para manter suas sessões de estudo ativas.",
	RecommendedPlanCode: "essencial",
}

// MessageFor returns the catalog bundle for a reason code, falling back to a
// generic message for unknown codes instead of failing.
func MessageFor(code ReasonCode) Message {
	if bundle, ok := messageCatalog[code]; ok {
		return bundle
	}
	return fallbackMessage
}
