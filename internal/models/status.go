package models

// Status is a workflow state of a pericia.
type Status string

// Workflow states, mirroring the pericia_status enumeration enforced by the
// record store. The first five lowercase values are legacy states kept for
// records created before the lifecycle was formalized.
const (
	StatusAguardando            Status = "Aguardando"
	StatusEmAndamento           Status = "Em andamento"
	StatusSuspensa              Status = "Suspensa"
	StatusConcluida             Status = "Concluída"
	StatusArquivada             Status = "Arquivada"
	StatusAcordoAntesPericia    Status = "FINALIZADO EM ACORDO ANTES DA PERÍCIA"
	StatusAgendarPericia        Status = "AGENDAR PERÍCIA"
	StatusAguardandoPericia     Status = "AGUARDANDO PERÍCIA"
	StatusAguardandoLaudo       Status = "AGUARDANDO LAUDO"
	StatusAguardandoEsclarec    Status = "AGUARDANDO ESCLARECIMENTOS"
	StatusLaudoEntregue         Status = "LAUDO/ESCLARECIMENTOS ENTREGUES"
	StatusSentenca              Status = "SENTENÇA"
	StatusRecursoOrdinario      Status = "RECURSO ORDINÁRIO"
	StatusAcordoAposPericia     Status = "ACORDO APÓS REALIZAÇÃO DA PERÍCIA"
	StatusTransitoEmJulgado     Status = "CERTIDÃO DE TRÂNSITO EM JULGADO"
	StatusSolicitacaoPagamento  Status = "SOLICITAÇÃO DE PAGAMENTO DE HONORÁRIOS"
	StatusHonorariosRecebidos   Status = "HONORÁRIOS RECEBIDOS"
	StatusRefazerPericiaJudical Status = "REFAZER A PERÍCIA - ORDEM JUDICIAL"
)

// AllStatuses lists every accepted workflow state, in lifecycle order.
var AllStatuses = []Status{
	StatusAguardando,
	StatusEmAndamento,
	StatusSuspensa,
	StatusConcluida,
	StatusArquivada,
	StatusAcordoAntesPericia,
	StatusAgendarPericia,
	StatusAguardandoPericia,
	StatusAguardandoLaudo,
	StatusAguardandoEsclarec,
	StatusLaudoEntregue,
	StatusSentenca,
	StatusRecursoOrdinario,
	StatusAcordoAposPericia,
	StatusTransitoEmJulgado,
	StatusSolicitacaoPagamento,
	StatusHonorariosRecebidos,
	StatusRefazerPericiaJudical,
}

var statusSet = func() map[Status]struct{} {
	m := make(map[Status]struct{}, len(AllStatuses))
	for _, s := range AllStatuses {
		m[s] = struct{}{}
	}
	return m
}()

// ValidStatus reports whether s is one of the accepted workflow states.
func ValidStatus(s Status) bool {
	_, ok := statusSet[s]
	return ok
}
